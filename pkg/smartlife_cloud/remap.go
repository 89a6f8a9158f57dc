package smartlife_cloud

import "errors"

var ErrInvalidRange = errors.New("remap: source range is empty")

// RemapValue maps value from [fromMin, fromMax] into [toMin, toMax] by
// linear interpolation. When reverse is set the target range is traversed
// descending. The result is not clamped to the target range.
func RemapValue(value, fromMin, fromMax, toMin, toMax float64, reverse bool) (float64, error) {
	if fromMax == fromMin {
		return 0, ErrInvalidRange
	}
	normalized := (value - fromMin) / (fromMax - fromMin)
	if reverse {
		return toMax - normalized*(toMax-toMin), nil
	}
	return toMin + normalized*(toMax-toMin), nil
}
