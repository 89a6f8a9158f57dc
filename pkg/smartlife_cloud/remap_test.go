package smartlife_cloud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemapValueEndpoints(t *testing.T) {

	assert := assert.New(t)

	low, err := RemapValue(10, 10, 1000, 0, 255, false)
	assert.NoError(err)
	assert.Equal(0.0, low, "source min maps to target min")

	high, err := RemapValue(1000, 10, 1000, 0, 255, false)
	assert.NoError(err)
	assert.Equal(255.0, high, "source max maps to target max")
}

func TestRemapValueMonotonic(t *testing.T) {

	assert := assert.New(t)

	prev := -1.0
	for v := 10.0; v <= 1000; v += 55 {
		mapped, err := RemapValue(v, 10, 1000, 0, 255, false)
		assert.NoError(err)
		assert.Greater(mapped, prev)
		prev = mapped
	}
}

func TestRemapValueReverse(t *testing.T) {

	assert := assert.New(t)

	low, err := RemapValue(10, 10, 1000, 0, 255, true)
	assert.NoError(err)
	assert.Equal(255.0, low, "reverse swaps endpoints")

	high, err := RemapValue(1000, 10, 1000, 0, 255, true)
	assert.NoError(err)
	assert.Equal(0.0, high, "reverse swaps endpoints")
}

func TestRemapValueEmptySourceRange(t *testing.T) {

	_, err := RemapValue(5, 7, 7, 0, 255, false)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestRemapValueNoClamping(t *testing.T) {

	assert := assert.New(t)

	over, err := RemapValue(2000, 10, 1000, 0, 255, false)
	assert.NoError(err)
	assert.Greater(over, 255.0, "out-of-range input is not clamped")
}

func TestScaleValueRoundTrip(t *testing.T) {

	assert := assert.New(t)

	d := IntegerTypeData{DPCode: DPCodeCurVoltage, Min: 0, Max: 5000, Scale: 1, Step: 1}
	for _, raw := range []float64{0, 1, 230, 2305, 5000} {
		assert.InDelta(raw, float64(d.ScaleValueBack(d.ScaleValue(raw))), 1e-9)
	}
}

func TestRemapValueToFrom(t *testing.T) {

	assert := assert.New(t)

	d := IntegerTypeData{DPCode: DPCodeBrightValue, Min: 10, Max: 1000, Scale: 0, Step: 1}

	pct, err := d.RemapValueTo(1000, 0, 100, false)
	assert.NoError(err)
	assert.Equal(100.0, pct)

	raw, err := d.RemapValueFrom(100, 0, 100, false)
	assert.NoError(err)
	assert.Equal(1000.0, raw)
}
