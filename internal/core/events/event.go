package events

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	. "smartlife2mqtt/internal/core/domain"
	"smartlife2mqtt/pkg/smartlife_cloud"
)

// DeviceStatusToUpdateEvents turns a status report into per-entity update
// events. Values are rendered the way their datapoint descriptor dictates:
// integers are scaled, enums map to select state when writable, electricity
// blobs expand into one text event per component value.
func DeviceStatusToUpdateEvents(dev *smartlife_cloud.CustomerDevice,
	status map[smartlife_cloud.DPCode]any, logger *zap.Logger) []any {

	var events []any

	codes := make([]smartlife_cloud.DPCode, 0, len(status))
	for code := range status {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	for _, code := range codes {
		value := status[code]
		typ, declared := dev.GetDPType(false, code)
		_, writable := dev.Function[code]

		if declared && isElectricityCode(code, typ) {
			evs, err := electricityUpdateEvents(dev, typ, value)
			if err != nil {
				logger.Warn("could not decode electricity datapoint",
					zap.String("device", dev.ID), zap.String("code", string(code)), zap.Error(err))
				continue
			}
			events = append(events, evs...)
			continue
		}

		switch {
		case declared && typ == smartlife_cloud.DPTypeBoolean && writable:
			events = append(events, SwitchSensorUpdateEvent{
				SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: EntityId(dev.ID, code)},
				Value:                  value == true,
			})
		case declared && typ == smartlife_cloud.DPTypeInteger:
			raw, ok := numericValue(value)
			if !ok {
				continue
			}
			// writable numbers scale with the same function-preferred
			// schema their discovery bounds were built from
			intType := dev.FindIntegerType(writable, code)
			if intType == nil {
				intType = dev.FindIntegerType(!writable, code)
			}
			scaled := raw
			var decimals uint
			if intType != nil {
				scaled = intType.ScaleValue(raw)
				decimals = uint(intType.Scale)
			}
			if writable {
				events = append(events, InputNumberSensorUpdateEvent{
					SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: EntityId(dev.ID, code)},
					Value:                  scaled,
					Decimals:               decimals,
				})
			} else {
				events = append(events, FloatSensorUpdateEvent{
					SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: EntityId(dev.ID, code)},
					Value:                  scaled,
					Decimals:               decimals,
				})
			}
		case declared && typ == smartlife_cloud.DPTypeEnum && writable:
			events = append(events, SelectSensorUpdateEvent{
				SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: EntityId(dev.ID, code)},
				Value:                  fmt.Sprintf("%v", value),
			})
		default:
			if b, ok := value.(bool); ok {
				events = append(events, BinarySensorUpdateEvent{
					SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: EntityId(dev.ID, code)},
					Value:                  b,
				})
			} else {
				events = append(events, TextSensorUpdateEvent{
					SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: EntityId(dev.ID, code)},
					Value:                  fmt.Sprintf("%v", value),
				})
			}
		}
	}

	return events
}

func electricityUpdateEvents(dev *smartlife_cloud.CustomerDevice,
	typ smartlife_cloud.DPType, value any) ([]any, error) {

	str, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("unexpected electricity value type %T", value)
	}

	var data *smartlife_cloud.ElectricityTypeData
	var err error
	if typ == smartlife_cloud.DPTypeRaw {
		data, err = smartlife_cloud.DecodeElectricityRaw(str)
	} else {
		data, err = smartlife_cloud.ParseElectricityType(str)
	}
	if err != nil {
		return nil, err
	}

	return []any{
		TextSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: EntityId(dev.ID, SENSOR_SUFFIX_PHASE_VOLTAGE)},
			Value:                  data.Voltage,
		},
		TextSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: EntityId(dev.ID, SENSOR_SUFFIX_PHASE_CURRENT)},
			Value:                  data.ElectricCurrent,
		},
		TextSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: EntityId(dev.ID, SENSOR_SUFFIX_PHASE_POWER)},
			Value:                  data.Power,
		},
	}, nil
}

func DeviceOnlineUpdateEvent(dev *smartlife_cloud.CustomerDevice) any {
	return BinarySensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: EntityId(dev.ID, SENSOR_SUFFIX_ONLINE)},
		Value:                  dev.Online,
	}
}

func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
