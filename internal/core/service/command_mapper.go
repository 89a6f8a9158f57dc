package service

import (
	"fmt"

	"go.uber.org/zap"

	"smartlife2mqtt/internal/core/domain"
	"smartlife2mqtt/internal/core/port"
	"smartlife2mqtt/pkg/smartlife_cloud"
)

// categoryVariant overrides command encoding for product categories whose
// firmware does not accept standard {code, value} pairs.
type categoryVariant struct {
	// buttonCodes rewrites a button press into an alternate datapoint
	// code and payload value.
	buttonCodes map[smartlife_cloud.DPCode]smartlife_cloud.Command
}

// Undocumented gate controllers ("qt") expose numeric datapoints instead of
// the standard gate_* codes. Values are plain integers.
var gateVariant = categoryVariant{
	buttonCodes: map[smartlife_cloud.DPCode]smartlife_cloud.Command{
		smartlife_cloud.DPCodeGateOpen:  {Code: "101", Value: 1},
		smartlife_cloud.DPCodeGateClose: {Code: "102", Value: 1},
		smartlife_cloud.DPCodeGateStop:  {Code: "103", Value: 1},
		smartlife_cloud.DPCodeGateLock:  {Code: "104", Value: 1},
	},
}

var categoryVariants = map[string]categoryVariant{
	"qt": gateVariant,
}

type DefaultCommandMapper struct {
	Logger *zap.Logger
}

func (m *DefaultCommandMapper) MapCommand(device *smartlife_cloud.CustomerDevice,
	request domain.DeviceCommandRequest) ([]smartlife_cloud.Command, error) {

	switch cmd := request.(type) {
	case *domain.SwitchCommandRequest:
		return m.mapSwitch(device, cmd)
	case *domain.NumberCommandRequest:
		return m.mapNumber(device, cmd)
	case *domain.SelectCommandRequest:
		return m.mapSelect(device, cmd)
	case *domain.ButtonCommandRequest:
		return m.mapButton(device, cmd)
	default:
		return nil, fmt.Errorf("unsupported command type %T", request)
	}
}

func (m *DefaultCommandMapper) mapSwitch(device *smartlife_cloud.CustomerDevice,
	cmd *domain.SwitchCommandRequest) ([]smartlife_cloud.Command, error) {

	code := smartlife_cloud.DPCode(cmd.Code)
	if _, ok := device.FindDPCode(true, code); !ok {
		return nil, fmt.Errorf("device %s has no datapoint %s", device.ID, cmd.Code)
	}
	return []smartlife_cloud.Command{{Code: cmd.Code, Value: cmd.On}}, nil
}

func (m *DefaultCommandMapper) mapNumber(device *smartlife_cloud.CustomerDevice,
	cmd *domain.NumberCommandRequest) ([]smartlife_cloud.Command, error) {

	intType := device.FindIntegerType(true, smartlife_cloud.DPCode(cmd.Code))
	if intType == nil {
		return nil, fmt.Errorf("device %s has no integer datapoint %s", device.ID, cmd.Code)
	}
	if cmd.Value < intType.MinScaled() || cmd.Value > intType.MaxScaled() {
		return nil, fmt.Errorf("value %v out of range [%v, %v] for %s",
			cmd.Value, intType.MinScaled(), intType.MaxScaled(), cmd.Code)
	}
	// the wire value is unscaled
	return []smartlife_cloud.Command{{Code: cmd.Code, Value: intType.ScaleValueBack(cmd.Value)}}, nil
}

func (m *DefaultCommandMapper) mapSelect(device *smartlife_cloud.CustomerDevice,
	cmd *domain.SelectCommandRequest) ([]smartlife_cloud.Command, error) {

	enumType := device.FindEnumType(true, smartlife_cloud.DPCode(cmd.Code))
	if enumType == nil {
		return nil, fmt.Errorf("device %s has no enum datapoint %s", device.ID, cmd.Code)
	}
	for _, opt := range enumType.Range {
		if opt == cmd.Option {
			return []smartlife_cloud.Command{{Code: cmd.Code, Value: cmd.Option}}, nil
		}
	}
	return nil, fmt.Errorf("option %q not valid for %s", cmd.Option, cmd.Code)
}

func (m *DefaultCommandMapper) mapButton(device *smartlife_cloud.CustomerDevice,
	cmd *domain.ButtonCommandRequest) ([]smartlife_cloud.Command, error) {

	code := smartlife_cloud.DPCode(cmd.Code)
	if variant, ok := categoryVariants[device.Category]; ok {
		if wire, ok := variant.buttonCodes[code]; ok {
			m.Logger.Debug("command_mapper: category variant rewrite",
				zap.String("category", device.Category),
				zap.String("code", cmd.Code), zap.String("wireCode", wire.Code))
			return []smartlife_cloud.Command{wire}, nil
		}
	}
	return []smartlife_cloud.Command{{Code: cmd.Code, Value: true}}, nil
}

// ensure interface compliance
var _ port.DeviceCommandMapper = (*DefaultCommandMapper)(nil)
