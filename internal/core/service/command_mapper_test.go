package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"smartlife2mqtt/internal/core/domain"
	"smartlife2mqtt/pkg/smartlife_cloud"
)

func testMapper() *DefaultCommandMapper {
	return &DefaultCommandMapper{Logger: zap.NewNop()}
}

func lampDevice() *smartlife_cloud.CustomerDevice {
	return &smartlife_cloud.CustomerDevice{
		ID:       "lamp1",
		Category: "dj",
		Function: map[smartlife_cloud.DPCode]smartlife_cloud.DeviceFunction{
			smartlife_cloud.DPCodeSwitchLED: {Code: smartlife_cloud.DPCodeSwitchLED,
				Type: smartlife_cloud.DPTypeBoolean, Values: "{}"},
			smartlife_cloud.DPCodeBrightValue: {Code: smartlife_cloud.DPCodeBrightValue,
				Type: smartlife_cloud.DPTypeInteger, Values: `{"min":10,"max":1000,"scale":1,"step":1}`},
			smartlife_cloud.DPCodeWorkMode: {Code: smartlife_cloud.DPCodeWorkMode,
				Type: smartlife_cloud.DPTypeEnum, Values: `{"range":["white","colour"]}`},
		},
	}
}

func gateDevice() *smartlife_cloud.CustomerDevice {
	return &smartlife_cloud.CustomerDevice{
		ID:       "gate1",
		Category: "qt",
	}
}

func TestMapSwitchCommand(t *testing.T) {

	assert := assert.New(t)

	cmds, err := testMapper().MapCommand(lampDevice(), &domain.SwitchCommandRequest{
		DeviceCommandRequestMixIn: domain.DeviceCommandRequestMixIn{DeviceId: "lamp1", Code: "switch_led"},
		On:                        true,
	})
	assert.NoError(err)
	assert.Equal([]smartlife_cloud.Command{{Code: "switch_led", Value: true}}, cmds)
}

func TestMapSwitchCommandUnknownCode(t *testing.T) {

	assert := assert.New(t)

	_, err := testMapper().MapCommand(lampDevice(), &domain.SwitchCommandRequest{
		DeviceCommandRequestMixIn: domain.DeviceCommandRequestMixIn{DeviceId: "lamp1", Code: "switch_charge"},
		On:                        true,
	})
	assert.Error(err)
}

func TestMapNumberCommandScalesBack(t *testing.T) {

	assert := assert.New(t)

	// scale 1 means the UI range is [1.0, 100.0] and the wire value is x10
	cmds, err := testMapper().MapCommand(lampDevice(), &domain.NumberCommandRequest{
		DeviceCommandRequestMixIn: domain.DeviceCommandRequestMixIn{DeviceId: "lamp1", Code: "bright_value"},
		Value:                     50,
	})
	assert.NoError(err)
	assert.Len(cmds, 1)
	assert.Equal("bright_value", cmds[0].Code)
	assert.Equal(int64(500), cmds[0].Value)
}

func TestMapNumberCommandOutOfRange(t *testing.T) {

	assert := assert.New(t)

	_, err := testMapper().MapCommand(lampDevice(), &domain.NumberCommandRequest{
		DeviceCommandRequestMixIn: domain.DeviceCommandRequestMixIn{DeviceId: "lamp1", Code: "bright_value"},
		Value:                     200,
	})
	assert.Error(err)
}

func TestMapSelectCommand(t *testing.T) {

	assert := assert.New(t)

	cmds, err := testMapper().MapCommand(lampDevice(), &domain.SelectCommandRequest{
		DeviceCommandRequestMixIn: domain.DeviceCommandRequestMixIn{DeviceId: "lamp1", Code: "work_mode"},
		Option:                    "colour",
	})
	assert.NoError(err)
	assert.Equal([]smartlife_cloud.Command{{Code: "work_mode", Value: "colour"}}, cmds)

	_, err = testMapper().MapCommand(lampDevice(), &domain.SelectCommandRequest{
		DeviceCommandRequestMixIn: domain.DeviceCommandRequestMixIn{DeviceId: "lamp1", Code: "work_mode"},
		Option:                    "disco",
	})
	assert.Error(err)
}

func TestMapButtonCommandGateVariant(t *testing.T) {

	assert := assert.New(t)

	cmds, err := testMapper().MapCommand(gateDevice(), &domain.ButtonCommandRequest{
		DeviceCommandRequestMixIn: domain.DeviceCommandRequestMixIn{DeviceId: "gate1", Code: "gate_open"},
	})
	assert.NoError(err)
	assert.Equal([]smartlife_cloud.Command{{Code: "101", Value: 1}}, cmds)

	cmds, err = testMapper().MapCommand(gateDevice(), &domain.ButtonCommandRequest{
		DeviceCommandRequestMixIn: domain.DeviceCommandRequestMixIn{DeviceId: "gate1", Code: "gate_lock"},
	})
	assert.NoError(err)
	assert.Equal([]smartlife_cloud.Command{{Code: "104", Value: 1}}, cmds)
}

func TestMapButtonCommandStandard(t *testing.T) {

	assert := assert.New(t)

	// vacuum reset buttons use the standard boolean payload
	vacuum := &smartlife_cloud.CustomerDevice{ID: "vac1", Category: "sd"}
	cmds, err := testMapper().MapCommand(vacuum, &domain.ButtonCommandRequest{
		DeviceCommandRequestMixIn: domain.DeviceCommandRequestMixIn{DeviceId: "vac1", Code: "reset_filter"},
	})
	assert.NoError(err)
	assert.Equal([]smartlife_cloud.Command{{Code: "reset_filter", Value: true}}, cmds)
}

func TestDeviceRegistryClaim(t *testing.T) {

	assert := assert.New(t)

	reg := NewMemoryDeviceRegistry()
	assert.True(reg.Claim("dev1"))
	assert.False(reg.Claim("dev1"), "second claim must fail")
	assert.True(reg.IsClaimed("dev1"))

	reg.Release("dev1")
	assert.False(reg.IsClaimed("dev1"))
	assert.True(reg.Claim("dev1"))
	assert.Equal([]string{"dev1"}, reg.ClaimedDevices())
}
