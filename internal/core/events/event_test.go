package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"smartlife2mqtt/internal/core/domain"
	"smartlife2mqtt/pkg/smartlife_cloud"
)

func plugDevice() *smartlife_cloud.CustomerDevice {
	return &smartlife_cloud.CustomerDevice{
		ID:          "plug1",
		Name:        "Test plug",
		Category:    "cz",
		ProductID:   "prod123",
		ProductName: "Smart Plug",
		Online:      true,
		Function: map[smartlife_cloud.DPCode]smartlife_cloud.DeviceFunction{
			smartlife_cloud.DPCodeSwitch: {Code: smartlife_cloud.DPCodeSwitch,
				Type: smartlife_cloud.DPTypeBoolean, Values: "{}"},
			smartlife_cloud.DPCodeCountdown: {Code: smartlife_cloud.DPCodeCountdown,
				Type: smartlife_cloud.DPTypeInteger, Values: `{"min":0,"max":86400,"scale":0,"step":1,"unit":"s"}`},
		},
		StatusRange: map[smartlife_cloud.DPCode]smartlife_cloud.DeviceStatusRange{
			smartlife_cloud.DPCodeSwitch: {Code: smartlife_cloud.DPCodeSwitch,
				Type: smartlife_cloud.DPTypeBoolean, Values: "{}"},
			smartlife_cloud.DPCodeCurVoltage: {Code: smartlife_cloud.DPCodeCurVoltage,
				Type: smartlife_cloud.DPTypeInteger, Values: `{"min":0,"max":5000,"scale":1,"step":1,"unit":"V"}`},
			smartlife_cloud.DPCodePhaseA: {Code: smartlife_cloud.DPCodePhaseA,
				Type: smartlife_cloud.DPTypeRaw, Values: "{}"},
		},
	}
}

func TestEntityIdRoundTrip(t *testing.T) {

	assert := assert.New(t)

	id := EntityId("plug1", smartlife_cloud.DPCodeCurVoltage)
	assert.Equal("plug1_cur_voltage", id)

	deviceId, code, ok := SplitEntityId(id)
	assert.True(ok)
	assert.Equal("plug1", deviceId)
	assert.Equal("cur_voltage", code)

	_, _, ok = SplitEntityId("nounderscore")
	assert.False(ok)
}

func TestDeviceSwitches(t *testing.T) {

	assert := assert.New(t)

	dev := plugDevice()
	haDev := SmartLifeDevice(dev, BridgeDevice("smartlife2mqtt"))

	switches := DeviceSwitches(dev, haDev)
	assert.Len(switches, 1)
	assert.Equal("plug1_switch", switches[0].Id)
	assert.Equal("Switch", switches[0].Name)
	assert.Equal("smartlife.plug1switch", switches[0].UniqueId)
}

func TestDeviceInputNumbers(t *testing.T) {

	assert := assert.New(t)

	dev := plugDevice()
	haDev := SmartLifeDevice(dev, BridgeDevice("smartlife2mqtt"))

	numbers := DeviceInputNumbers(dev, haDev)
	assert.Len(numbers, 1)
	assert.Equal("plug1_countdown", numbers[0].Id)
	assert.Equal(0.0, numbers[0].Min)
	assert.Equal(86400.0, numbers[0].Max)
	assert.Equal("s", numbers[0].Unit)
}

func TestDeviceSensors(t *testing.T) {

	assert := assert.New(t)

	dev := plugDevice()
	haDev := SmartLifeDevice(dev, BridgeDevice("smartlife2mqtt"))

	sensors := DeviceSensors(dev, haDev)

	ids := make(map[string]domain.GenericSensor)
	for _, s := range sensors {
		ids[s.Id] = s
	}

	// writable switch must not be duplicated as a sensor
	assert.NotContains(ids, "plug1_switch")

	voltage := ids["plug1_cur_voltage"]
	assert.Equal(DEVICE_CLASS_VOLTAGE, voltage.DeviceClass)
	assert.Equal("V", voltage.UnitOfMeasurement)

	// electricity blob expands into three sensors
	assert.Contains(ids, "plug1_phase_a_voltage")
	assert.Contains(ids, "plug1_phase_a_current")
	assert.Contains(ids, "plug1_phase_a_power")

	online := ids["plug1_online"]
	assert.Equal(DEVICE_CLASS_CONNECTIVITY, online.DeviceClass)
	assert.Equal(SENSOR_TYPE_BINARY, online.SensorType)
}

func TestDeviceButtons(t *testing.T) {

	assert := assert.New(t)

	bridge := BridgeDevice("smartlife2mqtt")

	// gate controllers get all buttons despite empty descriptors
	gate := &smartlife_cloud.CustomerDevice{ID: "gate1", Name: "Gate", Category: "qt"}
	buttons := DeviceButtons(gate, SmartLifeDevice(gate, bridge))
	assert.Len(buttons, 4)
	assert.Equal("gate1_gate_open", buttons[0].Id)

	// vacuum buttons require the datapoint to be present
	vacuum := &smartlife_cloud.CustomerDevice{
		ID: "vac1", Name: "Vacuum", Category: "sd",
		Function: map[smartlife_cloud.DPCode]smartlife_cloud.DeviceFunction{
			smartlife_cloud.DPCodeResetFilter: {Code: smartlife_cloud.DPCodeResetFilter,
				Type: smartlife_cloud.DPTypeBoolean, Values: "{}"},
		},
	}
	buttons = DeviceButtons(vacuum, SmartLifeDevice(vacuum, bridge))
	assert.Len(buttons, 1)
	assert.Equal("Reset filter", buttons[0].Name)

	// no buttons for categories without a table entry
	plug := plugDevice()
	assert.Empty(DeviceButtons(plug, SmartLifeDevice(plug, bridge)))
}

func TestDeviceStatusToUpdateEvents(t *testing.T) {

	assert := assert.New(t)

	dev := plugDevice()
	status := map[smartlife_cloud.DPCode]any{
		smartlife_cloud.DPCodeSwitch:     true,
		smartlife_cloud.DPCodeCurVoltage: float64(2305),
		// 09 01 00 00 64 00 00 C8
		smartlife_cloud.DPCodePhaseA: "CQEAAGQAAMg=",
	}

	events := DeviceStatusToUpdateEvents(dev, status, zap.NewNop())

	byId := make(map[string]any)
	for _, ev := range events {
		byId[ev.(domain.SensorUpdateEvent).SensorId()] = ev
	}

	sw := byId["plug1_switch"].(domain.SwitchSensorUpdateEvent)
	assert.True(sw.Value)

	voltage := byId["plug1_cur_voltage"].(domain.FloatSensorUpdateEvent)
	assert.Equal(230.5, voltage.Value)
	assert.Equal(uint(1), voltage.Decimals)

	phaseVoltage := byId["plug1_phase_a_voltage"].(domain.TextSensorUpdateEvent)
	assert.Equal("230.5", phaseVoltage.Value)
	phaseCurrent := byId["plug1_phase_a_current"].(domain.TextSensorUpdateEvent)
	assert.Equal("0.1", phaseCurrent.Value)
	phasePower := byId["plug1_phase_a_power"].(domain.TextSensorUpdateEvent)
	assert.Equal("0.2", phasePower.Value)
}

func TestWritableNumberScalesWithFunctionSchema(t *testing.T) {

	assert := assert.New(t)

	dev := plugDevice()
	// the dictionaries disagree on scale here; a writable number must
	// follow the same function-preferred schema its discovery bounds
	// were built from
	dev.StatusRange[smartlife_cloud.DPCodeCountdown] = smartlife_cloud.DeviceStatusRange{
		Code: smartlife_cloud.DPCodeCountdown, Type: smartlife_cloud.DPTypeInteger,
		Values: `{"min":0,"max":86400,"scale":0,"step":1,"unit":"s"}`,
	}
	dev.Function[smartlife_cloud.DPCodeCountdown] = smartlife_cloud.DeviceFunction{
		Code: smartlife_cloud.DPCodeCountdown, Type: smartlife_cloud.DPTypeInteger,
		Values: `{"min":0,"max":864000,"scale":1,"step":1,"unit":"s"}`,
	}

	events := DeviceStatusToUpdateEvents(dev, map[smartlife_cloud.DPCode]any{
		smartlife_cloud.DPCodeCountdown: float64(600),
	}, zap.NewNop())

	assert.Len(events, 1)
	number := events[0].(domain.InputNumberSensorUpdateEvent)
	assert.Equal("plug1_countdown", number.SensorId())
	assert.Equal(60.0, number.Value)
	assert.Equal(uint(1), number.Decimals)
}

func TestDeviceStatusBadElectricityIsSkipped(t *testing.T) {

	assert := assert.New(t)

	dev := plugDevice()
	status := map[smartlife_cloud.DPCode]any{
		smartlife_cloud.DPCodePhaseA: "!!!",
	}

	events := DeviceStatusToUpdateEvents(dev, status, zap.NewNop())
	assert.Empty(events)
}

func TestDeviceOnlineUpdateEvent(t *testing.T) {

	assert := assert.New(t)

	dev := plugDevice()
	ev := DeviceOnlineUpdateEvent(dev).(domain.BinarySensorUpdateEvent)
	assert.Equal("plug1_online", ev.SensorId())
	assert.True(ev.Value)
}
