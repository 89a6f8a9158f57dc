package smartlife_cloud

import (
	"context"
	"errors"
	"sync"
)

// TestDeviceManager is an in-memory DeviceManager with a small fleet of
// canned devices. Sent commands are recorded for assertions.
type TestDeviceManager struct {
	mu           sync.Mutex
	devices      []*CustomerDevice
	SentCommands map[string][]Command
	CommandErr   error
}

func CreateTestDeviceManager() *TestDeviceManager {
	return &TestDeviceManager{
		devices:      testFleet(),
		SentCommands: map[string][]Command{},
	}
}

func (m *TestDeviceManager) GetDevices(ctx context.Context) ([]*CustomerDevice, error) {
	return m.devices, nil
}

func (m *TestDeviceManager) GetDeviceStatus(ctx context.Context, deviceID string) (map[DPCode]any, error) {
	for _, dev := range m.devices {
		if dev.ID == deviceID {
			status := make(map[DPCode]any, len(dev.Status))
			for code, value := range dev.Status {
				status[code] = value
			}
			return status, nil
		}
	}
	return nil, errors.New("unknown device " + deviceID)
}

func (m *TestDeviceManager) SendCommands(ctx context.Context, deviceID string, commands []Command) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CommandErr != nil {
		return m.CommandErr
	}
	m.SentCommands[deviceID] = append(m.SentCommands[deviceID], commands...)
	return nil
}

func testFleet() []*CustomerDevice {
	return []*CustomerDevice{
		{
			ID:          "bf0dj8420lamp",
			Name:        "Desk Lamp",
			Category:    "dj",
			ProductID:   "keyj8krajpd8qcxz",
			ProductName: "Smart Bulb",
			Online:      true,
			Function: map[DPCode]DeviceFunction{
				DPCodeSwitchLED: {Code: DPCodeSwitchLED, Type: DPTypeBoolean, Values: "{}"},
				DPCodeBrightValue: {Code: DPCodeBrightValue, Type: DPTypeInteger,
					Values: `{"min":10,"max":1000,"scale":0,"step":1}`},
				DPCodeWorkMode: {Code: DPCodeWorkMode, Type: DPTypeEnum,
					Values: `{"range":["white","colour","scene","music"]}`},
			},
			StatusRange: map[DPCode]DeviceStatusRange{
				DPCodeSwitchLED: {Code: DPCodeSwitchLED, Type: DPTypeBoolean, Values: "{}"},
				DPCodeBrightValue: {Code: DPCodeBrightValue, Type: DPTypeInteger,
					Values: `{"min":10,"max":1000,"scale":0,"step":1}`},
				DPCodeWorkMode: {Code: DPCodeWorkMode, Type: DPTypeEnum,
					Values: `{"range":["white","colour","scene","music"]}`},
			},
			Status: map[DPCode]any{
				DPCodeSwitchLED:   true,
				DPCodeBrightValue: float64(540),
				DPCodeWorkMode:    "white",
			},
		},
		{
			ID:          "bf0cz1175plug",
			Name:        "Garage Plug",
			Category:    "cz",
			ProductID:   "ak4oy2dlpsmwhvyc",
			ProductName: "Smart Socket",
			Online:      true,
			Function: map[DPCode]DeviceFunction{
				DPCodeSwitch: {Code: DPCodeSwitch, Type: DPTypeBoolean, Values: "{}"},
				DPCodeCountdown: {Code: DPCodeCountdown, Type: DPTypeInteger,
					Values: `{"min":0,"max":86400,"scale":0,"step":1,"unit":"s"}`},
			},
			StatusRange: map[DPCode]DeviceStatusRange{
				DPCodeSwitch: {Code: DPCodeSwitch, Type: DPTypeBoolean, Values: "{}"},
				DPCodeCurVoltage: {Code: DPCodeCurVoltage, Type: DPTypeInteger,
					Values: `{"min":0,"max":5000,"scale":1,"step":1,"unit":"V"}`},
				DPCodePhaseA: {Code: DPCodePhaseA, Type: DPTypeRaw, Values: "{}"},
			},
			Status: map[DPCode]any{
				DPCodeSwitch:     true,
				DPCodeCurVoltage: float64(2305),
				// 230.5 V, 0.1 A, 0.2 kW fixed-point record
				DPCodePhaseA: "CQEAAGQAAMg=",
			},
		},
		{
			ID:          "bf0sd3301vac",
			Name:        "Vacuum",
			Category:    "sd",
			ProductID:   "rkwxyagpy1flsmte",
			ProductName: "Robot Vacuum",
			Online:      false,
			Function: map[DPCode]DeviceFunction{
				DPCodeResetFilter: {Code: DPCodeResetFilter, Type: DPTypeBoolean, Values: "{}"},
				DPCodeResetMap:    {Code: DPCodeResetMap, Type: DPTypeBoolean, Values: "{}"},
				DPCodeMode: {Code: DPCodeMode, Type: DPTypeEnum,
					Values: `{"range":["standby","smart","wall_follow","spiral"]}`},
			},
			StatusRange: map[DPCode]DeviceStatusRange{
				DPCodeBatteryPercentage: {Code: DPCodeBatteryPercentage, Type: DPTypeInteger,
					Values: `{"min":0,"max":100,"scale":0,"step":1,"unit":"%"}`},
				DPCodeMode: {Code: DPCodeMode, Type: DPTypeEnum,
					Values: `{"range":["standby","smart","wall_follow","spiral"]}`},
			},
			Status: map[DPCode]any{
				DPCodeBatteryPercentage: float64(76),
				DPCodeMode:              "standby",
				DPCodeResetFilter:       false,
				DPCodeResetMap:          false,
			},
		},
		{
			// gate controllers advertise no capability dictionaries at all
			ID:          "bf0qt9986gate",
			Name:        "Driveway Gate",
			Category:    "qt",
			ProductID:   "cmtwlyxpzmkehhxe",
			ProductName: "Gate Controller",
			Online:      true,
			Function:    map[DPCode]DeviceFunction{},
			StatusRange: map[DPCode]DeviceStatusRange{},
			Status:      map[DPCode]any{},
		},
	}
}
