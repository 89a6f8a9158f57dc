package smartlife_cloud

// DPType is the declared value type of a datapoint descriptor.
type DPType string

const (
	DPTypeBoolean DPType = "Boolean"
	DPTypeEnum    DPType = "Enum"
	DPTypeInteger DPType = "Integer"
	DPTypeJSON    DPType = "Json"
	DPTypeRaw     DPType = "Raw"
	DPTypeString  DPType = "String"
	DPTypeBitmap  DPType = "Bitmap"
)

// DPCode identifies an addressable datapoint of a device.
// Descriptions: https://developer.tuya.com/en/docs/iot/standarddescription
type DPCode string

const (
	DPCodeBatteryPercentage DPCode = "battery_percentage"
	DPCodeBrightValue       DPCode = "bright_value"
	DPCodeBrightValueV2     DPCode = "bright_value_v2"
	DPCodeChildLock         DPCode = "child_lock"
	DPCodeCountdown         DPCode = "countdown"
	DPCodeCurCurrent        DPCode = "cur_current"
	DPCodeCurPower          DPCode = "cur_power"
	DPCodeCurVoltage        DPCode = "cur_voltage"
	DPCodeDoorContactState  DPCode = "doorcontact_state"
	DPCodeFanSpeedEnum      DPCode = "fan_speed_enum"
	DPCodeGateClose         DPCode = "gate_close"
	DPCodeGateFastOpen      DPCode = "gate_fast_open"
	DPCodeGateLock          DPCode = "gate_lock"
	DPCodeGateOpen          DPCode = "gate_open"
	DPCodeGateStop          DPCode = "gate_stop"
	DPCodeHumidityValue     DPCode = "humidity_value"
	DPCodeMode              DPCode = "mode"
	DPCodePause             DPCode = "pause"
	DPCodePhaseA            DPCode = "phase_a"
	DPCodeResetDusterCloth  DPCode = "reset_duster_cloth"
	DPCodeResetEdgeBrush    DPCode = "reset_edge_brush"
	DPCodeResetFilter       DPCode = "reset_filter"
	DPCodeResetMap          DPCode = "reset_map"
	DPCodeResetRollBrush    DPCode = "reset_roll_brush"
	DPCodeSuction           DPCode = "suction"
	DPCodeSwitch            DPCode = "switch"
	DPCodeSwitchCharge      DPCode = "switch_charge"
	DPCodeSwitchLED         DPCode = "switch_led"
	DPCodeSwitchUSB6        DPCode = "switch_usb6"
	DPCodeTempCurrent       DPCode = "temp_current"
	DPCodeTempValue         DPCode = "temp_value"
	DPCodeVaHumidity        DPCode = "va_humidity"
	DPCodeVaTemperature     DPCode = "va_temperature"
	DPCodeWorkMode          DPCode = "work_mode"
)
