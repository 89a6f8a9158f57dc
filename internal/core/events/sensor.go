package events

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/carlmjohnson/versioninfo"

	. "smartlife2mqtt/internal/core/domain"
	"smartlife2mqtt/pkg/smartlife_cloud"
)

const (
	SENSOR_ID_BRIDGE_STATE = "bridge"

	SENSOR_SUFFIX_ONLINE        = "online"
	SENSOR_SUFFIX_PHASE_VOLTAGE = "phase_a_voltage"
	SENSOR_SUFFIX_PHASE_CURRENT = "phase_a_current"
	SENSOR_SUFFIX_PHASE_POWER   = "phase_a_power"

	STATE_CLASS_MEASUREMENT      = "measurement"
	STATE_CLASS_TOTAL_INCREASING = "total_increasing"
	DEVICE_CLASS_BATTERY         = "battery"
	DEVICE_CLASS_CURRENT         = "current"
	DEVICE_CLASS_ENERGY          = "energy"
	DEVICE_CLASS_HUMIDITY        = "humidity"
	DEVICE_CLASS_POWER           = "power"
	DEVICE_CLASS_TEMPERATURE     = "temperature"
	DEVICE_CLASS_VOLTAGE         = "voltage"
	DEVICE_CLASS_CONNECTIVITY    = "connectivity"
	ENTITY_CLASS_DIAGNOSTIC      = "diagnostic"
	ENTITY_CLASS_CONFIG          = "config"
	SENSOR_TYPE_SENSOR           = "sensor"
	SENSOR_TYPE_BINARY           = "binary_sensor"
	INPUT_NUMBER_MODE_BOX        = "box"
	INPUT_NUMBER_MODE_SLIDER     = "slider"
)

func BridgeDevice(baseTopic string) Device {
	return Device{
		Id:           fmt.Sprintf("smartlife_bridge_%s", md5HashShort(baseTopic)),
		Manufacturer: "smartlife",
		Model:        "SmartLife2MQTT",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("SmartLife2MQTT %s", md5HashShort(baseTopic)),
	}
}

func SmartLifeDevice(dev *smartlife_cloud.CustomerDevice, bridgeDevice Device) Device {
	return Device{
		Id:           dev.ID,
		Name:         dev.Name,
		Manufacturer: "smartlife",
		Model:        fmt.Sprintf("%s (%s)", dev.ProductName, dev.ProductID),
		ViaDevice:    bridgeDevice.Id,
	}
}

func IdDevice(device Device) Device {
	return Device{
		Id:   device.Id,
		Name: device.Name,
	}
}

// EntityId builds the per-datapoint entity id used in MQTT topics. Device
// ids are alphanumeric, so splitting on the first underscore is unambiguous.
func EntityId(deviceId string, code smartlife_cloud.DPCode) string {
	return fmt.Sprintf("%s_%s", deviceId, code)
}

func SplitEntityId(entityId string) (deviceId string, code string, ok bool) {
	parts := strings.SplitN(entityId, "_", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// DeviceSwitches builds a switch for every writable boolean datapoint.
func DeviceSwitches(dev *smartlife_cloud.CustomerDevice, haDevice Device) []GenericSwitch {

	var switches []GenericSwitch

	for _, code := range sortedFunctionCodes(dev) {
		fn := dev.Function[code]
		if fn.Type != smartlife_cloud.DPTypeBoolean {
			continue
		}
		switches = append(switches, GenericSwitch{
			Device:   haDevice,
			Id:       EntityId(dev.ID, code),
			Name:     prettyName(code),
			UniqueId: uniqueId(dev.ID, string(code)),
		})
	}
	return switches
}

// DeviceInputNumbers builds a number entity for every writable integer
// datapoint with a usable schema. Bounds and step are scaled.
func DeviceInputNumbers(dev *smartlife_cloud.CustomerDevice, haDevice Device) []GenericInputNumber {

	var numbers []GenericInputNumber

	for _, code := range sortedFunctionCodes(dev) {
		fn := dev.Function[code]
		if fn.Type != smartlife_cloud.DPTypeInteger {
			continue
		}
		intType := dev.FindIntegerType(true, code)
		if intType == nil {
			continue
		}
		numbers = append(numbers, GenericInputNumber{
			Device:   haDevice,
			Id:       EntityId(dev.ID, code),
			Name:     prettyName(code),
			UniqueId: uniqueId(dev.ID, string(code)),
			Min:      intType.MinScaled(),
			Max:      intType.MaxScaled(),
			Step:     intType.StepScaled(),
			Unit:     intType.Unit,
			Mode:     INPUT_NUMBER_MODE_BOX,
		})
	}
	return numbers
}

// DeviceSelects builds a select entity for every writable enum datapoint.
func DeviceSelects(dev *smartlife_cloud.CustomerDevice, haDevice Device) []GenericSelect {

	var selects []GenericSelect

	for _, code := range sortedFunctionCodes(dev) {
		fn := dev.Function[code]
		if fn.Type != smartlife_cloud.DPTypeEnum {
			continue
		}
		enumType := dev.FindEnumType(true, code)
		if enumType == nil {
			continue
		}
		selects = append(selects, GenericSelect{
			Device:   haDevice,
			Id:       EntityId(dev.ID, code),
			Name:     prettyName(code),
			UniqueId: uniqueId(dev.ID, string(code)),
			Options:  enumType.Range,
		})
	}
	return selects
}

type dpSensorClass struct {
	DeviceClass string
	StateClass  string
	Unit        string
}

var statusSensorClasses = map[smartlife_cloud.DPCode]dpSensorClass{
	smartlife_cloud.DPCodeBatteryPercentage: {DEVICE_CLASS_BATTERY, STATE_CLASS_MEASUREMENT, "%"},
	smartlife_cloud.DPCodeCurCurrent:        {DEVICE_CLASS_CURRENT, STATE_CLASS_MEASUREMENT, "mA"},
	smartlife_cloud.DPCodeCurPower:          {DEVICE_CLASS_POWER, STATE_CLASS_MEASUREMENT, "W"},
	smartlife_cloud.DPCodeCurVoltage:        {DEVICE_CLASS_VOLTAGE, STATE_CLASS_MEASUREMENT, "V"},
	smartlife_cloud.DPCodeVaTemperature:     {DEVICE_CLASS_TEMPERATURE, STATE_CLASS_MEASUREMENT, "°C"},
	smartlife_cloud.DPCodeTempCurrent:       {DEVICE_CLASS_TEMPERATURE, STATE_CLASS_MEASUREMENT, "°C"},
	smartlife_cloud.DPCodeVaHumidity:        {DEVICE_CLASS_HUMIDITY, STATE_CLASS_MEASUREMENT, "%"},
	smartlife_cloud.DPCodeHumidityValue:     {DEVICE_CLASS_HUMIDITY, STATE_CLASS_MEASUREMENT, "%"},
}

// DeviceSensors builds read-only sensors for datapoints reported in
// status_range but not writable through function, plus a connectivity
// binary sensor. Electricity datapoints expand into one sensor per
// component value.
func DeviceSensors(dev *smartlife_cloud.CustomerDevice, haDevice Device) []GenericSensor {

	var sensors []GenericSensor

	for _, code := range sortedStatusRangeCodes(dev) {
		if _, writable := dev.Function[code]; writable {
			continue
		}
		sr := dev.StatusRange[code]

		if isElectricityCode(code, sr.Type) {
			sensors = append(sensors, electricitySensors(dev, haDevice)...)
			continue
		}

		switch sr.Type {
		case smartlife_cloud.DPTypeBoolean:
			sensors = append(sensors, GenericSensor{
				Device:     haDevice,
				Id:         EntityId(dev.ID, code),
				SensorType: SENSOR_TYPE_BINARY,
				Name:       prettyName(code),
				UniqueId:   uniqueId(dev.ID, string(code)),
			})
		case smartlife_cloud.DPTypeInteger:
			sensor := GenericSensor{
				Device:     haDevice,
				Id:         EntityId(dev.ID, code),
				SensorType: SENSOR_TYPE_SENSOR,
				Name:       prettyName(code),
				StateClass: STATE_CLASS_MEASUREMENT,
				UniqueId:   uniqueId(dev.ID, string(code)),
			}
			if class, ok := statusSensorClasses[code]; ok {
				sensor.DeviceClass = class.DeviceClass
				sensor.StateClass = class.StateClass
				sensor.UnitOfMeasurement = class.Unit
			} else if intType := dev.FindIntegerType(false, code); intType != nil {
				sensor.UnitOfMeasurement = intType.Unit
			}
			sensors = append(sensors, sensor)
		default:
			sensors = append(sensors, GenericSensor{
				Device:     haDevice,
				Id:         EntityId(dev.ID, code),
				SensorType: SENSOR_TYPE_SENSOR,
				Name:       prettyName(code),
				UniqueId:   uniqueId(dev.ID, string(code)),
			})
		}
	}

	// connectivity state reported by the cloud
	sensors = append(sensors, GenericSensor{
		Device:         haDevice,
		Id:             EntityId(dev.ID, SENSOR_SUFFIX_ONLINE),
		SensorType:     SENSOR_TYPE_BINARY,
		Name:           "Online",
		DeviceClass:    DEVICE_CLASS_CONNECTIVITY,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       uniqueId(dev.ID, SENSOR_SUFFIX_ONLINE),
	})

	return sensors
}

func electricitySensors(dev *smartlife_cloud.CustomerDevice, haDevice Device) []GenericSensor {
	return []GenericSensor{
		{
			Device:            haDevice,
			Id:                EntityId(dev.ID, SENSOR_SUFFIX_PHASE_VOLTAGE),
			SensorType:        SENSOR_TYPE_SENSOR,
			Name:              "Phase A voltage",
			StateClass:        STATE_CLASS_MEASUREMENT,
			DeviceClass:       DEVICE_CLASS_VOLTAGE,
			UnitOfMeasurement: "V",
			UniqueId:          uniqueId(dev.ID, SENSOR_SUFFIX_PHASE_VOLTAGE),
		},
		{
			Device:            haDevice,
			Id:                EntityId(dev.ID, SENSOR_SUFFIX_PHASE_CURRENT),
			SensorType:        SENSOR_TYPE_SENSOR,
			Name:              "Phase A current",
			StateClass:        STATE_CLASS_MEASUREMENT,
			DeviceClass:       DEVICE_CLASS_CURRENT,
			UnitOfMeasurement: "A",
			UniqueId:          uniqueId(dev.ID, SENSOR_SUFFIX_PHASE_CURRENT),
		},
		{
			Device:            haDevice,
			Id:                EntityId(dev.ID, SENSOR_SUFFIX_PHASE_POWER),
			SensorType:        SENSOR_TYPE_SENSOR,
			Name:              "Phase A power",
			StateClass:        STATE_CLASS_MEASUREMENT,
			DeviceClass:       DEVICE_CLASS_POWER,
			UnitOfMeasurement: "kW",
			UniqueId:          uniqueId(dev.ID, SENSOR_SUFFIX_PHASE_POWER),
		},
	}
}

type buttonDescription struct {
	Code           smartlife_cloud.DPCode
	Name           string
	Icon           string
	EntityCategory string
	// Unconditional buttons are created even when the device does not
	// declare the datapoint. Some firmwares expose no descriptors at all.
	Unconditional bool
}

// buttonsByCategory lists press-only actions per product category.
var buttonsByCategory = map[string][]buttonDescription{
	// Robot vacuum
	"sd": {
		{Code: smartlife_cloud.DPCodeResetDusterCloth, Name: "Reset duster cloth", Icon: "mdi:restart", EntityCategory: ENTITY_CLASS_CONFIG},
		{Code: smartlife_cloud.DPCodeResetEdgeBrush, Name: "Reset edge brush", Icon: "mdi:restart", EntityCategory: ENTITY_CLASS_CONFIG},
		{Code: smartlife_cloud.DPCodeResetFilter, Name: "Reset filter", Icon: "mdi:air-filter", EntityCategory: ENTITY_CLASS_CONFIG},
		{Code: smartlife_cloud.DPCodeResetMap, Name: "Reset map", Icon: "mdi:map-marker-remove", EntityCategory: ENTITY_CLASS_CONFIG},
		{Code: smartlife_cloud.DPCodeResetRollBrush, Name: "Reset roll brush", Icon: "mdi:restart", EntityCategory: ENTITY_CLASS_CONFIG},
	},
	// Wake up light, undocumented
	"hxd": {
		{Code: smartlife_cloud.DPCodeSwitchUSB6, Name: "Snooze", Icon: "mdi:sleep"},
	},
	// Gate controller, undocumented. Gates report empty capability
	// dictionaries, so every button is unconditional.
	"qt": {
		{Code: smartlife_cloud.DPCodeGateOpen, Name: "Open", Icon: "mdi:gate-open", Unconditional: true},
		{Code: smartlife_cloud.DPCodeGateClose, Name: "Close", Icon: "mdi:gate", Unconditional: true},
		{Code: smartlife_cloud.DPCodeGateStop, Name: "Stop", Icon: "mdi:stop", Unconditional: true},
		{Code: smartlife_cloud.DPCodeGateLock, Name: "Lock", Icon: "mdi:lock", Unconditional: true},
	},
}

func DeviceButtons(dev *smartlife_cloud.CustomerDevice, haDevice Device) []GenericButton {

	var buttons []GenericButton

	for _, desc := range buttonsByCategory[dev.Category] {
		if !desc.Unconditional {
			if _, ok := dev.FindDPCode(true, desc.Code); !ok {
				continue
			}
		}
		buttons = append(buttons, GenericButton{
			Device:   haDevice,
			Id:       EntityId(dev.ID, desc.Code),
			Name:     desc.Name,
			UniqueId: uniqueId(dev.ID, string(desc.Code)),
			Icon:     desc.Icon,
		})
	}
	return buttons
}

func BridgeSensors(bridgeDevice Device) []GenericSensor {

	var sensors []GenericSensor

	sensors = append(sensors, GenericSensor{
		Device:         bridgeDevice,
		Id:             SENSOR_ID_BRIDGE_STATE,
		SensorType:     SENSOR_TYPE_BINARY,
		Name:           "Connection state",
		DeviceClass:    DEVICE_CLASS_CONNECTIVITY,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       uniqueId(bridgeDevice.Id, SENSOR_ID_BRIDGE_STATE),
	})

	return sensors
}

func isElectricityCode(code smartlife_cloud.DPCode, typ smartlife_cloud.DPType) bool {
	return code == smartlife_cloud.DPCodePhaseA &&
		(typ == smartlife_cloud.DPTypeRaw || typ == smartlife_cloud.DPTypeJSON ||
			typ == smartlife_cloud.DPTypeString)
}

func sortedFunctionCodes(dev *smartlife_cloud.CustomerDevice) []smartlife_cloud.DPCode {
	codes := make([]smartlife_cloud.DPCode, 0, len(dev.Function))
	for code := range dev.Function {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

func sortedStatusRangeCodes(dev *smartlife_cloud.CustomerDevice) []smartlife_cloud.DPCode {
	codes := make([]smartlife_cloud.DPCode, 0, len(dev.StatusRange))
	for code := range dev.StatusRange {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

func prettyName(code smartlife_cloud.DPCode) string {
	name := strings.ReplaceAll(string(code), "_", " ")
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func uniqueId(deviceId, id string) string {
	return fmt.Sprintf("smartlife.%s%s", deviceId, id)
}

func md5Hash(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])
}

func md5HashShort(text string) string {
	hash := md5Hash(text)
	return hash[0:8]
}
