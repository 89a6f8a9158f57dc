package smartlife_cloud

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// IntegerTypeData is the parsed value domain of an Integer datapoint.
// Raw values are fixed-point: scale is a power-of-ten exponent.
type IntegerTypeData struct {
	DPCode DPCode
	Min    int64
	Max    int64
	Scale  float64
	Step   float64
	Unit   string
	Type   string
}

func (d *IntegerTypeData) MinScaled() float64 {
	return d.ScaleValue(float64(d.Min))
}

func (d *IntegerTypeData) MaxScaled() float64 {
	return d.ScaleValue(float64(d.Max))
}

func (d *IntegerTypeData) StepScaled() float64 {
	return d.Step / math.Pow(10, d.Scale)
}

// ScaleValue converts a raw device value to its user-facing value.
func (d *IntegerTypeData) ScaleValue(value float64) float64 {
	return value / math.Pow(10, d.Scale)
}

// ScaleValueBack converts a user-facing value back to the raw device value.
func (d *IntegerTypeData) ScaleValueBack(value float64) int64 {
	return int64(value * math.Pow(10, d.Scale))
}

// RemapValueTo maps a raw value from this datapoint's range to [toMin, toMax].
func (d *IntegerTypeData) RemapValueTo(value, toMin, toMax float64, reverse bool) (float64, error) {
	return RemapValue(value, float64(d.Min), float64(d.Max), toMin, toMax, reverse)
}

// RemapValueFrom maps a value from [fromMin, fromMax] into this datapoint's range.
func (d *IntegerTypeData) RemapValueFrom(value, fromMin, fromMax float64, reverse bool) (float64, error) {
	return RemapValue(value, fromMin, fromMax, float64(d.Min), float64(d.Max), reverse)
}

// ParseIntegerType decodes an Integer value-domain blob. An empty or null
// document yields (nil, nil): the datapoint carries no usable schema.
// Malformed documents yield an error the caller should treat the same way.
func ParseIntegerType(dpcode DPCode, data string) (*IntegerTypeData, error) {
	fields, err := schemaFields(data)
	if err != nil || fields == nil {
		return nil, err
	}
	min, err := requireNumber(fields, "min")
	if err != nil {
		return nil, err
	}
	max, err := requireNumber(fields, "max")
	if err != nil {
		return nil, err
	}
	scale, err := requireNumber(fields, "scale")
	if err != nil {
		return nil, err
	}
	step, err := requireNumber(fields, "step")
	if err != nil {
		return nil, err
	}
	return &IntegerTypeData{
		DPCode: dpcode,
		Min:    int64(min),
		Max:    int64(max),
		Scale:  scale,
		Step:   math.Max(step, 1),
		Unit:   optionalString(fields, "unit"),
		Type:   optionalString(fields, "type"),
	}, nil
}

// EnumTypeData is the parsed value domain of an Enum datapoint.
type EnumTypeData struct {
	DPCode DPCode
	Range  []string
}

// ParseEnumType decodes an Enum value-domain blob. Same empty-input
// contract as ParseIntegerType.
func ParseEnumType(dpcode DPCode, data string) (*EnumTypeData, error) {
	fields, err := schemaFields(data)
	if err != nil || fields == nil {
		return nil, err
	}
	raw, ok := fields["range"]
	if !ok {
		return nil, fmt.Errorf("enum schema %q: missing range", dpcode)
	}
	var choices []string
	if err := json.Unmarshal(raw, &choices); err != nil {
		return nil, fmt.Errorf("enum schema %q: %w", dpcode, err)
	}
	return &EnumTypeData{DPCode: dpcode, Range: choices}, nil
}

// ElectricityTypeData carries the decoded electrical measurement triplet.
// Values are decimal strings as the vendor app renders them.
type ElectricityTypeData struct {
	ElectricCurrent string `json:"electriccurrent"`
	Power           string `json:"power"`
	Voltage         string `json:"voltage"`
}

// ParseElectricityType decodes the JSON form of the triplet. The payload is
// lower-cased first: the vendor capitalizes field names inconsistently.
func ParseElectricityType(data string) (*ElectricityTypeData, error) {
	var parsed ElectricityTypeData
	if err := json.Unmarshal([]byte(strings.ToLower(data)), &parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}

const electricityRawSize = 8

// DecodeElectricityRaw decodes the base64 binary form of the triplet:
// 8 bytes big-endian, uint16 voltage x10, uint24 current x1000,
// uint24 power x1000.
func DecodeElectricityRaw(data string) (*ElectricityTypeData, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, err
	}
	if len(raw) < electricityRawSize {
		return nil, fmt.Errorf("electricity payload too short: %d bytes", len(raw))
	}
	voltage := float64(binary.BigEndian.Uint16(raw[0:2])) / 10.0
	current := float64(uint32(raw[2])<<16|uint32(raw[3])<<8|uint32(raw[4])) / 1000.0
	power := float64(uint32(raw[5])<<16|uint32(raw[6])<<8|uint32(raw[7])) / 1000.0
	return &ElectricityTypeData{
		ElectricCurrent: formatDecimal(current),
		Power:           formatDecimal(power),
		Voltage:         formatDecimal(voltage),
	}, nil
}

// formatDecimal renders a float the way the vendor app does: integral
// values keep a trailing ".0".
func formatDecimal(value float64) string {
	s := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// schemaFields splits a value-domain blob into raw fields. Empty and null
// documents are not an error, just an absent schema.
func schemaFields(data string) (map[string]json.RawMessage, error) {
	if strings.TrimSpace(data) == "" {
		return nil, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return fields, nil
}

func requireNumber(fields map[string]json.RawMessage, key string) (float64, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("schema: missing field %q", key)
	}
	var value float64
	if err := json.Unmarshal(raw, &value); err == nil {
		return value, nil
	}
	// some firmwares quote numeric fields
	var quoted string
	if err := json.Unmarshal(raw, &quoted); err == nil {
		if value, err := strconv.ParseFloat(quoted, 64); err == nil {
			return value, nil
		}
	}
	return 0, fmt.Errorf("schema: field %q is not a number", key)
}

func optionalString(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return value
}
