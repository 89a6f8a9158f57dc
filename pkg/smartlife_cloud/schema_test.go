package smartlife_cloud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntegerType(t *testing.T) {

	assert := assert.New(t)

	d, err := ParseIntegerType(DPCodeBrightValue, `{"min":10,"max":1000,"scale":0,"step":1,"unit":"lx"}`)
	assert.NoError(err)
	assert.Equal(int64(10), d.Min)
	assert.Equal(int64(1000), d.Max)
	assert.Equal("lx", d.Unit)
	assert.Equal(10.0, d.MinScaled())
	assert.Equal(1000.0, d.MaxScaled())
}

func TestParseIntegerTypeStepFloor(t *testing.T) {

	assert := assert.New(t)

	d, err := ParseIntegerType(DPCodeTempValue, `{"min":0,"max":100,"scale":1,"step":0.5}`)
	assert.NoError(err)
	assert.Equal(1.0, d.Step, "step is floored at 1")
	assert.Equal(10.0, d.MaxScaled())
	assert.Equal(0.1, d.StepScaled())
}

func TestParseIntegerTypeEmpty(t *testing.T) {

	assert := assert.New(t)

	for _, blob := range []string{"", "{}", "null"} {
		d, err := ParseIntegerType(DPCodeTempValue, blob)
		assert.NoError(err, blob)
		assert.Nil(d, blob)
	}
}

func TestParseIntegerTypeMalformed(t *testing.T) {

	assert := assert.New(t)

	_, err := ParseIntegerType(DPCodeTempValue, `{"min":0,"max":100}`)
	assert.Error(err, "missing required fields")

	_, err = ParseIntegerType(DPCodeTempValue, `{"min":"x","max":100,"scale":0,"step":1}`)
	assert.Error(err, "non-numeric min")

	_, err = ParseIntegerType(DPCodeTempValue, `not json`)
	assert.Error(err)
}

func TestParseIntegerTypeQuotedNumbers(t *testing.T) {

	assert := assert.New(t)

	d, err := ParseIntegerType(DPCodeTempValue, `{"min":"0","max":"100","scale":"1","step":"1"}`)
	assert.NoError(err)
	assert.Equal(int64(100), d.Max)
}

func TestParseEnumType(t *testing.T) {

	assert := assert.New(t)

	d, err := ParseEnumType(DPCodeWorkMode, `{"range":["a","b","c"]}`)
	assert.NoError(err)
	assert.Equal([]string{"a", "b", "c"}, d.Range, "order preserved")

	empty, err := ParseEnumType(DPCodeWorkMode, "")
	assert.NoError(err)
	assert.Nil(empty)

	_, err = ParseEnumType(DPCodeWorkMode, `{"values":["a"]}`)
	assert.Error(err, "range is required")
}

func TestParseElectricityType(t *testing.T) {

	assert := assert.New(t)

	d, err := ParseElectricityType(`{"ElectricCurrent":"0.1","Power":"0.2","Voltage":"230.5"}`)
	assert.NoError(err)
	assert.Equal("0.1", d.ElectricCurrent)
	assert.Equal("0.2", d.Power)
	assert.Equal("230.5", d.Voltage)
}

func TestDecodeElectricityRaw(t *testing.T) {

	assert := assert.New(t)

	// 00 64 00 00 64 00 00 C8
	d, err := DecodeElectricityRaw("AGQAAGQAAMg=")
	assert.NoError(err)
	assert.Equal("10.0", d.Voltage)
	assert.Equal("0.1", d.ElectricCurrent)
	assert.Equal("0.2", d.Power)
}

func TestDecodeElectricityRawShort(t *testing.T) {

	assert := assert.New(t)

	_, err := DecodeElectricityRaw("AGQA")
	assert.Error(err, "payload shorter than the fixed layout")

	_, err = DecodeElectricityRaw("!!!")
	assert.Error(err, "not base64")
}
