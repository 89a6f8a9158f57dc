package smartlife_cloud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func resolverDevice() *CustomerDevice {
	return &CustomerDevice{
		ID:       "resolver",
		Category: "dj",
		StatusRange: map[DPCode]DeviceStatusRange{
			DPCodeBrightValue: {Code: DPCodeBrightValue, Type: DPTypeInteger,
				Values: `{"min":10,"max":1000,"scale":0,"step":1}`},
			DPCodeWorkMode: {Code: DPCodeWorkMode, Type: DPTypeEnum,
				Values: `{"range":["white","colour"]}`},
		},
		Function: map[DPCode]DeviceFunction{
			DPCodeBrightValue: {Code: DPCodeBrightValue, Type: DPTypeInteger,
				Values: `{"min":0,"max":255,"scale":0,"step":1}`},
			DPCodeSwitchLED: {Code: DPCodeSwitchLED, Type: DPTypeBoolean, Values: "{}"},
		},
		Status: map[DPCode]any{
			DPCodeCountdown: float64(30),
		},
	}
}

func TestFindDPCodeStatusRangeWins(t *testing.T) {

	assert := assert.New(t)

	dev := resolverDevice()

	// default precedence resolves against status_range
	d := dev.FindIntegerType(false, DPCodeBrightValue)
	assert.NotNil(d)
	assert.Equal(int64(1000), d.Max)

	// prefer_function flips to the writable schema
	d = dev.FindIntegerType(true, DPCodeBrightValue)
	assert.NotNil(d)
	assert.Equal(int64(255), d.Max)
}

func TestFindDPCodeCandidateOrder(t *testing.T) {

	assert := assert.New(t)

	dev := resolverDevice()

	// switch_led lives only in function, work_mode in status_range: the
	// first candidate wins even if it resolves in a later dictionary.
	code, ok := dev.FindDPCode(false, DPCodeSwitchLED, DPCodeWorkMode)
	assert.True(ok)
	assert.Equal(DPCodeSwitchLED, code, "candidates are searched before dictionaries")

	code, ok = dev.FindDPCode(false, DPCodeWorkMode, DPCodeSwitchLED)
	assert.True(ok)
	assert.Equal(DPCodeWorkMode, code)
}

func TestFindDPCodeStatusOnlyForBareQueries(t *testing.T) {

	assert := assert.New(t)

	dev := resolverDevice()

	// countdown is only reported in status: bare-code lookup finds it,
	// typed lookup does not.
	code, ok := dev.FindDPCode(false, DPCodeCountdown)
	assert.True(ok)
	assert.Equal(DPCodeCountdown, code)

	assert.Nil(dev.FindIntegerType(false, DPCodeCountdown))
	assert.Nil(dev.FindEnumType(false, DPCodeCountdown))
}

func TestFindDPCodeNotFound(t *testing.T) {

	assert := assert.New(t)

	dev := resolverDevice()

	_, ok := dev.FindDPCode(false, DPCodeSuction)
	assert.False(ok)
	assert.Nil(dev.FindEnumType(false, DPCodeSuction))
}

func TestFindEnumTypeSkipsUnparseable(t *testing.T) {

	assert := assert.New(t)

	dev := resolverDevice()
	// present in status_range with an empty values blob: must be skipped
	// in favor of the next dictionary, not returned as a match
	dev.StatusRange[DPCodeMode] = DeviceStatusRange{Code: DPCodeMode, Type: DPTypeEnum, Values: ""}
	dev.Function[DPCodeMode] = DeviceFunction{Code: DPCodeMode, Type: DPTypeEnum,
		Values: `{"range":["standby","smart"]}`}

	d := dev.FindEnumType(false, DPCodeMode)
	assert.NotNil(d)
	assert.Equal([]string{"standby", "smart"}, d.Range)
}

func TestFindEnumTypeTypeMismatch(t *testing.T) {

	assert := assert.New(t)

	dev := resolverDevice()

	// bright_value is declared Integer everywhere; an Enum query must not
	// match it
	assert.Nil(dev.FindEnumType(false, DPCodeBrightValue))
}

func TestGetDPType(t *testing.T) {

	assert := assert.New(t)

	dev := resolverDevice()

	typ, ok := dev.GetDPType(false, DPCodeWorkMode)
	assert.True(ok)
	assert.Equal(DPTypeEnum, typ)

	typ, ok = dev.GetDPType(false, DPCodeSwitchLED)
	assert.True(ok)
	assert.Equal(DPTypeBoolean, typ)

	// status-only codes carry no declared type
	_, ok = dev.GetDPType(false, DPCodeCountdown)
	assert.False(ok)
}
