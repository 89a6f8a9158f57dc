package smartlife_cloud

import "context"

// DeviceFunction describes a commandable datapoint: its declared type and
// the JSON blob describing its legal value domain.
type DeviceFunction struct {
	Code   DPCode `json:"code"`
	Type   DPType `json:"type"`
	Values string `json:"values"`
}

// DeviceStatusRange describes a reportable datapoint and its value domain.
type DeviceStatusRange struct {
	Code   DPCode `json:"code"`
	Type   DPType `json:"type"`
	Values string `json:"values"`
}

// CustomerDevice is a read-only snapshot of a cloud device: identity,
// online flag, the three capability dictionaries and the last reported
// status values. Snapshots are replaced, never mutated, on refresh.
type CustomerDevice struct {
	ID          string
	Name        string
	Category    string
	ProductID   string
	ProductName string
	Online      bool

	Status      map[DPCode]any
	StatusRange map[DPCode]DeviceStatusRange
	Function    map[DPCode]DeviceFunction
}

// Command is a single {code, value} pair sent to a device.
type Command struct {
	Code  string `json:"code"`
	Value any    `json:"value"`
}

// DeviceManager is the cloud client the bridge talks to. Implementations
// own authentication, polling and command delivery; callers only see the
// device model.
type DeviceManager interface {
	GetDevices(ctx context.Context) ([]*CustomerDevice, error)
	GetDeviceStatus(ctx context.Context, deviceID string) (map[DPCode]any, error)
	SendCommands(ctx context.Context, deviceID string, commands []Command) error
}
