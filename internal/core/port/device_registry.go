package port

// DeviceRegistry tracks which devices the bridge has claimed for publishing.
// A device already claimed elsewhere must not be claimed twice.
type DeviceRegistry interface {
	Claim(deviceId string) bool
	Release(deviceId string)
	IsClaimed(deviceId string) bool
	ClaimedDevices() []string
}
