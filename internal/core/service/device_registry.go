package service

import (
	"sync"

	"smartlife2mqtt/internal/core/port"
)

// MemoryDeviceRegistry keeps claim state in memory. Claims do not survive a
// restart, which is fine: the bridge re-discovers and re-claims on boot.
type MemoryDeviceRegistry struct {
	mu      sync.Mutex
	claimed map[string]struct{}
}

func NewMemoryDeviceRegistry() *MemoryDeviceRegistry {
	return &MemoryDeviceRegistry{
		claimed: make(map[string]struct{}),
	}
}

func (r *MemoryDeviceRegistry) Claim(deviceId string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.claimed[deviceId]; ok {
		return false
	}
	r.claimed[deviceId] = struct{}{}
	return true
}

func (r *MemoryDeviceRegistry) Release(deviceId string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.claimed, deviceId)
}

func (r *MemoryDeviceRegistry) IsClaimed(deviceId string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.claimed[deviceId]
	return ok
}

func (r *MemoryDeviceRegistry) ClaimedDevices() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.claimed))
	for id := range r.claimed {
		ids = append(ids, id)
	}
	return ids
}

// ensure interface compliance
var _ port.DeviceRegistry = (*MemoryDeviceRegistry)(nil)
