package port

import (
	"smartlife2mqtt/internal/core/domain"
	"smartlife2mqtt/pkg/smartlife_cloud"
)

// DeviceCommandMapper translates an inbound entity command into the wire
// commands accepted by a concrete device, using its datapoint descriptors.
type DeviceCommandMapper interface {
	MapCommand(device *smartlife_cloud.CustomerDevice,
		request domain.DeviceCommandRequest) ([]smartlife_cloud.Command, error)
}
