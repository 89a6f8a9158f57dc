package domain

import "fmt"

// DeviceCommandRequest

type DeviceCommandRequest interface {
	ActorRequest
	DeviceCommand() string
	TargetDeviceId() string
	TargetCode() string
}

type DeviceCommandRequestMixIn struct {
	ActorRequestMixIn
	DeviceId string
	Code     string
}

func (r DeviceCommandRequestMixIn) DeviceCommand() string {
	return fmt.Sprintf("%T", r)
}

func (r DeviceCommandRequestMixIn) TargetDeviceId() string {
	return r.DeviceId
}

func (r DeviceCommandRequestMixIn) TargetCode() string {
	return r.Code
}

// Device commands

type SwitchCommandRequest struct {
	DeviceCommandRequestMixIn
	On bool
}

type NumberCommandRequest struct {
	DeviceCommandRequestMixIn
	Value float64
}

type SelectCommandRequest struct {
	DeviceCommandRequestMixIn
	Option string
}

type ButtonCommandRequest struct {
	DeviceCommandRequestMixIn
}

type DeviceCommandResponse struct {
	ActorResponseMixIn
	DeviceId string
}

// ensure interface compliance
var _ DeviceCommandRequest = (*SwitchCommandRequest)(nil)
