package domain

import (
	"github.com/asynkron/protoactor-go/actor"

	"smartlife2mqtt/pkg/smartlife_cloud"
)

const (
	ACTOR_ID_MASTER       = "master"
	ACTOR_ID_CLOUD        = "cloud"
	ACTOR_ID_DEVICES      = "devices"
	ACTOR_ID_MQTT         = "mqtt"
	ACTOR_ID_HA_DISCOVERY = "hadiscovery"
)

type ActorRef actor.PID

type ActorRequestMixIn struct {
	ReplyToRef *ActorRef
}

type ActorRequest interface {
	ReplyTo() *ActorRef
}

func (r ActorRequestMixIn) ReplyTo() *ActorRef {
	return r.ReplyToRef
}

type ActorResponseMixIn struct {
	ResponseError error
}

func (r ActorResponseMixIn) GetResponseError() error {
	return r.ResponseError
}

func (r ActorResponseMixIn) HasResponseError() bool {
	return r.ResponseError != nil
}

type ActorResponse interface {
	GetResponseError() error
	HasResponseError() bool
}

// Cloud actor protocol

type GetDevicesRequest struct {
	ActorRequestMixIn
}

type GetDevicesResponse struct {
	ActorResponseMixIn
	Devices []*smartlife_cloud.CustomerDevice
}

type GetDeviceStatusRequest struct {
	ActorRequestMixIn
	DeviceId string
}

type GetDeviceStatusResponse struct {
	ActorResponseMixIn
	DeviceId string
	Status   map[smartlife_cloud.DPCode]any
}

type SendCommandsRequest struct {
	ActorRequestMixIn
	DeviceId string
	Commands []smartlife_cloud.Command
}

type SendCommandsResponse struct {
	ActorResponseMixIn
	DeviceId string
}

// MQTT actor protocol

type PublishMessageRequest struct {
	ActorRequestMixIn
	Topic   string
	Payload string
	Retain  bool
}

type PublishMessageResponse struct {
	ActorResponseMixIn
}

type PublishSensorUpdateRequest struct {
	ActorRequestMixIn
	Retain bool
	Event  SensorUpdateEvent
}

type PublishSensorUpdateResponse struct {
	ActorResponseMixIn
}

type PublishDiscoveryRequest struct {
	ActorRequestMixIn
	Sensors      []GenericSensor
	Switches     []GenericSwitch
	InputNumbers []GenericInputNumber
	Selects      []GenericSelect
	Buttons      []GenericButton
}

type PublishDiscoveryResponse struct {
	ActorResponseMixIn
}

// Health protocol

type ActorHealthRequest struct {
	ActorRequestMixIn
}

type ActorHealthResponse struct {
	ActorResponseMixIn
	Id      string
	Healthy bool
	State   string
}
