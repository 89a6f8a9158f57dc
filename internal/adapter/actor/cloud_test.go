package actor

import (
	"errors"
	"testing"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"smartlife2mqtt/internal/core/domain"
	"smartlife2mqtt/internal/util/actorutil"
	"smartlife2mqtt/pkg/smartlife_cloud"
)

func TestGetDevicesCloudActor(t *testing.T) {

	assert := assert.New(t)

	manager := smartlife_cloud.CreateTestDeviceManager()

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewCloudActor(manager, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.GetDevicesRequest{}
	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetDevicesResponse)

	assert.False(resp.HasResponseError())
	assert.Len(resp.Devices, 4)
	assert.Equal(resp.Devices[0].ID, "bf0dj8420lamp", "first device id")
	assert.Equal(resp.Devices[3].Category, "qt", "gate category")

	context.Stop(pid)

	as.Shutdown()
}

func TestGetDeviceStatusCloudActor(t *testing.T) {

	assert := assert.New(t)

	manager := smartlife_cloud.CreateTestDeviceManager()

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewCloudActor(manager, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.GetDeviceStatusRequest{DeviceId: "bf0cz1175plug"}
	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetDeviceStatusResponse)

	assert.False(resp.HasResponseError())
	assert.Equal(resp.DeviceId, "bf0cz1175plug")
	assert.Equal(resp.Status[smartlife_cloud.DPCodeCurVoltage], float64(2305), "raw voltage")

	context.Stop(pid)

	as.Shutdown()
}

func TestSendCommandsCloudActor(t *testing.T) {

	assert := assert.New(t)

	manager := smartlife_cloud.CreateTestDeviceManager()

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewCloudActor(manager, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.SendCommandsRequest{
		DeviceId: "bf0dj8420lamp",
		Commands: []smartlife_cloud.Command{{Code: "switch_led", Value: true}},
	}
	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.SendCommandsResponse)

	assert.False(resp.HasResponseError())
	assert.Equal(resp.DeviceId, "bf0dj8420lamp")
	assert.Len(manager.SentCommands["bf0dj8420lamp"], 1)
	assert.Equal(manager.SentCommands["bf0dj8420lamp"][0].Code, "switch_led")

	context.Stop(pid)

	as.Shutdown()
}

func TestSendCommandsErrorCloudActor(t *testing.T) {

	assert := assert.New(t)

	manager := smartlife_cloud.CreateTestDeviceManager()
	manager.CommandErr = errors.New("cloud rejected the command")

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewCloudActor(manager, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.SendCommandsRequest{
		DeviceId: "bf0dj8420lamp",
		Commands: []smartlife_cloud.Command{{Code: "switch_led", Value: true}},
	}
	// a failed cloud call must still answer with an error-carrying
	// response, not let the request time out
	result, err := context.RequestFuture(pid, msg, 3*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.SendCommandsResponse)

	assert.True(resp.HasResponseError())
	assert.Equal(resp.DeviceId, "bf0dj8420lamp")
	assert.Empty(manager.SentCommands["bf0dj8420lamp"])

	context.Stop(pid)

	as.Shutdown()
}
