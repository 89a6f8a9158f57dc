package actor

import (
	"context"
	"fmt"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/reugn/go-quartz/logger"
	"go.uber.org/zap"

	"smartlife2mqtt/internal/core/domain"
	"smartlife2mqtt/internal/util/actorutil"
	"smartlife2mqtt/pkg/smartlife_cloud"
)

const (
	CLOUD_ACTOR_ID = domain.ACTOR_ID_CLOUD

	cloudRequestTimeout = 10 * time.Second
)

type CloudActor struct {
	behavior actor.Behavior
	stash    *actorutil.Stash
	manager  smartlife_cloud.DeviceManager
	logger   *zap.Logger
}

type backgroundTaskResult struct {
	message any
	replyTo *actor.PID
}

func NewCloudActor(manager smartlife_cloud.DeviceManager, logger *zap.Logger) *CloudActor {
	act := &CloudActor{
		manager:  manager,
		behavior: actor.NewBehavior(),
		stash:    &actorutil.Stash{},
		logger:   actorutil.ActorLogger(CLOUD_ACTOR_ID, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *CloudActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *CloudActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("cloud@starting started")
		// probe the API before accepting traffic. A bad credential set
		// fails here and triggers the supervisor backoff.
		_, err := state.manager.GetDevices(context.Background())
		if err != nil {
			panic(err)
		}
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
	default:
		state.logger.Debug("cloud@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *CloudActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("cloud@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      CLOUD_ACTOR_ID,
			Healthy: true,
			State:   "idle",
		})
	case domain.GetDevicesRequest:
		state.logger.Debug("cloud@default: GetDevicesRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.getDevices),
			mapTaskResult[domain.GetDevicesResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.GetDevicesResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(cloudRequestTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingCloud)
	case domain.GetDeviceStatusRequest:
		state.logger.Debug("cloud@default: GetDeviceStatusRequest", zap.String("device", msg.DeviceId))
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)
		deviceId := msg.DeviceId

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, func() (*domain.GetDeviceStatusResponse, error) {
			return state.getDeviceStatus(deviceId)
		}), mapTaskResult[domain.GetDeviceStatusResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.GetDeviceStatusResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
					DeviceId: deviceId,
				},
				replyTo: sender,
			}
		}).WithTimeout(cloudRequestTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingCloud)
	case domain.SendCommandsRequest:
		state.logger.Debug("cloud@default: SendCommandsRequest", zap.String("device", msg.DeviceId))
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)
		deviceId := msg.DeviceId
		commands := msg.Commands

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, func() (*domain.SendCommandsResponse, error) {
			return state.sendCommands(deviceId, commands)
		}), mapTaskResult[domain.SendCommandsResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.SendCommandsResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
					DeviceId: deviceId,
				},
				replyTo: sender,
			}
		}).WithTimeout(cloudRequestTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingCloud)
	case *actor.Stopping:
	default:
		state.logger.Debug("cloud@default default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *CloudActor) WaitingCloud(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case backgroundTaskResult:
		state.logger.Debug("cloud@WaitingCloud backgroundTaskResult", zap.String("type", fmt.Sprintf("%T", msg.message)))
		ctx.Send(msg.replyTo, msg.message)
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case *actor.Stopping:
	default:
		state.logger.Debug("cloud@WaitingCloud stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (a *CloudActor) getDevices() (*domain.GetDevicesResponse, error) {
	devices, err := a.manager.GetDevices(context.Background())
	if err != nil {
		logger.Error(err)
		return nil, err
	}
	return &domain.GetDevicesResponse{
		Devices: devices,
	}, nil
}

func (a *CloudActor) getDeviceStatus(deviceId string) (*domain.GetDeviceStatusResponse, error) {
	status, err := a.manager.GetDeviceStatus(context.Background(), deviceId)
	if err != nil {
		logger.Error(err)
		return nil, err
	}
	return &domain.GetDeviceStatusResponse{
		DeviceId: deviceId,
		Status:   status,
	}, nil
}

func (a *CloudActor) sendCommands(deviceId string, commands []smartlife_cloud.Command) (*domain.SendCommandsResponse, error) {
	err := a.manager.SendCommands(context.Background(), deviceId, commands)
	if err != nil {
		logger.Error(err)
		return nil, err
	}
	return &domain.SendCommandsResponse{
		DeviceId: deviceId,
	}, nil
}

func mapTaskResult[T any](sender *actor.PID) func(t *T) *backgroundTaskResult {
	return func(t *T) *backgroundTaskResult {
		return &backgroundTaskResult{
			message: *t,
			replyTo: sender,
		}
	}
}
