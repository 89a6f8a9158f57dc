package actor

import (
	"fmt"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/asynkron/protoactor-go/scheduler"
	"go.uber.org/zap"

	"smartlife2mqtt/internal/config"
	"smartlife2mqtt/internal/core/domain"
	"smartlife2mqtt/internal/core/events"
	"smartlife2mqtt/internal/core/port"
	"smartlife2mqtt/internal/metrics"
	. "smartlife2mqtt/internal/util/actorutil"
	"smartlife2mqtt/pkg/smartlife_cloud"
)

type DevicesActor struct {
	behavior  actor.Behavior
	stash     *Stash
	scheduler *scheduler.TimerScheduler

	cloudActor    *actor.PID
	config        *config.Config
	eventStream   *eventstream.EventStream
	registry      port.DeviceRegistry
	commandMapper port.DeviceCommandMapper
	devices       map[string]*smartlife_cloud.CustomerDevice

	logger *zap.Logger
}

type devicesPollTick struct {
}

func NewDevicesActor(config *config.Config, cloudActor *actor.PID, eventStream *eventstream.EventStream,
	registry port.DeviceRegistry, commandMapper port.DeviceCommandMapper, logger *zap.Logger) *DevicesActor {
	act := &DevicesActor{
		config:        config,
		cloudActor:    cloudActor,
		behavior:      actor.NewBehavior(),
		stash:         &Stash{},
		logger:        ActorLogger(domain.ACTOR_ID_DEVICES, logger),
		eventStream:   eventStream,
		registry:      registry,
		commandMapper: commandMapper,
		devices:       make(map[string]*smartlife_cloud.CustomerDevice),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *DevicesActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *DevicesActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("devices@starting started")

		if state.config.MonitorConfig.PollIntervalMillis > 0 {
			state.scheduler = scheduler.NewTimerScheduler(ctx)
		}

		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.cloudActor, domain.GetDevicesRequest{}, 15*time.Second), func(err error) any {
			return domain.GetDevicesResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			}
		})
		state.behavior.Become(state.WaitingDevicesReceive)
	case *actor.Restarting:
	default:
		state.logger.Debug("devices@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *DevicesActor) WaitingDevicesReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetDevicesResponse:
		if msg.HasResponseError() {
			state.logger.Error("devices@waitingDevices GetDevicesResponse error", zap.Error(msg.GetResponseError()))
			panic(msg.GetResponseError())
		}
		state.logger.Debug("devices@waitingDevices GetDevicesResponse", zap.Int("count", len(msg.Devices)))
		for _, dev := range msg.Devices {
			if !state.registry.Claim(dev.ID) {
				state.logger.Warn("devices@waitingDevices device already claimed",
					zap.String("device", dev.ID))
				continue
			}
			state.devices[dev.ID] = dev
			state.eventStream.Publish(events.DeviceOnlineUpdateEvent(dev))
			// devices already report a status snapshot on discovery
			if len(dev.Status) > 0 {
				state.publishStatusEvents(dev, dev.Status)
			}
		}
		if state.scheduler != nil {
			state.scheduler.RequestOnce(time.Duration(state.config.MonitorConfig.PollIntervalMillis)*time.Millisecond, ctx.Self(), devicesPollTick{})
		}
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("devices@waitingDevices: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *DevicesActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("devices@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_DEVICES,
			Healthy: true,
			State:   "idle",
		})
	case devicesPollTick:
		state.logger.Debug("devices@default tick")
		for id := range state.devices {
			deviceId := id
			metrics.StatusPolls.Inc()
			PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.cloudActor, domain.GetDeviceStatusRequest{DeviceId: deviceId}, 15*time.Second), func(err error) any {
				return domain.GetDeviceStatusResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
					DeviceId: deviceId,
				}
			})
		}
		// schedule next tick
		state.scheduler.RequestOnce(time.Duration(state.config.MonitorConfig.PollIntervalMillis)*time.Millisecond, ctx.Self(), devicesPollTick{})
	case domain.GetDeviceStatusResponse:
		if msg.HasResponseError() {
			metrics.StatusPollErrors.Inc()
			state.logger.Error("devices@default GetDeviceStatusResponse error",
				zap.String("device", msg.DeviceId), zap.Error(msg.GetResponseError()))
			return
		}
		state.logger.Debug("devices@default GetDeviceStatusResponse", zap.String("device", msg.DeviceId))
		dev, ok := state.devices[msg.DeviceId]
		if !ok {
			return
		}
		dev.Status = msg.Status
		state.publishStatusEvents(dev, msg.Status)
	case domain.DeviceCommandRequest:
		state.handleDeviceCommand(ctx, msg)
	case domain.SendCommandsResponse:
		if msg.HasResponseError() {
			metrics.CommandsFailed.Inc()
			state.logger.Error("devices@default SendCommandsResponse error",
				zap.String("device", msg.DeviceId), zap.Error(msg.GetResponseError()))
			return
		}
		state.logger.Debug("devices@default SendCommandsResponse", zap.String("device", msg.DeviceId))
		// refresh state so entities converge even if the device ignored
		// part of the command
		deviceId := msg.DeviceId
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.cloudActor, domain.GetDeviceStatusRequest{DeviceId: deviceId}, 15*time.Second), func(err error) any {
			return domain.GetDeviceStatusResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: err,
				},
				DeviceId: deviceId,
			}
		})
	case *actor.Stopping:
		for id := range state.devices {
			state.registry.Release(id)
		}
	default:
		state.logger.Debug("devices@default: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *DevicesActor) handleDeviceCommand(ctx actor.Context, cmd domain.DeviceCommandRequest) {
	state.logger.Debug("devices@default DeviceCommandRequest",
		zap.String("device", cmd.TargetDeviceId()), zap.String("code", cmd.TargetCode()))

	dev, ok := state.devices[cmd.TargetDeviceId()]
	if !ok {
		metrics.CommandsFailed.Inc()
		state.logger.Warn("devices@default command for unknown device",
			zap.String("device", cmd.TargetDeviceId()))
		return
	}
	commands, err := state.commandMapper.MapCommand(dev, cmd)
	if err != nil {
		metrics.CommandsFailed.Inc()
		state.logger.Error("devices@default could not map command",
			zap.String("device", dev.ID), zap.String("code", cmd.TargetCode()), zap.Error(err))
		return
	}
	metrics.CommandsSent.Inc()
	deviceId := dev.ID
	PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.cloudActor, domain.SendCommandsRequest{
		DeviceId: deviceId,
		Commands: commands,
	}, 15*time.Second), func(err error) any {
		return domain.SendCommandsResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: err,
			},
			DeviceId: deviceId,
		}
	})
}

func (state *DevicesActor) publishStatusEvents(dev *smartlife_cloud.CustomerDevice, status map[smartlife_cloud.DPCode]any) {
	evs := events.DeviceStatusToUpdateEvents(dev, status, state.logger)
	for _, ev := range evs {
		metrics.EntityUpdates.Inc()
		state.eventStream.Publish(ev)
	}
}
