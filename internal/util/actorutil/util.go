package actorutil

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/lmittmann/tint"
	"go.uber.org/zap"

	"smartlife2mqtt/internal/core/domain"
	"smartlife2mqtt/internal/core/events"
	"smartlife2mqtt/internal/mqtt"
)

func PipeToSelfWithRecover(ctx actor.Context, future *actor.Future, mapFn func(error) any) {
	ctx.ReenterAfter(future, func(msg any, err error) {
		if err != nil {
			ctx.Send(ctx.Self(), mapFn(err))
			return
		}
		ctx.Send(ctx.Self(), msg)
	})
}

func NewActorSystemWithZapLogger(logger *zap.Logger) *actor.ActorSystem {
	stdOutLogger := zap.NewStdLog(logger)

	var slogLevel slog.Level = slog.LevelInfo

	switch logger.Level() {
	case zap.DebugLevel:
		slogLevel = slog.LevelDebug
	case zap.InfoLevel:
		slogLevel = slog.LevelInfo
	case zap.WarnLevel:
		slogLevel = slog.LevelWarn
	case zap.ErrorLevel:
		slogLevel = slog.LevelError
	case zap.PanicLevel:
		slogLevel = slog.LevelError
	}

	return actor.NewActorSystem(actor.WithLoggerFactory(func(system *actor.ActorSystem) *slog.Logger {

		// create a new logger
		return slog.New(tint.NewHandler(stdOutLogger.Writer(), &tint.Options{
			Level:      slogLevel,
			TimeFormat: time.DateTime,
		}))
	}))
}

func ActorLogger(actorName string, logger *zap.Logger) *zap.Logger {
	return logger.With(zap.String("actor", actorName))
}

// ParsedMQTTCommandToCommand maps an inbound MQTT command to a device
// command request. Entity ids carry the device id before the first
// underscore.
func ParsedMQTTCommandToCommand(cmd mqtt.ParsedMQTTCommand) (domain.DeviceCommandRequest, error) {
	deviceId, code, ok := events.SplitEntityId(cmd.EntityId)
	if !ok {
		return nil, nil
	}
	mixin := domain.DeviceCommandRequestMixIn{
		DeviceId: deviceId,
		Code:     code,
	}
	switch cmd.Command {
	case "switch":
		return &domain.SwitchCommandRequest{
			DeviceCommandRequestMixIn: mixin,
			On:                        cmd.Payload == mqtt.MQTT_PAYLOAD_ON,
		}, nil
	case "number":
		value, err := strconv.ParseFloat(cmd.Payload, 64)
		if err != nil {
			return nil, err
		}
		return &domain.NumberCommandRequest{
			DeviceCommandRequestMixIn: mixin,
			Value:                     value,
		}, nil
	case "select":
		return &domain.SelectCommandRequest{
			DeviceCommandRequestMixIn: mixin,
			Option:                    cmd.Payload,
		}, nil
	case "button":
		return &domain.ButtonCommandRequest{
			DeviceCommandRequestMixIn: mixin,
		}, nil
	}
	return nil, nil
}
