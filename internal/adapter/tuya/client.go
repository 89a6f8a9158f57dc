package tuya

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tuya/tuya-connector-go/connector"
	"github.com/tuya/tuya-connector-go/connector/env"
	"go.uber.org/zap"

	"smartlife2mqtt/internal/config"
	"smartlife2mqtt/pkg/smartlife_cloud"
)

// regional OpenAPI endpoints
var apiHosts = map[string]string{
	"eu": "https://openapi.tuyaeu.com",
	"us": "https://openapi.tuyaus.com",
	"cn": "https://openapi.tuyacn.com",
	"in": "https://openapi.tuyain.com",
}

type deviceModel struct {
	ID          string `json:"id"`
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Online      bool   `json:"online"`
	Status      []struct {
		Code  string `json:"code"`
		Value any    `json:"value"`
	} `json:"status"`
}

type deviceListResponse struct {
	Code    int    `json:"code"`
	Msg     string `json:"msg"`
	Success bool   `json:"success"`
	Result  struct {
		List []deviceModel `json:"list"`
	} `json:"result"`
	T int64 `json:"t"`
}

type specificationResponse struct {
	Code    int    `json:"code"`
	Msg     string `json:"msg"`
	Success bool   `json:"success"`
	Result  struct {
		Category  string `json:"category"`
		Functions []struct {
			Code   string `json:"code"`
			Type   string `json:"type"`
			Values string `json:"values"`
		} `json:"functions"`
		Status []struct {
			Code   string `json:"code"`
			Type   string `json:"type"`
			Values string `json:"values"`
		} `json:"status"`
	} `json:"result"`
	T int64 `json:"t"`
}

type deviceStatusResponse struct {
	Code    int    `json:"code"`
	Msg     string `json:"msg"`
	Success bool   `json:"success"`
	Result  []struct {
		ID     string `json:"id"`
		Status []struct {
			Code  string `json:"code"`
			Value any    `json:"value"`
		} `json:"status"`
	} `json:"result"`
	T int64 `json:"t"`
}

type deviceCmdResponse struct {
	Code    int    `json:"code"`
	Msg     string `json:"msg"`
	Success bool   `json:"success"`
	Result  bool   `json:"result"`
	T       int64  `json:"t"`
}

// Manager talks to the Tuya OpenAPI on behalf of a single linked app
// account. The connector keeps token state globally, so only one Manager
// should exist per process.
type Manager struct {
	userID string
	logger *zap.Logger
}

var _ smartlife_cloud.DeviceManager = (*Manager)(nil)

func NewManager(cfg config.SmartLifeConfig, logger *zap.Logger) (*Manager, error) {
	host, ok := apiHosts[cfg.Region]
	if !ok {
		return nil, fmt.Errorf("tuya: unknown region %q (valid: eu, us, cn, in)", cfg.Region)
	}

	connector.InitWithOptions(
		env.WithApiHost(host),
		env.WithAccessID(cfg.AccessID),
		env.WithAccessKey(cfg.AccessKey),
	)

	return &Manager{
		userID: cfg.UserID,
		logger: logger.Named("tuya"),
	}, nil
}

func (m *Manager) GetDevices(ctx context.Context) ([]*smartlife_cloud.CustomerDevice, error) {
	var resp deviceListResponse

	err := connector.MakeGetRequest(ctx,
		connector.WithAPIUri(fmt.Sprintf("/v1.3/iot-03/devices?source_type=tuyaUser&source_id=%s", m.userID)),
		connector.WithResp(&resp))
	if err != nil {
		return nil, fmt.Errorf("tuya: list devices: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("tuya: list devices: %s", resp.Msg)
	}

	devices := make([]*smartlife_cloud.CustomerDevice, 0, len(resp.Result.List))
	for _, model := range resp.Result.List {
		dev := &smartlife_cloud.CustomerDevice{
			ID:          model.ID,
			Name:        model.Name,
			Category:    model.Category,
			ProductID:   model.ProductID,
			ProductName: model.ProductName,
			Online:      model.Online,
			Status:      make(map[smartlife_cloud.DPCode]any, len(model.Status)),
			StatusRange: map[smartlife_cloud.DPCode]smartlife_cloud.DeviceStatusRange{},
			Function:    map[smartlife_cloud.DPCode]smartlife_cloud.DeviceFunction{},
		}
		for _, st := range model.Status {
			dev.Status[smartlife_cloud.DPCode(st.Code)] = st.Value
		}
		if err := m.fillSpecification(ctx, dev); err != nil {
			// some devices (gates among them) have no published schema,
			// they still get their category defaults downstream
			m.logger.Warn("could not fetch device specification",
				zap.String("device", dev.ID), zap.Error(err))
		}
		devices = append(devices, dev)
	}
	return devices, nil
}

func (m *Manager) fillSpecification(ctx context.Context, dev *smartlife_cloud.CustomerDevice) error {
	var resp specificationResponse

	err := connector.MakeGetRequest(ctx,
		connector.WithAPIUri(fmt.Sprintf("/v1.2/iot-03/devices/%s/specification", dev.ID)),
		connector.WithResp(&resp))
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("tuya: specification: %s", resp.Msg)
	}

	for _, fn := range resp.Result.Functions {
		code := smartlife_cloud.DPCode(fn.Code)
		dev.Function[code] = smartlife_cloud.DeviceFunction{
			Code:   code,
			Type:   smartlife_cloud.DPType(fn.Type),
			Values: fn.Values,
		}
	}
	for _, st := range resp.Result.Status {
		code := smartlife_cloud.DPCode(st.Code)
		dev.StatusRange[code] = smartlife_cloud.DeviceStatusRange{
			Code:   code,
			Type:   smartlife_cloud.DPType(st.Type),
			Values: st.Values,
		}
	}
	return nil
}

func (m *Manager) GetDeviceStatus(ctx context.Context, deviceID string) (map[smartlife_cloud.DPCode]any, error) {
	var resp deviceStatusResponse

	err := connector.MakeGetRequest(ctx,
		connector.WithAPIUri(fmt.Sprintf("/v1.0/iot-03/devices/status?device_ids=%s", deviceID)),
		connector.WithResp(&resp))
	if err != nil {
		return nil, fmt.Errorf("tuya: device status: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("tuya: device status: %s", resp.Msg)
	}

	status := map[smartlife_cloud.DPCode]any{}
	for _, dev := range resp.Result {
		if dev.ID != deviceID {
			continue
		}
		for _, st := range dev.Status {
			status[smartlife_cloud.DPCode(st.Code)] = st.Value
		}
	}
	return status, nil
}

func (m *Manager) SendCommands(ctx context.Context, deviceID string, commands []smartlife_cloud.Command) error {
	payload, err := json.Marshal(map[string]any{
		"commands": commands,
	})
	if err != nil {
		return err
	}

	var resp deviceCmdResponse
	err = connector.MakePostRequest(ctx,
		connector.WithAPIUri(fmt.Sprintf("/v1.0/iot-03/devices/%s/commands", deviceID)),
		connector.WithPayload(payload),
		connector.WithResp(&resp))
	if err != nil {
		return fmt.Errorf("tuya: send commands: %w", err)
	}
	if !resp.Success {
		return fmt.Errorf("tuya: send commands: %s", resp.Msg)
	}
	return nil
}
