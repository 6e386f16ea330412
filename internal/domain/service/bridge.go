package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"echonet-alexa-bridge/internal/domain/alexa"
	"echonet-alexa-bridge/internal/domain/model"
	"echonet-alexa-bridge/internal/domain/translator"
	"echonet-alexa-bridge/internal/ports"
)

const (
	DefaultDeviceType   = "homeAirConditioner"
	DefaultManufacturer = "ECHONET Lite Client"

	// SceneAutoJudge is the child id of the scene that picks cooling or heating.
	SceneAutoJudge = "AutoJudge"

	sceneSeparator = "@"
)

// Deps holds what BridgeService needs. API is required.
type Deps struct {
	API        ports.DeviceAPI
	Names      ports.EndpointNameRepository
	Publishers []ports.StatePublisher
	Logger     *zap.Logger
	Discovery  model.DiscoveryConfig
	DeviceType string
	AirFlow    *translator.AirFlowFormula
	Location   *time.Location
	Now        func() time.Time
}

// BridgeService implements one handler per supported directive. Every handler
// reads the device fresh from the API, writes at most once and builds its
// reports from the locally merged snapshot.
type BridgeService struct {
	api        ports.DeviceAPI
	names      ports.EndpointNameRepository
	publishers []ports.StatePublisher
	logger     *zap.Logger
	discovery  model.DiscoveryConfig
	deviceType string
	ranges     *translator.Factory
	airFlow    *translator.AirFlowFormula
	location   *time.Location
	now        func() time.Time
}

func NewBridgeService(deps Deps) (*BridgeService, error) {
	if deps.API == nil {
		return nil, fmt.Errorf("device API is required")
	}
	s := &BridgeService{
		api:        deps.API,
		names:      deps.Names,
		publishers: deps.Publishers,
		logger:     deps.Logger,
		discovery:  deps.Discovery,
		deviceType: deps.DeviceType,
		ranges:     translator.NewFactory(),
		airFlow:    deps.AirFlow,
		location:   deps.Location,
		now:        deps.Now,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.deviceType == "" {
		s.deviceType = DefaultDeviceType
	}
	if s.discovery.Manufacturer == "" {
		s.discovery.Manufacturer = DefaultManufacturer
	}
	if s.airFlow == nil {
		f, err := translator.NewAirFlowFormula(translator.DefaultAirFlowFormula)
		if err != nil {
			return nil, err
		}
		s.airFlow = f
	}
	if s.location == nil {
		s.location = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

func (s *BridgeService) clock() time.Time {
	return s.now().In(s.location)
}

func endpointID(req *alexa.Request) (string, error) {
	id := req.EndpointID()
	if id == "" {
		return "", fmt.Errorf("directive %s.%s has no endpoint", req.Directive.Header.Namespace, req.Directive.Header.Name)
	}
	return id, nil
}

func (s *BridgeService) Discover(ctx context.Context, req *alexa.Request) (*alexa.Response, error) {
	ids, err := s.api.ListDeviceIDs(ctx)
	if err != nil {
		return nil, err
	}

	names := model.EndpointNames{}
	if s.names != nil {
		if names, err = s.names.Get(ctx); err != nil {
			s.logger.Warn("endpoint names unavailable, using device ids", zap.Error(err))
			names = model.EndpointNames{}
		}
	}

	endpoints := make([]alexa.DiscoveryEndpoint, 0, len(ids))
	for _, id := range ids {
		friendlyName := id
		description := fmt.Sprintf("ECHONET Lite %s %s", s.deviceType, id)
		if n, ok := names[id]; ok {
			if n.FriendlyName != "" {
				friendlyName = n.FriendlyName
			}
			if n.Description != "" {
				description = n.Description
			}
		}

		endpoints = append(endpoints, alexa.DiscoveryEndpoint{
			EndpointID:        id,
			ManufacturerName:  s.discovery.Manufacturer,
			FriendlyName:      friendlyName,
			Description:       description,
			DisplayCategories: []string{alexa.DisplayCategoryThermostat, alexa.DisplayCategoryTemperatureSensor},
			Capabilities:      alexa.ThermostatCapabilities(),
		})

		if s.discovery.Scenes {
			endpoints = append(endpoints, alexa.DiscoveryEndpoint{
				EndpointID:        id + sceneSeparator + SceneAutoJudge,
				ManufacturerName:  s.discovery.Manufacturer,
				FriendlyName:      friendlyName + " " + SceneAutoJudge,
				Description:       fmt.Sprintf("Start cooling or heating %s from the room temperature", id),
				DisplayCategories: []string{alexa.DisplayCategorySceneTrigger},
				Capabilities:      alexa.SceneCapabilities(),
			})
		}
	}

	s.logger.Info("discovered endpoints", zap.Int("devices", len(ids)), zap.Int("endpoints", len(endpoints)))
	return alexa.NewDiscoverResponse(endpoints), nil
}

func (s *BridgeService) AcceptGrant(ctx context.Context, req *alexa.Request) (*alexa.Response, error) {
	return alexa.NewAcceptGrantResponse(), nil
}

func (s *BridgeService) ReportState(ctx context.Context, req *alexa.Request) (*alexa.Response, error) {
	id, err := endpointID(req)
	if err != nil {
		return nil, err
	}
	props, err := s.api.GetProperties(ctx, id)
	if err != nil {
		return nil, err
	}
	reports := translator.Reports(props, s.clock(), 0)
	s.publish(ctx, id, reports)
	return alexa.NewStateReport(req, reports), nil
}

// SetTargetTemperature sets an absolute setpoint. Setpoints 50..58 select the
// air flow level instead, see translator.AirFlowFormula.
func (s *BridgeService) SetTargetTemperature(ctx context.Context, req *alexa.Request) (*alexa.Response, error) {
	id, err := endpointID(req)
	if err != nil {
		return nil, err
	}
	props, err := s.api.GetProperties(ctx, id)
	if err != nil {
		return nil, err
	}
	if props.OperationMode == model.OperationModeCirculation {
		return nil, alexa.NewNotInOperationError()
	}

	var payload alexa.SetTargetTemperaturePayload
	if err := req.DecodePayload(&payload); err != nil {
		return nil, fmt.Errorf("decode SetTargetTemperature payload: %w", err)
	}
	setpoint := int(payload.TargetSetpoint.Value)

	update := &model.PropertiesUpdate{}
	if level, ok := s.airFlow.Level(setpoint); ok {
		update.SetAirFlowLevel(level)
	} else {
		r := s.ranges.GetRange(props.ProductCode)
		if !r.Contains(setpoint) {
			return nil, alexa.NewTemperatureRangeError(r.Min, r.Max)
		}
		update.SetTargetTemperature(setpoint).SetOperationStatus(true)
	}
	return s.applyAndRespond(ctx, req, id, props, update)
}

func (s *BridgeService) AdjustTargetTemperature(ctx context.Context, req *alexa.Request) (*alexa.Response, error) {
	id, err := endpointID(req)
	if err != nil {
		return nil, err
	}
	props, err := s.api.GetProperties(ctx, id)
	if err != nil {
		return nil, err
	}
	if props.OperationMode == model.OperationModeCirculation {
		return nil, alexa.NewNotInOperationError()
	}

	var payload alexa.AdjustTargetTemperaturePayload
	if err := req.DecodePayload(&payload); err != nil {
		return nil, fmt.Errorf("decode AdjustTargetTemperature payload: %w", err)
	}
	setpoint := props.TargetTemperature + int(payload.TargetSetpointDelta.Value)

	r := s.ranges.GetRange(props.ProductCode)
	if !r.Contains(setpoint) {
		return nil, alexa.NewTemperatureRangeError(r.Min, r.Max)
	}
	update := (&model.PropertiesUpdate{}).SetTargetTemperature(setpoint).SetOperationStatus(true)
	return s.applyAndRespond(ctx, req, id, props, update)
}

// SetThermostatMode switches the operation mode. A mode without an ECHONET
// equivalent (OFF, unknown custom names) turns the unit off instead.
func (s *BridgeService) SetThermostatMode(ctx context.Context, req *alexa.Request) (*alexa.Response, error) {
	id, err := endpointID(req)
	if err != nil {
		return nil, err
	}
	props, err := s.api.GetProperties(ctx, id)
	if err != nil {
		return nil, err
	}

	var payload alexa.SetThermostatModePayload
	if err := req.DecodePayload(&payload); err != nil {
		return nil, fmt.Errorf("decode SetThermostatMode payload: %w", err)
	}
	requested := translator.ThermostatMode(payload.ThermostatMode.Value)
	mode, ok := translator.ToBackendMode(requested, payload.ThermostatMode.CustomName)

	update := &model.PropertiesUpdate{}
	if ok {
		update.SetOperationMode(mode).SetOperationStatus(true)
	} else {
		if requested == translator.ThermostatCustom {
			s.logger.Info("unmapped custom operation mode", zap.String("customName", payload.ThermostatMode.CustomName))
		}
		update.SetOperationStatus(false)
	}
	return s.applyAndRespond(ctx, req, id, props, update)
}

func (s *BridgeService) TurnOn(ctx context.Context, req *alexa.Request) (*alexa.Response, error) {
	return s.power(ctx, req, true)
}

func (s *BridgeService) TurnOff(ctx context.Context, req *alexa.Request) (*alexa.Response, error) {
	return s.power(ctx, req, false)
}

func (s *BridgeService) power(ctx context.Context, req *alexa.Request, on bool) (*alexa.Response, error) {
	id, err := endpointID(req)
	if err != nil {
		return nil, err
	}
	props, err := s.api.GetProperties(ctx, id)
	if err != nil {
		return nil, err
	}
	update := (&model.PropertiesUpdate{}).SetOperationStatus(on)
	return s.applyAndRespond(ctx, req, id, props, update)
}

// ActivateScene handles scene endpoints addressed as "<deviceId>@<childId>".
func (s *BridgeService) ActivateScene(ctx context.Context, req *alexa.Request) (*alexa.Response, error) {
	endpoint, err := endpointID(req)
	if err != nil {
		return nil, err
	}
	id, childID, _ := strings.Cut(endpoint, sceneSeparator)

	switch childID {
	case SceneAutoJudge:
		if err := s.autoJudge(ctx, id); err != nil {
			return nil, err
		}
	default:
		return nil, alexa.NewInternalError()
	}
	return alexa.NewActivationStarted(req, s.clock()), nil
}

// DeactivateScene is not supported for any scene.
func (s *BridgeService) DeactivateScene(ctx context.Context, req *alexa.Request) (*alexa.Response, error) {
	_, childID, _ := strings.Cut(req.EndpointID(), sceneSeparator)
	return nil, fmt.Errorf("undefined childId: %s", childID)
}

func (s *BridgeService) autoJudge(ctx context.Context, id model.DeviceID) error {
	props, err := s.api.GetProperties(ctx, id)
	if err != nil {
		return err
	}
	now := s.clock()
	update := translator.AutoJudge(props, now)
	if update == nil {
		s.logger.Info("auto judge: no action", zap.String("endpointId", id), zap.Float64("roomTemperature", props.RoomTemperature))
		return nil
	}
	if err := s.api.UpdateProperties(ctx, id, update); err != nil {
		return err
	}
	props.Apply(update)
	s.logger.Info("auto judge: switched on", zap.String("endpointId", id), zap.String("operationMode", string(props.OperationMode)))
	s.publish(ctx, id, translator.Reports(props, now, 0))
	return nil
}

func (s *BridgeService) applyAndRespond(ctx context.Context, req *alexa.Request, id model.DeviceID, props *model.DeviceProperties, update *model.PropertiesUpdate) (*alexa.Response, error) {
	if err := s.api.UpdateProperties(ctx, id, update); err != nil {
		return nil, err
	}
	props.Apply(update)
	reports := translator.Reports(props, s.clock(), 0)
	s.publish(ctx, id, reports)
	return alexa.NewResponse(req, reports), nil
}

func (s *BridgeService) publish(ctx context.Context, id string, reports []alexa.Property) {
	for _, p := range s.publishers {
		if err := p.Publish(ctx, id, reports); err != nil {
			s.logger.Warn("publish state failed", zap.String("endpointId", id), zap.Error(err))
		}
	}
}
