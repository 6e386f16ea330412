package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"echonet-alexa-bridge/internal/domain/alexa"
	"echonet-alexa-bridge/internal/ports"
)

const resultSuccess = "success"

// HandlerFunc handles one directive type.
type HandlerFunc func(ctx context.Context, req *alexa.Request) (*alexa.Response, error)

type directiveKey struct {
	namespace string
	name      string
}

// Dispatcher routes directives by (namespace, name) and is the single place
// where errors become Alexa ErrorResponses.
type Dispatcher struct {
	routes  map[directiveKey]HandlerFunc
	logger  *zap.Logger
	metrics ports.Metrics
}

var _ ports.DirectivePort = (*Dispatcher)(nil)

type nopMetrics struct{}

func (nopMetrics) ObserveDirective(string, string, string, time.Duration) {}

func NewDispatcher(svc *BridgeService, logger *zap.Logger, metrics ports.Metrics) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	d := &Dispatcher{
		routes:  make(map[directiveKey]HandlerFunc),
		logger:  logger,
		metrics: metrics,
	}
	d.Register(alexa.NamespaceDiscovery, alexa.NameDiscover, svc.Discover)
	d.Register(alexa.NamespaceAuthorization, alexa.NameAcceptGrant, svc.AcceptGrant)
	d.Register(alexa.NamespaceAlexa, alexa.NameReportState, svc.ReportState)
	d.Register(alexa.NamespaceThermostat, alexa.NameSetTargetTemperature, svc.SetTargetTemperature)
	d.Register(alexa.NamespaceThermostat, alexa.NameAdjustTargetTemperature, svc.AdjustTargetTemperature)
	d.Register(alexa.NamespaceThermostat, alexa.NameSetThermostatMode, svc.SetThermostatMode)
	d.Register(alexa.NamespacePower, alexa.NameTurnOn, svc.TurnOn)
	d.Register(alexa.NamespacePower, alexa.NameTurnOff, svc.TurnOff)
	d.Register(alexa.NamespaceScene, alexa.NameActivate, svc.ActivateScene)
	d.Register(alexa.NamespaceScene, alexa.NameDeactivate, svc.DeactivateScene)
	return d
}

func (d *Dispatcher) Register(namespace, name string, h HandlerFunc) {
	d.routes[directiveKey{namespace, name}] = h
}

// DispatchRaw decodes a directive and dispatches it. Undecodable input yields
// an INTERNAL_ERROR response.
func (d *Dispatcher) DispatchRaw(ctx context.Context, raw []byte) *alexa.Response {
	d.logger.Debug("requestData", zap.ByteString("body", raw))

	var req alexa.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		d.logger.Error("invalid directive", zap.Error(err))
		return alexa.NewErrorResponse(&req, fmt.Errorf("decode directive: %w", err))
	}
	return d.Dispatch(ctx, &req)
}

func (d *Dispatcher) Dispatch(ctx context.Context, req *alexa.Request) *alexa.Response {
	start := time.Now()
	namespace, name := req.Directive.Header.Namespace, req.Directive.Header.Name
	d.logger.Info("request", zap.String("namespace", namespace), zap.String("name", name))

	result := resultSuccess
	resp, err := d.handle(ctx, req)
	if err != nil {
		resp = alexa.NewErrorResponse(req, err)
		result = alexa.ErrorPayloadFor(err).Type
		d.logger.Error("directive failed",
			zap.String("namespace", namespace),
			zap.String("name", name),
			zap.String("endpointId", req.EndpointID()),
			zap.String("type", result),
			zap.Error(err),
		)
	}

	d.metrics.ObserveDirective(namespace, name, result, time.Since(start))
	d.logger.Info("response",
		zap.String("namespace", resp.Event.Header.Namespace),
		zap.String("name", resp.Event.Header.Name),
	)
	return resp
}

func (d *Dispatcher) handle(ctx context.Context, req *alexa.Request) (resp *alexa.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("panic recovered in directive handler", zap.Any("panic", r), zap.Stack("stack"))
			resp, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	h, ok := d.routes[directiveKey{req.Directive.Header.Namespace, req.Directive.Header.Name}]
	if !ok {
		return nil, fmt.Errorf("namespace: %s, name: %s", req.Directive.Header.Namespace, req.Directive.Header.Name)
	}
	resp, err = h(ctx, req)
	if err == nil && resp == nil {
		err = fmt.Errorf("handler returned no response")
	}
	return resp, err
}
