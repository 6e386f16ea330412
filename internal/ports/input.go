package ports

import (
	"context"

	"echonet-alexa-bridge/internal/domain/alexa"
	"echonet-alexa-bridge/internal/domain/model"
)

// DirectivePort is implemented by the dispatcher and consumed by inbound adapters.
// It never fails: every error is turned into an Alexa ErrorResponse.
type DirectivePort interface {
	Dispatch(ctx context.Context, req *alexa.Request) *alexa.Response
	DispatchRaw(ctx context.Context, raw []byte) *alexa.Response
}

// NamePort manages discovery names from the admin API.
type NamePort interface {
	GetNames(ctx context.Context) (model.EndpointNames, error)
	SetName(ctx context.Context, id model.DeviceID, name model.EndpointName) error
}
