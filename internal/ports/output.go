package ports

import (
	"context"
	"time"

	"echonet-alexa-bridge/internal/domain/alexa"
	"echonet-alexa-bridge/internal/domain/model"
)

// DeviceAPI is the ECHONET Lite web API the bridge drives.
type DeviceAPI interface {
	ListDeviceIDs(ctx context.Context) ([]model.DeviceID, error)
	GetProperties(ctx context.Context, id model.DeviceID) (*model.DeviceProperties, error)
	UpdateProperties(ctx context.Context, id model.DeviceID, update *model.PropertiesUpdate) error
	ReloadProperties(ctx context.Context, id model.DeviceID, names ...model.PropertyName) error
}

// StatePublisher receives the property reports produced for an endpoint.
type StatePublisher interface {
	Publish(ctx context.Context, endpointID string, properties []alexa.Property) error
}

// Metrics records directive outcomes.
type Metrics interface {
	ObserveDirective(namespace, name, result string, elapsed time.Duration)
}
