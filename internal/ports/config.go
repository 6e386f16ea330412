package ports

import (
	"context"

	"echonet-alexa-bridge/internal/domain/model"
)

// EndpointNameRepository stores display names for discovered devices.
type EndpointNameRepository interface {
	Get(ctx context.Context) (model.EndpointNames, error)
	Save(ctx context.Context, names model.EndpointNames) error
}
