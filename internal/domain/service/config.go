package service

import (
	"context"
	"fmt"

	"echonet-alexa-bridge/internal/domain/model"
	"echonet-alexa-bridge/internal/ports"
)

// NameService manages the friendly names used by discovery.
type NameService struct {
	repo ports.EndpointNameRepository
	api  ports.DeviceAPI
}

func NewNameService(repo ports.EndpointNameRepository, api ports.DeviceAPI) *NameService {
	return &NameService{
		repo: repo,
		api:  api,
	}
}

func (s *NameService) GetNames(ctx context.Context) (model.EndpointNames, error) {
	return s.repo.Get(ctx)
}

// SetName stores the name of a device known to the backend. An empty friendly
// name removes the entry.
func (s *NameService) SetName(ctx context.Context, id model.DeviceID, name model.EndpointName) error {
	ids, err := s.api.ListDeviceIDs(ctx)
	if err != nil {
		return err
	}
	if !containsID(ids, id) {
		return fmt.Errorf("device %s not found", id)
	}

	names, err := s.repo.Get(ctx)
	if err != nil {
		return err
	}
	if names == nil {
		names = model.EndpointNames{}
	}
	if name.FriendlyName == "" {
		delete(names, id)
	} else {
		names[id] = name
	}
	return s.repo.Save(ctx, names)
}

func containsID(ids []model.DeviceID, id model.DeviceID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
