package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"echonet-alexa-bridge/internal/domain/model"
	"echonet-alexa-bridge/internal/ports"
)

// JSONNameRepository keeps endpoint names in a JSON file keyed by device id.
type JSONNameRepository struct {
	filepath string
	mu       sync.RWMutex
}

var _ ports.EndpointNameRepository = (*JSONNameRepository)(nil)

func NewJSONNameRepository(filepath string) *JSONNameRepository {
	return &JSONNameRepository{filepath: filepath}
}

// Get returns an empty set when the file does not exist. Files written as a
// plain id to name map are accepted too.
func (r *JSONNameRepository) Get(ctx context.Context) (model.EndpointNames, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return model.EndpointNames{}, nil
		}
		return nil, err
	}

	var names model.EndpointNames
	if err := json.Unmarshal(data, &names); err == nil {
		if names == nil {
			names = model.EndpointNames{}
		}
		return names, nil
	}
	return r.migrate(data)
}

func (r *JSONNameRepository) migrate(data []byte) (model.EndpointNames, error) {
	var legacy map[model.DeviceID]string
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.filepath, err)
	}

	names := make(model.EndpointNames, len(legacy))
	for id, name := range legacy {
		names[id] = model.EndpointName{FriendlyName: name}
	}
	return names, nil
}

func (r *JSONNameRepository) Save(ctx context.Context, names model.EndpointNames) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(r.filepath, data, 0644)
}
