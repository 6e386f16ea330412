package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"echonet-alexa-bridge/internal/domain/model"
)

func TestNameService_SetName(t *testing.T) {
	api := new(MockDeviceAPI)
	api.On("ListDeviceIDs", mock.Anything).Return([]model.DeviceID{"ac-1", "ac-2"}, nil)
	repo := new(MockNames)
	repo.On("Get", mock.Anything).Return(model.EndpointNames{"ac-2": {FriendlyName: "Bedroom"}}, nil)
	repo.On("Save", mock.Anything, model.EndpointNames{
		"ac-1": {FriendlyName: "Living room"},
		"ac-2": {FriendlyName: "Bedroom"},
	}).Return(nil)

	s := NewNameService(repo, api)
	err := s.SetName(context.Background(), "ac-1", model.EndpointName{FriendlyName: "Living room"})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestNameService_SetName_Remove(t *testing.T) {
	api := new(MockDeviceAPI)
	api.On("ListDeviceIDs", mock.Anything).Return([]model.DeviceID{"ac-1"}, nil)
	repo := new(MockNames)
	repo.On("Get", mock.Anything).Return(model.EndpointNames{"ac-1": {FriendlyName: "Living room"}}, nil)
	repo.On("Save", mock.Anything, model.EndpointNames{}).Return(nil)

	s := NewNameService(repo, api)
	assert.NoError(t, s.SetName(context.Background(), "ac-1", model.EndpointName{}))
	repo.AssertExpectations(t)
}

func TestNameService_SetName_UnknownDevice(t *testing.T) {
	api := new(MockDeviceAPI)
	api.On("ListDeviceIDs", mock.Anything).Return([]model.DeviceID{"ac-1"}, nil)
	repo := new(MockNames)

	s := NewNameService(repo, api)
	err := s.SetName(context.Background(), "ac-9", model.EndpointName{FriendlyName: "Nowhere"})
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
