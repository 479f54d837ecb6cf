package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/waypost/waypost/pkg/client"
	"github.com/waypost/waypost/pkg/location"
)

// mockProvider is a mock implementation of location.Provider.
type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Sample(ctx context.Context) (location.Position, error) {
	args := m.Called(ctx)
	return args.Get(0).(location.Position), args.Error(1)
}

func (m *mockProvider) Close() error {
	args := m.Called()
	return args.Error(0)
}

// mockLocationClient is a mock implementation of LocationClient.
type mockLocationClient struct {
	mock.Mock
}

func (m *mockLocationClient) Report(ctx context.Context, pos location.Position) (*client.LocationRecord, error) {
	args := m.Called(ctx, pos)
	if rec := args.Get(0); rec != nil {
		return rec.(*client.LocationRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLocationClient) FetchLatest(ctx context.Context) (*client.LocationRecord, error) {
	args := m.Called(ctx)
	if rec := args.Get(0); rec != nil {
		return rec.(*client.LocationRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

// mockRenderer is a mock implementation of render.Renderer.
type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Render(record *client.LocationRecord) error {
	args := m.Called(record)
	return args.Error(0)
}
