package flags

import (
	"context"

	"github.com/vytor/nahuatl/internal/repository"
)

// DeviceStore scopes a FlagRepository to a single device.
type DeviceStore struct {
	repo     repository.FlagRepository
	deviceID string
}

func NewDeviceStore(repo repository.FlagRepository, deviceID string) *DeviceStore {
	return &DeviceStore{repo: repo, deviceID: deviceID}
}

func (s *DeviceStore) DeviceID() string {
	return s.deviceID
}

func (s *DeviceStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.repo.Get(ctx, s.deviceID, key)
}

func (s *DeviceStore) Set(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, s.deviceID, key, value)
}

func (s *DeviceStore) Remove(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, s.deviceID, key)
}
