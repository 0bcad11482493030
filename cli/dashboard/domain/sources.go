package domain

import (
	"context"

	"github.com/daniil11ru/visla/cli/dashboard/types"
)

// FleetSource источник списка устройств и их последних координат
type FleetSource interface {
	Devices(ctx context.Context) ([]types.Device, error)
	LatestPositions(ctx context.Context, deviceID *int64) ([]types.Position, error)
}

// CatalogSource источник справочников: группы и геозоны
type CatalogSource interface {
	Groups(ctx context.Context) ([]types.Group, error)
	Geofences(ctx context.Context) ([]types.Geofence, error)
}

type SessionClient interface {
	Login(ctx context.Context, email, password string) (types.User, error)
	LoginWithCode(ctx context.Context, email, password, code string) (types.User, error)
	LoginWithToken(ctx context.Context, token string) (types.User, error)
	Logout(ctx context.Context) error
	Server(ctx context.Context) (types.ServerInfo, error)
	Token() string
}

type DeviceDeleter interface {
	DeleteDevice(ctx context.Context, id int64) error
}
