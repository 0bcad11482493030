package domain

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/daniil11ru/visla/cli/dashboard/api"
	"github.com/daniil11ru/visla/cli/dashboard/types"
	"github.com/sirupsen/logrus"
)

func init() {
	logrus.SetOutput(io.Discard)
}

type fakeFleet struct {
	mu           sync.Mutex
	devices      []types.Device
	positions    []types.Position
	devicesErr   error
	positionsErr error
	groups       []types.Group
	geofences    []types.Geofence
	catalogErr   error
	calls        int
}

func (f *fakeFleet) Devices(context.Context) ([]types.Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.devices, f.devicesErr
}

func (f *fakeFleet) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeFleet) LatestPositions(context.Context, *int64) ([]types.Position, error) {
	return f.positions, f.positionsErr
}

func (f *fakeFleet) Groups(context.Context) ([]types.Group, error) {
	return f.groups, f.catalogErr
}

func (f *fakeFleet) Geofences(context.Context) ([]types.Geofence, error) {
	return f.geofences, f.catalogErr
}

type fakeSessionClient struct {
	user       types.User
	password   string
	code       string
	validToken string
	token      string
	logoutErr  error
	loggedOut  bool
}

func (f *fakeSessionClient) Login(_ context.Context, email, password string) (types.User, error) {
	if f.code != "" {
		return types.User{}, api.ErrTOTPRequired
	}
	if password != f.password {
		return types.User{}, api.ErrInvalidCredentials
	}
	return f.user, nil
}

func (f *fakeSessionClient) LoginWithCode(_ context.Context, email, password, code string) (types.User, error) {
	if password != f.password || code != f.code {
		return types.User{}, api.ErrInvalidCredentials
	}
	return f.user, nil
}

func (f *fakeSessionClient) LoginWithToken(_ context.Context, token string) (types.User, error) {
	if token != f.validToken {
		return types.User{}, api.ErrInvalidCredentials
	}
	f.token = token
	return f.user, nil
}

func (f *fakeSessionClient) Logout(context.Context) error {
	f.loggedOut = true
	f.token = ""
	return f.logoutErr
}

func (f *fakeSessionClient) Server(context.Context) (types.ServerInfo, error) {
	return types.ServerInfo{Version: "6.2"}, nil
}

func (f *fakeSessionClient) Token() string {
	return f.token
}

type fakeDeleter struct {
	err     error
	deleted []int64
}

func (f *fakeDeleter) DeleteDevice(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

var errBackend = errors.New("backend unavailable")
