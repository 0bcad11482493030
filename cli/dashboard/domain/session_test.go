package domain

import (
	"context"
	"testing"

	"github.com/daniil11ru/visla/cli/dashboard/api"
	"github.com/daniil11ru/visla/cli/dashboard/state"
	"github.com/daniil11ru/visla/cli/dashboard/storage"
	"github.com/daniil11ru/visla/cli/dashboard/storage/store"
	"github.com/daniil11ru/visla/cli/dashboard/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(client *fakeSessionClient) (*Session, *state.Container, store.Store) {
	container := state.NewContainer()
	db := storage.NewMemory()
	return &Session{Client: client, State: container, Storage: db}, container, db
}

func TestSessionLogin(t *testing.T) {
	ctx := context.Background()
	client := &fakeSessionClient{user: types.User{ID: 1, Email: "admin@visla.it"}, password: "secret"}
	session, container, db := newSession(client)

	_, err := session.Login(ctx, "admin@visla.it", "wrong", "")
	assert.ErrorIs(t, err, api.ErrInvalidCredentials)
	_, ok := container.User()
	assert.False(t, ok)

	user, err := session.Login(ctx, "admin@visla.it", "secret", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	current, ok := container.User()
	require.True(t, ok)
	assert.Equal(t, "admin@visla.it", current.Email)

	server, ok := container.Server()
	require.True(t, ok)
	assert.Equal(t, "6.2", server.Version)

	var persisted types.User
	require.NoError(t, storage.LoadJSON(ctx, db, storage.KeySession, &persisted))
	assert.Equal(t, int64(1), persisted.ID)

	_, err = db.Load(ctx, storage.KeyAuthToken)
	assert.ErrorIs(t, err, store.ErrNotFound, "password login keeps no token")
}

func TestSessionLoginTOTP(t *testing.T) {
	ctx := context.Background()
	client := &fakeSessionClient{user: types.User{ID: 1}, password: "secret", code: "123456"}
	session, container, _ := newSession(client)

	_, err := session.Login(ctx, "admin@visla.it", "secret", "")
	assert.ErrorIs(t, err, api.ErrTOTPRequired)

	_, err = session.Login(ctx, "admin@visla.it", "secret", "123456")
	require.NoError(t, err)
	_, ok := container.User()
	assert.True(t, ok)
}

func TestSessionRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing persisted", func(t *testing.T) {
		session, container, _ := newSession(&fakeSessionClient{})
		restored, err := session.Restore(ctx)
		require.NoError(t, err)
		assert.False(t, restored)
		assert.True(t, container.UI().SidebarOpen, "default sidebar state")
	})

	t.Run("user and sidebar flag", func(t *testing.T) {
		client := &fakeSessionClient{user: types.User{ID: 4}, validToken: "tok"}
		session, container, db := newSession(client)
		require.NoError(t, storage.SaveJSON(ctx, db, storage.KeySession, types.User{ID: 4, Email: "ops@visla.it"}))
		require.NoError(t, storage.SaveJSON(ctx, db, storage.KeyUI, persistedUI{SidebarOpen: false}))
		require.NoError(t, db.Save(ctx, storage.KeyAuthToken, []byte("tok")))

		restored, err := session.Restore(ctx)
		require.NoError(t, err)
		assert.True(t, restored)
		assert.False(t, container.UI().SidebarOpen)
		assert.Equal(t, "tok", client.Token())

		user, ok := container.User()
		require.True(t, ok)
		assert.Equal(t, "ops@visla.it", user.Email)
	})

	t.Run("rejected token", func(t *testing.T) {
		client := &fakeSessionClient{validToken: "fresh"}
		session, container, db := newSession(client)
		require.NoError(t, storage.SaveJSON(ctx, db, storage.KeySession, types.User{ID: 4}))
		require.NoError(t, db.Save(ctx, storage.KeyAuthToken, []byte("expired")))

		restored, err := session.Restore(ctx)
		require.NoError(t, err)
		assert.False(t, restored)
		_, ok := container.User()
		assert.False(t, ok)

		_, err = db.Load(ctx, storage.KeySession)
		assert.ErrorIs(t, err, store.ErrNotFound)
		_, err = db.Load(ctx, storage.KeyAuthToken)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("corrupted session", func(t *testing.T) {
		session, _, db := newSession(&fakeSessionClient{})
		require.NoError(t, db.Save(ctx, storage.KeySession, []byte("{")))

		_, err := session.Restore(ctx)
		assert.Error(t, err)
	})
}

func TestSessionTeardown(t *testing.T) {
	ctx := context.Background()
	client := &fakeSessionClient{user: types.User{ID: 1}, validToken: "tok", logoutErr: errBackend}
	session, container, db := newSession(client)

	_, err := session.LoginWithToken(ctx, "tok")
	require.NoError(t, err)
	require.NoError(t, session.SetSidebarOpen(ctx, false))
	container.MergePositions([]types.Position{{DeviceID: 1}})
	container.UpsertDevice(types.Device{ID: 1})

	token, err := db.Load(ctx, storage.KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "tok", string(token))

	err = session.Teardown(ctx)
	assert.ErrorIs(t, err, errBackend, "logout error is reported")
	assert.True(t, client.loggedOut)

	_, ok := container.User()
	assert.False(t, ok)
	assert.Empty(t, container.Positions())
	assert.Len(t, container.Devices(), 1)
	assert.False(t, container.UI().SidebarOpen)

	_, err = db.Load(ctx, storage.KeySession)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = db.Load(ctx, storage.KeyAuthToken)
	assert.ErrorIs(t, err, store.ErrNotFound)

	var ui persistedUI
	require.NoError(t, storage.LoadJSON(ctx, db, storage.KeyUI, &ui))
	assert.False(t, ui.SidebarOpen, "sidebar flag survives teardown")
}

func TestSessionToggleSidebar(t *testing.T) {
	ctx := context.Background()
	session, _, db := newSession(&fakeSessionClient{})

	open, err := session.ToggleSidebar(ctx)
	require.NoError(t, err)
	assert.False(t, open)

	var ui persistedUI
	require.NoError(t, storage.LoadJSON(ctx, db, storage.KeyUI, &ui))
	assert.False(t, ui.SidebarOpen)

	open, err = session.ToggleSidebar(ctx)
	require.NoError(t, err)
	assert.True(t, open)
}
