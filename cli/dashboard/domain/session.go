package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/daniil11ru/visla/cli/dashboard/api"
	"github.com/daniil11ru/visla/cli/dashboard/state"
	"github.com/daniil11ru/visla/cli/dashboard/storage"
	"github.com/daniil11ru/visla/cli/dashboard/storage/store"
	"github.com/daniil11ru/visla/cli/dashboard/types"
	"github.com/sirupsen/logrus"
)

// persistedUI сохраняемая часть настроек интерфейса
type persistedUI struct {
	SidebarOpen bool `json:"sidebarOpen"`
}

// Session вход, восстановление и завершение сессии. Между запусками сохраняются
// только пользователь, токен доступа и флаг боковой панели.
type Session struct {
	Client  SessionClient
	State   *state.Container
	Storage store.Store
}

// Restore восстанавливает сохранённое состояние. Возвращает true, если пользователь восстановлен.
func (domain *Session) Restore(ctx context.Context) (bool, error) {
	var ui persistedUI
	switch err := storage.LoadJSON(ctx, domain.Storage, storage.KeyUI, &ui); {
	case err == nil:
		domain.State.SetSidebarOpen(ui.SidebarOpen)
	case !errors.Is(err, store.ErrNotFound):
		logrus.Warnf("Не удалось восстановить настройки интерфейса: %v", err)
	}

	var user types.User
	if err := storage.LoadJSON(ctx, domain.Storage, storage.KeySession, &user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("не удалось восстановить сессию: %w", err)
	}

	token, err := domain.Storage.Load(ctx, storage.KeyAuthToken)
	switch {
	case err == nil && len(token) > 0:
		if _, err := domain.Client.LoginWithToken(ctx, string(token)); err != nil {
			if errors.Is(err, api.ErrInvalidCredentials) {
				logrus.Warn("Сохранённый токен отклонён сервером, сессия сброшена")
				return false, domain.forget(ctx)
			}
			return false, fmt.Errorf("не удалось восстановить сессию: %w", err)
		}
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return false, fmt.Errorf("не удалось восстановить токен: %w", err)
	}

	domain.State.SetUser(&user)
	domain.loadServer(ctx)
	logrus.Infof("Сессия пользователя %s восстановлена", user.Email)
	return true, nil
}

// Login вход по паролю; code передаётся, если сервер требует TOTP
func (domain *Session) Login(ctx context.Context, email, password, code string) (types.User, error) {
	var user types.User
	var err error
	if code == "" {
		user, err = domain.Client.Login(ctx, email, password)
	} else {
		user, err = domain.Client.LoginWithCode(ctx, email, password, code)
	}
	if err != nil {
		return types.User{}, err
	}
	return user, domain.establish(ctx, user)
}

func (domain *Session) LoginWithToken(ctx context.Context, token string) (types.User, error) {
	user, err := domain.Client.LoginWithToken(ctx, token)
	if err != nil {
		return types.User{}, err
	}
	return user, domain.establish(ctx, user)
}

func (domain *Session) establish(ctx context.Context, user types.User) error {
	domain.State.SetUser(&user)
	domain.loadServer(ctx)

	if err := storage.SaveJSON(ctx, domain.Storage, storage.KeySession, user); err != nil {
		return fmt.Errorf("не удалось сохранить сессию: %w", err)
	}
	if token := domain.Client.Token(); token != "" {
		if err := domain.Storage.Save(ctx, storage.KeyAuthToken, []byte(token)); err != nil {
			return fmt.Errorf("не удалось сохранить токен: %w", err)
		}
	}
	return nil
}

func (domain *Session) loadServer(ctx context.Context) {
	server, err := domain.Client.Server(ctx)
	if err != nil {
		logrus.Warnf("Не удалось получить сведения о сервере: %v", err)
		return
	}
	domain.State.SetServer(&server)
}

// Teardown выход: сессия на сервере закрывается, в памяти и хранилище удаляются
// пользователь, токен и координаты. Флаг боковой панели остаётся.
func (domain *Session) Teardown(ctx context.Context) error {
	var logoutErr error
	if err := domain.Client.Logout(ctx); err != nil {
		logoutErr = fmt.Errorf("ошибка завершения сессии на сервере: %w", err)
	}
	return errors.Join(logoutErr, domain.forget(ctx))
}

func (domain *Session) forget(ctx context.Context) error {
	domain.State.ClearSession()
	return errors.Join(
		domain.Storage.Remove(ctx, storage.KeySession),
		domain.Storage.Remove(ctx, storage.KeyAuthToken),
	)
}

func (domain *Session) SetSidebarOpen(ctx context.Context, open bool) error {
	domain.State.SetSidebarOpen(open)
	return domain.persistUI(ctx)
}

func (domain *Session) ToggleSidebar(ctx context.Context) (bool, error) {
	open := domain.State.ToggleSidebar()
	return open, domain.persistUI(ctx)
}

func (domain *Session) persistUI(ctx context.Context) error {
	ui := persistedUI{SidebarOpen: domain.State.UI().SidebarOpen}
	if err := storage.SaveJSON(ctx, domain.Storage, storage.KeyUI, ui); err != nil {
		return fmt.Errorf("не удалось сохранить настройки интерфейса: %w", err)
	}
	return nil
}
