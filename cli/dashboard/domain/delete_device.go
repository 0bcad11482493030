package domain

import (
	"context"
	"fmt"

	"github.com/daniil11ru/visla/cli/dashboard/state"
	"github.com/sirupsen/logrus"
)

// DeleteDevice удаление на сервере, затем из контейнера. Выбор не сбрасывается.
type DeleteDevice struct {
	Client DeviceDeleter
	State  *state.Container
}

func (domain *DeleteDevice) Run(ctx context.Context, id int64) error {
	if err := domain.Client.DeleteDevice(ctx, id); err != nil {
		return fmt.Errorf("не удалось удалить устройство %d: %w", id, err)
	}
	if domain.State.RemoveDevice(id) {
		logrus.Infof("Устройство %d удалено", id)
	}
	return nil
}
