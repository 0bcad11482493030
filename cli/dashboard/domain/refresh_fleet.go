package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/daniil11ru/visla/cli/dashboard/state"
	cron "github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// RefreshFleet загружает устройства и их последние координаты в контейнер состояния
type RefreshFleet struct {
	Source   FleetSource
	Catalogs CatalogSource
	State    *state.Container

	CronExpression string
	Timeout        time.Duration

	cronScheduler *cron.Cron
}

// Run полная замена списка устройств, затем слияние координат. Справочники
// обновляются по возможности: их ошибки не прерывают обновление.
func (domain *RefreshFleet) Run(ctx context.Context) error {
	devices, err := domain.Source.Devices(ctx)
	if err != nil {
		return fmt.Errorf("не удалось получить список устройств: %w", err)
	}
	domain.State.ReplaceDevices(devices)

	positions, err := domain.Source.LatestPositions(ctx, nil)
	if err != nil {
		return fmt.Errorf("не удалось получить координаты устройств: %w", err)
	}
	domain.State.MergePositions(positions)

	if domain.Catalogs != nil {
		domain.refreshCatalogs(ctx)
	}

	logrus.Debugf("Обновлено устройств: %d, координат: %d", len(devices), len(positions))
	return nil
}

func (domain *RefreshFleet) refreshCatalogs(ctx context.Context) {
	if groups, err := domain.Catalogs.Groups(ctx); err != nil {
		logrus.Warnf("Не удалось обновить группы: %v", err)
	} else {
		domain.State.ReplaceGroups(groups)
	}

	if geofences, err := domain.Catalogs.Geofences(ctx); err != nil {
		logrus.Warnf("Не удалось обновить геозоны: %v", err)
	} else {
		domain.State.ReplaceGeofences(geofences)
	}
}

func (domain *RefreshFleet) runWithTimeout() error {
	ctx := context.Background()
	if domain.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, domain.Timeout)
		defer cancel()
	}
	return domain.Run(ctx)
}

// Initialize первое обновление и запуск периодического по расписанию CronExpression.
// Ошибка первого обновления не фатальна: следующая попытка будет по расписанию.
func (domain *RefreshFleet) Initialize() error {
	if err := domain.runWithTimeout(); err != nil {
		logrus.Errorf("Ошибка первичной загрузки устройств: %v", err)
	}

	if domain.CronExpression == "" {
		return nil
	}

	domain.cronScheduler = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := domain.cronScheduler.AddFunc(domain.CronExpression, func() {
		if err := domain.runWithTimeout(); err != nil {
			logrus.Errorf("Ошибка обновления устройств: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("ошибка при настройке cron-задачи: %w", err)
	}

	domain.cronScheduler.Start()
	logrus.Infof("Запланировано обновление устройств по расписанию %q", domain.CronExpression)

	return nil
}

func (domain *RefreshFleet) Shutdown() {
	if domain.cronScheduler != nil {
		<-domain.cronScheduler.Stop().Done()
		logrus.Info("Cron-планировщик остановлен")
	}
}
