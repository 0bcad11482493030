package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/daniil11ru/visla/cli/dashboard/api"
	"github.com/daniil11ru/visla/cli/dashboard/config"
	"github.com/daniil11ru/visla/cli/dashboard/domain"
	"github.com/daniil11ru/visla/cli/dashboard/feed"
	"github.com/daniil11ru/visla/cli/dashboard/state"
	"github.com/daniil11ru/visla/cli/dashboard/storage"
	"github.com/daniil11ru/visla/cli/dashboard/storage/store"
	"github.com/daniil11ru/visla/cli/dashboard/view"

	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	configFilePath := ""
	flag.StringVar(&configFilePath, "c", "", "")
	flag.Parse()
	config, err := getConfig(configFilePath)
	if err != nil {
		log.Fatalf("Не удалось получить конфиг: %v", err)
		return
	}

	configureLogging(config)

	db := openStorage(config)
	defer db.Close()

	container := state.NewContainer()
	applyFilters(container, config)

	client := api.NewClient(api.Settings{
		BaseURL:    config.ApiURL,
		Timeout:    config.GetApiTimeout(),
		RetryCount: config.ApiRetryCount,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := domain.Session{Client: client, State: container, Storage: db}
	if err := startSession(ctx, &session, config.Auth); err != nil {
		log.Fatalf("Не удалось войти: %v", err)
		return
	}

	projector := view.NewProjector(config.GetLocale())
	unsubscribe := watchFleet(container, projector)
	defer unsubscribe()

	refresh := domain.RefreshFleet{
		Source:         client,
		Catalogs:       client,
		State:          container,
		CronExpression: config.RefreshCron,
		Timeout:        config.GetApiTimeout(),
	}
	if err := refresh.Initialize(); err != nil {
		log.Fatalf("Не удалось запустить обновление устройств: %v", err)
		return
	}
	defer refresh.Shutdown()

	if config.FeedEnabled() {
		subscriber := feed.NewSubscriber(feed.Settings{URL: config.Feed.URL, Prefix: config.Feed.Prefix}, container)
		if err := subscriber.Start(); err != nil {
			log.Errorf("Поток обновлений недоступен, используется только опрос: %v", err)
		} else {
			defer subscriber.Close()
		}
	}

	<-ctx.Done()
	log.Info("Получен сигнал завершения")
}

func getConfig(configFilePath string) (config.Settings, error) {
	var c config.Settings
	var err error

	if configFilePath == "" {
		return c, errors.New("не задан путь до конфига")
	}

	c, err = config.New(configFilePath)
	if err != nil {
		return c, fmt.Errorf("ошибка парсинга конфига: %v", err)
	}

	return c, nil
}

func configureLogging(config config.Settings) {
	log.SetLevel(config.GetLogLevel())

	consoleFmt := &log.TextFormatter{ForceColors: true, FullTimestamp: false}
	log.SetFormatter(consoleFmt)
	log.SetOutput(os.Stdout)

	if config.LogFilePath != "" {
		logDir := filepath.Dir(config.LogFilePath)
		if _, err := os.Stat(logDir); os.IsNotExist(err) {
			if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
				log.Fatalf("Не получилось создать директорию для логов: %v", err)
			}
		}

		lumberjackLogger := &lumberjack.Logger{
			Filename:   config.LogFilePath,
			MaxSize:    100,
			MaxBackups: 30,
			MaxAge:     config.LogMaxAgeDays,
			Compress:   true,
		}

		fileFmt := &log.TextFormatter{DisableColors: true, FullTimestamp: true}
		hook := lfshook.NewHook(lfshook.WriterMap{
			log.PanicLevel: lumberjackLogger,
			log.FatalLevel: lumberjackLogger,
			log.ErrorLevel: lumberjackLogger,
			log.WarnLevel:  lumberjackLogger,
			log.InfoLevel:  lumberjackLogger,
			log.DebugLevel: lumberjackLogger,
			log.TraceLevel: lumberjackLogger,
		}, fileFmt)

		log.AddHook(hook)
	}
}

func openStorage(config config.Settings) store.Store {
	if len(config.Store) == 0 {
		log.Warn("Хранилище не настроено: сессия не будет сохранена между запусками")
		return storage.NewMemory()
	}

	db, err := storage.LoadStorage(config.Store)
	if err != nil {
		log.Fatalf("Не удалось подключить хранилище: %v", err)
	}
	return db
}

func applyFilters(container *state.Container, config config.Settings) {
	container.SetFilterKeyword(config.Filter.Keyword)
	container.SetFilterStatuses(config.GetFilterStatuses())
	container.SetFilterGroups(config.Filter.Groups)
	container.SetSort(config.GetSortKey())
}

func startSession(ctx context.Context, session *domain.Session, auth config.Auth) error {
	restored, err := session.Restore(ctx)
	if err != nil {
		log.Warnf("Сохранённая сессия не восстановлена: %v", err)
	}
	if restored {
		return nil
	}

	switch {
	case auth.Token != "":
		_, err = session.LoginWithToken(ctx, auth.Token)
	case auth.Email != "":
		_, err = session.Login(ctx, auth.Email, auth.Password, "")
	default:
		return errors.New("не заданы учётные данные")
	}
	if errors.Is(err, api.ErrTOTPRequired) {
		return errors.New("учётная запись защищена одноразовым кодом, используйте вход по токену")
	}
	return err
}

// watchFleet пишет в лог сводку по парку при каждом изменении устройств или координат
func watchFleet(container *state.Container, projector *view.Projector) func() {
	report := func(state.Change) {
		summary := container.Summary(time.Now())
		log.WithFields(log.Fields{
			"total":   summary.Total,
			"online":  summary.Online,
			"offline": summary.Offline,
			"unknown": summary.Unknown,
			"moving":  summary.Moving,
			"alerts":  summary.RecentAlerts,
		}).Infof("Сводка по парку: на связи %d%%", summary.OnlinePercent)

		if log.IsLevelEnabled(log.DebugLevel) {
			log.Debugf("Устройства: %s", strings.Join(view.Names(container.View(projector)), ", "))
		}
	}

	unsubscribeDevices := container.Subscribe(state.TopicDevices, report)
	unsubscribePositions := container.Subscribe(state.TopicPositions, report)
	return func() {
		unsubscribeDevices()
		unsubscribePositions()
	}
}
