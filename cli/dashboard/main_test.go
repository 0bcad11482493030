package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/daniil11ru/visla/cli/dashboard/config"
	"github.com/daniil11ru/visla/cli/dashboard/domain"
	"github.com/daniil11ru/visla/cli/dashboard/state"
	"github.com/daniil11ru/visla/cli/dashboard/storage"
	"github.com/daniil11ru/visla/cli/dashboard/types"
	"github.com/daniil11ru/visla/cli/dashboard/view"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

// resetLogger restores the global logger after a test touched it.
func resetLogger(t *testing.T) {
	t.Cleanup(func() {
		log.StandardLogger().ReplaceHooks(make(log.LevelHooks))
		log.SetOutput(io.Discard)
		log.SetLevel(log.InfoLevel)
	})
}

func TestGetConfig(t *testing.T) {
	_, err := getConfig("")
	assert.Error(t, err)

	_, err = getConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: http://localhost:8082\nlog_level: DEBUG\n"), 0o600))

	conf, err := getConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8082", conf.ApiURL)
}

func TestConfigureLoggingWritesFile(t *testing.T) {
	resetLogger(t)

	logFile := filepath.Join(t.TempDir(), "logs", "dashboard.log")
	configureLogging(config.Settings{LogLevel: "DEBUG", LogFilePath: logFile, LogMaxAgeDays: 1})
	log.SetOutput(io.Discard)

	assert.Equal(t, log.DebugLevel, log.GetLevel())

	log.Info("Проверка записи в файл")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "Проверка записи в файл"))
}

func TestConfigureLoggingWithoutFile(t *testing.T) {
	resetLogger(t)

	configureLogging(config.Settings{LogLevel: "ERROR"})
	log.SetOutput(io.Discard)

	assert.Equal(t, log.ErrorLevel, log.GetLevel())
	assert.Empty(t, log.StandardLogger().Hooks[log.InfoLevel])
}

func TestOpenStorageFallsBackToMemory(t *testing.T) {
	resetLogger(t)
	log.SetOutput(io.Discard)

	db := openStorage(config.Settings{})
	require.NotNil(t, db)
	require.NoError(t, db.Save(context.Background(), storage.KeyUI, []byte("{}")))

	db = openStorage(config.Settings{Store: map[string]map[string]string{"file": {"dir": t.TempDir()}}})
	require.NotNil(t, db)
	assert.NoError(t, db.Close())
}

func TestApplyFilters(t *testing.T) {
	container := state.NewContainer()
	applyFilters(container, config.Settings{Filter: config.Filter{
		Keyword:  "van",
		Statuses: []string{"online", "bogus"},
		Groups:   []int64{3},
		Sort:     "status",
	}})

	ui := container.UI()
	assert.Equal(t, "van", ui.Criteria.Keyword)
	assert.Equal(t, []types.Status{types.StatusOnline}, ui.Criteria.StatusList())
	assert.Equal(t, []int64{3}, ui.Criteria.GroupList())
	assert.Equal(t, view.SortByStatus, ui.Sort)
}

func TestStartSessionWithoutCredentials(t *testing.T) {
	resetLogger(t)
	log.SetOutput(io.Discard)

	session := &domain.Session{State: state.NewContainer(), Storage: storage.NewMemory()}
	assert.Error(t, startSession(context.Background(), session, config.Auth{}))
}

func TestWatchFleetUnsubscribes(t *testing.T) {
	resetLogger(t)
	log.SetOutput(io.Discard)

	container := state.NewContainer()
	unsubscribe := watchFleet(container, view.NewProjector(language.Italian))
	container.ReplaceDevices([]types.Device{{ID: 1, Name: "Van A", Status: types.StatusOnline}})
	unsubscribe()
	container.ReplaceDevices(nil)
	assert.Empty(t, container.Devices())
}
