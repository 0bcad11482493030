package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/daniil11ru/visla/cli/dashboard/storage/store"
	"github.com/daniil11ru/visla/cli/dashboard/storage/store/file"
	"github.com/daniil11ru/visla/cli/dashboard/storage/store/memory"
	"github.com/daniil11ru/visla/cli/dashboard/storage/store/postgresql"
	"github.com/daniil11ru/visla/cli/dashboard/storage/store/redis"
)

// Ключи, под которыми клиент сохраняет данные между сессиями
const (
	KeySession   = "visla-session"
	KeyUI        = "visla-ui"
	KeyAuthToken = "visla-auth-token"
)

var ErrInvalidStorage = errors.New("storage not found")
var ErrUnknownStorage = errors.New("storage isn't support yet")
var ErrAmbiguousStorage = errors.New("only one storage can be configured")

// LoadStorage создаёт хранилище по разделу storage конфига
func LoadStorage(storages map[string]map[string]string) (store.Store, error) {
	if len(storages) == 0 {
		return nil, ErrInvalidStorage
	}
	if len(storages) > 1 {
		names := make([]string, 0, len(storages))
		for name := range storages {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("%w: %v", ErrAmbiguousStorage, names)
	}

	var db store.Store
	for name, params := range storages {
		switch name {
		case "file":
			db = &file.Connector{}
		case "memory":
			db = &memory.Connector{}
		case "redis":
			db = &redis.Connector{}
		case "postgresql":
			db = &postgresql.Connector{}
		default:
			return nil, ErrUnknownStorage
		}

		if params == nil {
			params = map[string]string{}
		}
		if err := db.Init(params); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// NewMemory хранилище без сохранения между запусками
func NewMemory() store.Store {
	db := &memory.Connector{}
	_ = db.Init(nil)
	return db
}

// SaveJSON сохраняет значение в виде JSON
func SaveJSON(ctx context.Context, s store.Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("ошибка сериализации %s: %w", key, err)
	}
	return s.Save(ctx, key, data)
}

// LoadJSON читает значение, сохранённое SaveJSON. Для отсутствующего ключа возвращает store.ErrNotFound.
func LoadJSON(ctx context.Context, s store.Store, key string, v interface{}) error {
	data, err := s.Load(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("ошибка десериализации %s: %w", key, err)
	}
	return nil
}
