package store

import (
	"context"
	"errors"
)

// ErrNotFound ключ отсутствует в хранилище
var ErrNotFound = errors.New("ключ не найден в хранилище")

// Connector интерфейс для подключения внешних хранилищ
type Connector interface {
	// Init установка соединения с хранилищем
	Init(map[string]string) error

	// Close закрытие соединения с хранилищем
	Close() error
}

// Store долговременное хранилище клиента: аналог локального хранилища браузера
type Store interface {
	Connector

	// Load значение по ключу или ErrNotFound
	Load(ctx context.Context, key string) ([]byte, error)

	// Save сохранение значения с перезаписью
	Save(ctx context.Context, key string, value []byte) error

	// Remove удаление ключа; отсутствие ключа ошибкой не считается
	Remove(ctx context.Context, key string) error
}
