package file

/*
Хранилище в файлах: по одному JSON-файлу на ключ.

Раздел настроек в конфиге:

dir = "/var/lib/visla"
*/

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/daniil11ru/visla/cli/dashboard/storage/store"
)

type Connector struct {
	dir string
}

func (c *Connector) Init(cfg map[string]string) error {
	if cfg == nil {
		return fmt.Errorf("некорректная ссылка на конфигурацию")
	}
	c.dir = cfg["dir"]
	if c.dir == "" {
		return fmt.Errorf("не задан каталог файлового хранилища")
	}
	if err := os.MkdirAll(c.dir, 0o700); err != nil {
		return fmt.Errorf("не удалось создать каталог хранилища: %w", err)
	}
	return nil
}

func (c *Connector) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("недопустимый ключ хранилища: %q", key)
	}
	return filepath.Join(c.dir, key+".json"), nil
}

func (c *Connector) Load(_ context.Context, key string) ([]byte, error) {
	path, err := c.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать %s: %w", path, err)
	}
	return data, nil
}

func (c *Connector) Save(_ context.Context, key string, value []byte) error {
	path, err := c.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("не удалось создать временный файл: %w", err)
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("не удалось записать %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("не удалось записать %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("не удалось записать %s: %w", path, err)
	}
	return nil
}

func (c *Connector) Remove(_ context.Context, key string) error {
	path, err := c.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("не удалось удалить %s: %w", path, err)
	}
	return nil
}

func (c *Connector) Close() error {
	return nil
}
