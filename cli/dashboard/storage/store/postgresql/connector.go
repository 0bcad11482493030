package postgresql

/*
Настройки, которые могут (а не которые – должны) быть в конфиге для подключения хранилища:

host = "localhost"
port = "5432"
user = "postgres"
password = "postgres"
database = "visla"
table = "client_storage"
sslmode = "disable"
*/

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/daniil11ru/visla/cli/dashboard/storage/store"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

type Connector struct {
	connection *sql.DB
	table      string
}

func getOptionValue(optionName string, optionDefaultValue string, settings map[string]string) string {
	optionValue := settings[optionName]
	if optionValue == "" {
		log.Warnf("Ключ '%s' не найден в конфигурации хранилища. Используется значение по умолчанию '%s'.", optionName, optionDefaultValue)
		optionValue = optionDefaultValue
	}

	return optionValue
}

func (c *Connector) Init(cfg map[string]string) error {
	var err error
	if cfg == nil {
		return fmt.Errorf("некорректная ссылка на конфигурацию")
	}

	connStr := fmt.Sprintf("dbname=%s host=%s port=%s user=%s password=%s sslmode=%s",
		getOptionValue("database", "visla", cfg),
		getOptionValue("host", "localhost", cfg),
		getOptionValue("port", "5432", cfg),
		getOptionValue("user", "postgres", cfg),
		cfg["password"],
		getOptionValue("sslmode", "disable", cfg))
	c.table = getOptionValue("table", "client_storage", cfg)

	if c.connection, err = sql.Open("postgres", connStr); err != nil {
		return fmt.Errorf("ошибка подключения к PostgreSQL: %v", err)
	}
	return c.prepare(context.Background())
}

// prepare проверка соединения и создание таблицы; при ошибке соединение закрывается
func (c *Connector) prepare(ctx context.Context) error {
	if err := c.connection.PingContext(ctx); err != nil {
		c.connection.Close()
		return fmt.Errorf("PostgreSQL недоступен: %v", err)
	}
	if err := c.createTable(ctx); err != nil {
		c.connection.Close()
		return err
	}
	return nil
}

func (c *Connector) createTable(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	key TEXT PRIMARY KEY,
	value BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, c.table)
	if _, err := c.connection.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("не удалось создать таблицу %s: %v", c.table, err)
	}
	return nil
}

func (c *Connector) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	query := fmt.Sprintf("SELECT value FROM %s WHERE key = $1", c.table)
	err := c.connection.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать ключ %s: %w", key, err)
	}
	return value, nil
}

func (c *Connector) Save(ctx context.Context, key string, value []byte) error {
	query := fmt.Sprintf("INSERT INTO %s (key, value, updated_at) VALUES ($1, $2, now()) "+
		"ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()", c.table)
	if _, err := c.connection.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("не удалось сохранить ключ %s: %w", key, err)
	}
	return nil
}

func (c *Connector) Remove(ctx context.Context, key string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE key = $1", c.table)
	if _, err := c.connection.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("не удалось удалить ключ %s: %w", key, err)
	}
	return nil
}

func (c *Connector) Close() error {
	return c.connection.Close()
}
