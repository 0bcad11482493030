package redis

/*
Плагин для хранения данных клиента в Redis.

Раздел настроек, которые могут быть в конфиге для подключения хранилища:

host = "localhost"
port = "6379"
password = ""
db = "0"
prefix = "visla:"
*/

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/daniil11ru/visla/cli/dashboard/storage/store"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"gopkg.in/vmihailenco/msgpack.v2"
)

var now = time.Now

// record конверт значения: данные и время сохранения
type record struct {
	Value   []byte `msgpack:"v"`
	SavedAt int64  `msgpack:"t"`
}

// age время, прошедшее с момента сохранения
func (r record) age() time.Duration {
	return now().Sub(time.Unix(r.SavedAt, 0))
}

type Connector struct {
	client *redis.Client
	prefix string
}

func (c *Connector) Init(cfg map[string]string) error {
	if cfg == nil {
		return fmt.Errorf("некорректная ссылка на конфигурацию")
	}

	host := cfg["host"]
	if host == "" {
		host = "localhost"
	}
	port := cfg["port"]
	if port == "" {
		port = "6379"
	}

	db := 0
	if raw := cfg["db"]; raw != "" {
		var err error
		if db, err = strconv.Atoi(raw); err != nil {
			return fmt.Errorf("не удалось получить номер базы Redis: %v", err)
		}
	}
	c.prefix = cfg["prefix"]

	c.client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: cfg["password"],
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.client.Ping(ctx).Err(); err != nil {
		c.client.Close()
		return fmt.Errorf("Redis недоступен: %v", err)
	}
	return nil
}

func (c *Connector) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать ключ %s: %w", key, err)
	}

	var r record
	if err := msgpack.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("ошибка десериализации ключа %s: %w", key, err)
	}

	log.WithFields(log.Fields{
		"key": key,
		"age": r.age(),
	}).Debug("Значение прочитано из Redis")
	return r.Value, nil
}

func (c *Connector) Save(ctx context.Context, key string, value []byte) error {
	data, err := msgpack.Marshal(record{Value: value, SavedAt: now().Unix()})
	if err != nil {
		return fmt.Errorf("ошибка сериализации ключа %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("не удалось сохранить ключ %s: %w", key, err)
	}
	return nil
}

func (c *Connector) Remove(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("не удалось удалить ключ %s: %w", key, err)
	}
	return nil
}

func (c *Connector) Close() error {
	return c.client.Close()
}
