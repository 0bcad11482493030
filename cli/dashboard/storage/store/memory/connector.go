package memory

/*
Хранилище в памяти процесса. Используется, когда долговременное хранилище не настроено:
сохранённые значения теряются при перезапуске.
*/

import (
	"context"
	"sync"

	"github.com/daniil11ru/visla/cli/dashboard/storage/store"
)

type Connector struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func (c *Connector) Init(map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string][]byte)
	return nil
}

func (c *Connector) Load(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.items[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (c *Connector) Save(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.items == nil {
		c.items = make(map[string][]byte)
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	c.items[key] = stored
	return nil
}

func (c *Connector) Remove(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *Connector) Close() error {
	return nil
}
