package feed

/*
Подписка на поток обновлений через NATS.

Темы:
	<prefix>.positions  JSON-массив координат
	<prefix>.devices    JSON-массив устройств
	<prefix>.events     JSON-массив событий
*/

import (
	"fmt"
	"strings"
	"sync"

	"github.com/daniil11ru/visla/cli/dashboard/types"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

const (
	SubjectPositions = "positions"
	SubjectDevices   = "devices"
	SubjectEvents    = "events"
)

// Sink приёмник обновлений, реализуется контейнером состояния
type Sink interface {
	MergePositions(records []types.Position) int
	UpsertDevice(device types.Device) bool
	AddEvents(events []types.Event)
}

type Settings struct {
	URL    string
	Prefix string
}

type Subscriber struct {
	settings Settings
	sink     Sink

	mu   sync.Mutex
	conn *nats.Conn
	sub  *nats.Subscription
}

func NewSubscriber(settings Settings, sink Sink) *Subscriber {
	return &Subscriber{settings: settings, sink: sink}
}

func (s *Subscriber) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return fmt.Errorf("подписка уже запущена")
	}

	conn, err := nats.Connect(s.settings.URL,
		nats.Name("visla-dashboard"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warnf("Соединение с NATS потеряно: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Infof("Соединение с NATS восстановлено: %s", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return fmt.Errorf("не удалось подключиться к NATS: %w", err)
	}

	sub, err := conn.Subscribe(s.settings.Prefix+".*", s.handle)
	if err != nil {
		conn.Close()
		return fmt.Errorf("не удалось подписаться на %s.*: %w", s.settings.Prefix, err)
	}
	if err := conn.Flush(); err != nil {
		conn.Close()
		return fmt.Errorf("не удалось подписаться на %s.*: %w", s.settings.Prefix, err)
	}

	s.conn = conn
	s.sub = sub
	log.Infof("Подписка на обновления %s.* запущена", s.settings.Prefix)
	return nil
}

func (s *Subscriber) handle(msg *nats.Msg) {
	kind := msg.Subject[strings.LastIndex(msg.Subject, ".")+1:]

	switch kind {
	case SubjectPositions:
		positions, ok := decode[types.Position](msg)
		if ok {
			s.sink.MergePositions(positions)
		}
	case SubjectDevices:
		devices, ok := decode[types.Device](msg)
		if ok {
			for _, device := range devices {
				s.sink.UpsertDevice(device)
			}
		}
	case SubjectEvents:
		events, ok := decode[types.Event](msg)
		if ok {
			s.sink.AddEvents(events)
		}
	default:
		log.Debugf("Неизвестная тема %s", msg.Subject)
	}
}

// decode разбирает пакет поштучно: испорченные записи отбрасываются, остальные применяются
func decode[T any](msg *nats.Msg) ([]T, bool) {
	records, skipped, err := types.DecodeBatch[T](msg.Data)
	if err != nil {
		log.Errorf("Некорректный пакет %s: %v", msg.Subject, err)
		return nil, false
	}
	if skipped > 0 {
		log.WithField("skipped", skipped).Warnf("Пропущены некорректные записи в пакете %s", msg.Subject)
	}
	return records, true
}

func (s *Subscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	var err error
	if s.sub != nil {
		err = s.sub.Unsubscribe()
	}
	s.conn.Close()
	s.conn = nil
	s.sub = nil
	return err
}
