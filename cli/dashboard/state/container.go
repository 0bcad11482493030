package state

import (
	"sync"
	"time"

	"github.com/daniil11ru/visla/cli/dashboard/types"
	"github.com/daniil11ru/visla/cli/dashboard/view"
	log "github.com/sirupsen/logrus"
)

// Topic раздел состояния, на изменения которого можно подписаться
type Topic string

const (
	TopicDevices   Topic = "devices"
	TopicPositions Topic = "positions"
	TopicSelection Topic = "selection"
	TopicSession   Topic = "session"
	TopicUI        Topic = "ui"
	TopicGroups    Topic = "groups"
	TopicGeofences Topic = "geofences"
	TopicEvents    Topic = "events"
)

// Change уведомление об изменении раздела. Version растёт на единицу при каждом изменении.
type Change struct {
	Topic   Topic
	Version uint64
}

type subscriber struct {
	id uint64
	fn func(Change)
}

// Container общее наблюдаемое состояние клиента. Изменения применяются в порядке вызовов,
// подписчики раздела уведомляются синхронно ровно один раз на каждое изменение.
// Обработчик уведомления может читать состояние и подписываться, но не изменять его.
type Container struct {
	mu       sync.RWMutex
	dispatch sync.Mutex

	devices   *Devices
	positions *Positions
	selection Selection
	groups    *Groups
	geofences *Geofences
	events    Events
	session   Session
	ui        UI

	versions     map[Topic]uint64
	subscribers  map[Topic][]subscriber
	subscriberID uint64
}

func NewContainer() *Container {
	return &Container{
		devices:     NewDevices(),
		positions:   NewPositions(),
		groups:      NewGroups(),
		geofences:   NewGeofences(),
		ui:          defaultUI(),
		versions:    make(map[Topic]uint64),
		subscribers: make(map[Topic][]subscriber),
	}
}

// Subscribe регистрирует обработчик изменений раздела и возвращает функцию отписки
func (c *Container) Subscribe(topic Topic, fn func(Change)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.subscriberID++
	id := c.subscriberID
	c.subscribers[topic] = append(c.subscribers[topic], subscriber{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		list := c.subscribers[topic]
		for i, s := range list {
			if s.id == id {
				updated := make([]subscriber, 0, len(list)-1)
				updated = append(updated, list[:i]...)
				updated = append(updated, list[i+1:]...)
				c.subscribers[topic] = updated
				return
			}
		}
	}
}

func (c *Container) Version(topic Topic) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.versions[topic]
}

// apply выполняет изменение под блокировкой и уведомляет подписчиков затронутых разделов
func (c *Container) apply(mutate func() []Topic) {
	c.dispatch.Lock()
	defer c.dispatch.Unlock()

	type notification struct {
		change   Change
		handlers []subscriber
	}

	c.mu.Lock()
	changed := mutate()
	notifications := make([]notification, 0, len(changed))
	for _, topic := range changed {
		c.versions[topic]++
		notifications = append(notifications, notification{
			change:   Change{Topic: topic, Version: c.versions[topic]},
			handlers: c.subscribers[topic],
		})
	}
	c.mu.Unlock()

	for _, n := range notifications {
		for _, s := range n.handlers {
			s.fn(n.change)
		}
	}
}

func only(topic Topic, changed bool) []Topic {
	if !changed {
		return nil
	}
	return []Topic{topic}
}

// ReplaceDevices заменяет весь набор устройств. Уведомление отправляется всегда, даже если
// набор не изменился по содержимому.
func (c *Container) ReplaceDevices(devices []types.Device) int {
	var skipped int
	c.apply(func() []Topic {
		skipped = c.devices.ReplaceAll(devices)
		return []Topic{TopicDevices}
	})
	if skipped > 0 {
		log.WithField("skipped", skipped).Warn("Пропущены записи устройств без идентификатора")
	}
	return skipped
}

func (c *Container) UpsertDevice(device types.Device) bool {
	var ok bool
	c.apply(func() []Topic {
		ok = c.devices.Upsert(device)
		return only(TopicDevices, ok)
	})
	if !ok {
		log.WithField("name", device.Name).Warn("Пропущена запись устройства без идентификатора")
	}
	return ok
}

// RemoveDevice удаляет устройство. Выбор, указывающий на него, не сбрасывается.
func (c *Container) RemoveDevice(id int64) bool {
	var ok bool
	c.apply(func() []Topic {
		ok = c.devices.Remove(id)
		return only(TopicDevices, ok)
	})
	return ok
}

func (c *Container) Device(id int64) (types.Device, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.devices.Get(id)
}

// Devices снимок устройств; изменять его нельзя
func (c *Container) Devices() map[int64]types.Device {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.devices.Items()
}

// MergePositions применяет пакет телеметрии, возвращает число пропущенных записей
func (c *Container) MergePositions(records []types.Position) int {
	var skipped int
	c.apply(func() []Topic {
		var applied int
		applied, skipped = c.positions.MergeBatch(records)
		return only(TopicPositions, applied > 0)
	})
	if skipped > 0 {
		log.WithField("skipped", skipped).Warn("Пропущены позиции без идентификатора устройства")
	}
	return skipped
}

func (c *Container) ClearPositions() {
	c.apply(func() []Topic {
		c.positions.Clear()
		return []Topic{TopicPositions}
	})
}

func (c *Container) Position(deviceID int64) (types.Position, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.positions.Get(deviceID)
}

// Positions снимок телеметрии; изменять его нельзя
func (c *Container) Positions() map[int64]types.Position {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.positions.Items()
}

func (c *Container) Select(id int64) {
	c.apply(func() []Topic {
		return only(TopicSelection, c.selection.Select(id))
	})
}

func (c *Container) ClearSelection() {
	c.apply(func() []Topic {
		return only(TopicSelection, c.selection.Clear())
	})
}

func (c *Container) Selected() (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selection.Selected()
}

// SelectedDevice выбранное устройство; false, если выбора нет или он указывает
// на отсутствующую запись
func (c *Container) SelectedDevice() (types.Device, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, ok := c.selection.Selected()
	if !ok {
		return types.Device{}, false
	}
	return c.devices.Get(id)
}

// SelectedPosition последняя позиция выбранного устройства
func (c *Container) SelectedPosition() (types.Position, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, ok := c.selection.Selected()
	if !ok {
		return types.Position{}, false
	}
	return c.positions.Get(id)
}

func (c *Container) SetUser(user *types.User) {
	c.apply(func() []Topic {
		if user == nil {
			c.session.User = nil
		} else {
			u := *user
			c.session.User = &u
		}
		return []Topic{TopicSession}
	})
}

func (c *Container) User() (types.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session.User == nil {
		return types.User{}, false
	}
	return *c.session.User, true
}

func (c *Container) SetServer(server *types.ServerInfo) {
	c.apply(func() []Topic {
		if server == nil {
			c.session.Server = nil
		} else {
			s := *server
			c.session.Server = &s
		}
		return []Topic{TopicSession}
	})
}

func (c *Container) Server() (types.ServerInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session.Server == nil {
		return types.ServerInfo{}, false
	}
	return *c.session.Server, true
}

// ClearSession сбрасывает пользователя и телеметрию. Сведения о сервере и настройки
// интерфейса остаются.
func (c *Container) ClearSession() {
	c.apply(func() []Topic {
		c.session.User = nil
		c.positions.Clear()
		return []Topic{TopicSession, TopicPositions}
	})
}

func (c *Container) ReplaceGroups(groups []types.Group) int {
	var skipped int
	c.apply(func() []Topic {
		skipped = c.groups.ReplaceAll(groups)
		return []Topic{TopicGroups}
	})
	return skipped
}

func (c *Container) Groups() map[int64]types.Group {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.groups.Items()
}

func (c *Container) ReplaceGeofences(geofences []types.Geofence) int {
	var skipped int
	c.apply(func() []Topic {
		skipped = c.geofences.ReplaceAll(geofences)
		return []Topic{TopicGeofences}
	})
	return skipped
}

func (c *Container) Geofences() map[int64]types.Geofence {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.geofences.Items()
}

func (c *Container) AddEvents(events []types.Event) {
	c.apply(func() []Topic {
		return only(TopicEvents, c.events.Add(events))
	})
}

func (c *Container) ClearEvents() {
	c.apply(func() []Topic {
		return only(TopicEvents, c.events.Clear())
	})
}

// Events лента событий, новые в начале; изменять её нельзя
func (c *Container) Events() []types.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.events.Items()
}

func (c *Container) UI() UI {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ui.clone()
}

func (c *Container) updateUI(fn func(ui *UI) bool) {
	c.apply(func() []Topic {
		next := c.ui.clone()
		if !fn(&next) {
			return nil
		}
		c.ui = next
		return []Topic{TopicUI}
	})
}

func (c *Container) SetSidebarOpen(open bool) {
	c.updateUI(func(ui *UI) bool {
		if ui.SidebarOpen == open {
			return false
		}
		ui.SidebarOpen = open
		return true
	})
}

// ToggleSidebar возвращает новое значение флага
func (c *Container) ToggleSidebar() bool {
	var open bool
	c.updateUI(func(ui *UI) bool {
		ui.SidebarOpen = !ui.SidebarOpen
		open = ui.SidebarOpen
		return true
	})
	return open
}

func (c *Container) SetEventsDrawerOpen(open bool) {
	c.updateUI(func(ui *UI) bool {
		if ui.EventsDrawerOpen == open {
			return false
		}
		ui.EventsDrawerOpen = open
		return true
	})
}

func (c *Container) SetFilterKeyword(keyword string) {
	c.updateUI(func(ui *UI) bool {
		if ui.Criteria.Keyword == keyword {
			return false
		}
		ui.Criteria.Keyword = keyword
		return true
	})
}

func (c *Container) SetFilterStatuses(statuses []types.Status) {
	c.updateUI(func(ui *UI) bool {
		ui.Criteria = view.NewCriteria(ui.Criteria.Keyword, statuses, ui.Criteria.GroupList())
		return true
	})
}

// ToggleFilterStatus включает или выключает статус в фильтре
func (c *Container) ToggleFilterStatus(status types.Status) {
	c.updateUI(func(ui *UI) bool {
		statuses := make([]types.Status, 0, len(ui.Criteria.Statuses)+1)
		_, present := ui.Criteria.Statuses[status]
		for s := range ui.Criteria.Statuses {
			if s != status {
				statuses = append(statuses, s)
			}
		}
		if !present {
			statuses = append(statuses, status)
		}
		ui.Criteria = view.NewCriteria(ui.Criteria.Keyword, statuses, ui.Criteria.GroupList())
		return true
	})
}

func (c *Container) SetFilterGroups(groups []int64) {
	c.updateUI(func(ui *UI) bool {
		ui.Criteria = view.NewCriteria(ui.Criteria.Keyword, ui.Criteria.StatusList(), groups)
		return true
	})
}

// ClearFilters сбрасывает ключевое слово и фильтр по статусам
func (c *Container) ClearFilters() {
	c.updateUI(func(ui *UI) bool {
		ui.Criteria = view.NewCriteria("", nil, ui.Criteria.GroupList())
		return true
	})
}

func (c *Container) SetSort(key view.SortKey) {
	c.updateUI(func(ui *UI) bool {
		if ui.Sort == key {
			return false
		}
		ui.Sort = key
		return true
	})
}

// View строит список для отображения по текущему состоянию и фильтрам интерфейса
func (c *Container) View(p *view.Projector) []view.Row {
	c.mu.RLock()
	devices := c.devices.Items()
	positions := c.positions.Items()
	ui := c.ui.clone()
	c.mu.RUnlock()

	return p.Project(devices, positions, ui.Criteria, ui.Sort)
}

func (c *Container) Summary(now time.Time) view.Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return view.Summarize(c.devices.Items(), c.positions.Items(), c.events.Items(), now)
}
