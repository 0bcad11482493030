package state

import "github.com/daniil11ru/visla/cli/dashboard/types"

// EventsLimit сколько последних событий хранится
const EventsLimit = 100

type Groups struct {
	items map[int64]types.Group
}

func NewGroups() *Groups {
	return &Groups{items: map[int64]types.Group{}}
}

func (g *Groups) ReplaceAll(groups []types.Group) int {
	items := make(map[int64]types.Group, len(groups))
	skipped := 0
	for _, group := range groups {
		if group.ID <= 0 {
			skipped++
			continue
		}
		items[group.ID] = group
	}
	g.items = items
	return skipped
}

func (g *Groups) Items() map[int64]types.Group {
	return g.items
}

type Geofences struct {
	items map[int64]types.Geofence
}

func NewGeofences() *Geofences {
	return &Geofences{items: map[int64]types.Geofence{}}
}

func (g *Geofences) ReplaceAll(geofences []types.Geofence) int {
	items := make(map[int64]types.Geofence, len(geofences))
	skipped := 0
	for _, geofence := range geofences {
		if geofence.ID <= 0 {
			skipped++
			continue
		}
		items[geofence.ID] = geofence
	}
	g.items = items
	return skipped
}

func (g *Geofences) Items() map[int64]types.Geofence {
	return g.items
}

// Events лента событий, новые в начале
type Events struct {
	items []types.Event
}

// Add добавляет события в начало ленты и обрезает её до EventsLimit
func (e *Events) Add(events []types.Event) bool {
	if len(events) == 0 {
		return false
	}
	size := len(events) + len(e.items)
	if size > EventsLimit {
		size = EventsLimit
	}
	items := make([]types.Event, 0, size)
	items = append(items, events...)
	items = append(items, e.items...)
	if len(items) > EventsLimit {
		items = items[:EventsLimit]
	}
	e.items = items
	return true
}

func (e *Events) Clear() bool {
	if len(e.items) == 0 {
		return false
	}
	e.items = nil
	return true
}

func (e *Events) Items() []types.Event {
	return e.items
}
