package domain

import (
	"sync"

	"github.com/daniil11ru/visla/cli/dashboard/state"
	"github.com/daniil11ru/visla/cli/dashboard/view"
)

// Focus центр и масштаб карты для выбранного устройства
type Focus struct {
	DeviceID int64
	Center   view.Point
	Zoom     int
}

type FocusDevice struct {
	State *state.Container
}

// Run выбирает устройство. Фокус возвращается, только если у устройства есть координаты.
func (domain *FocusDevice) Run(id int64) (Focus, bool) {
	domain.State.Select(id)
	return domain.current()
}

func (domain *FocusDevice) Clear() {
	domain.State.ClearSelection()
}

// Fit прямоугольник для показа всего парка
func (domain *FocusDevice) Fit() (view.Box, bool) {
	return view.Bounds(domain.State.Positions())
}

func (domain *FocusDevice) current() (Focus, bool) {
	id, ok := domain.State.Selected()
	if !ok {
		return Focus{}, false
	}
	position, ok := domain.State.Position(id)
	if !ok {
		return Focus{}, false
	}
	return Focus{DeviceID: id, Center: view.Center(position), Zoom: view.FocusZoom}, true
}

// Follow вызывает fn при каждом изменении фокуса: смене выбора или перемещении
// выбранного устройства. Возвращает функцию отписки.
// fn вызывается из уведомления контейнера: читать состояние можно, изменять нельзя
// (вызов Run, Clear или Select из fn приведёт к взаимной блокировке).
func (domain *FocusDevice) Follow(fn func(Focus)) func() {
	var mu sync.Mutex
	var last Focus
	var has bool

	notify := func(state.Change) {
		focus, ok := domain.current()

		mu.Lock()
		changed := ok && (!has || focus != last)
		last, has = focus, ok
		mu.Unlock()

		if changed {
			fn(focus)
		}
	}

	unsubscribeSelection := domain.State.Subscribe(state.TopicSelection, notify)
	unsubscribePositions := domain.State.Subscribe(state.TopicPositions, notify)
	return func() {
		unsubscribeSelection()
		unsubscribePositions()
	}
}
