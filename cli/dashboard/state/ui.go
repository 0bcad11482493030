package state

import (
	"github.com/daniil11ru/visla/cli/dashboard/types"
	"github.com/daniil11ru/visla/cli/dashboard/view"
)

// UI пользовательские настройки интерфейса. Между сессиями сохраняется только SidebarOpen.
type UI struct {
	SidebarOpen      bool
	EventsDrawerOpen bool
	Criteria         view.Criteria
	Sort             view.SortKey
}

func defaultUI() UI {
	return UI{SidebarOpen: true, Sort: view.SortByName}
}

func (u UI) clone() UI {
	c := u
	c.Criteria = u.Criteria.Clone()
	return c
}

// Session текущий пользователь и сведения о сервере
type Session struct {
	User   *types.User
	Server *types.ServerInfo
}
