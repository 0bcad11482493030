package view

import (
	"sort"

	"github.com/daniil11ru/visla/cli/dashboard/types"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Row строка списка: устройство и его последняя позиция, если она известна
type Row struct {
	Device   types.Device
	Position *types.Position
}

// Projector строит отфильтрованный и отсортированный список устройств для отображения.
// Входные данные не изменяются, при одинаковых входных данных результат одинаков.
type Projector struct {
	locale language.Tag
}

func NewProjector(locale language.Tag) *Projector {
	return &Projector{locale: locale}
}

func (p *Projector) Locale() language.Tag {
	return p.locale
}

func (p *Projector) Project(devices map[int64]types.Device, positions map[int64]types.Position, criteria Criteria, key SortKey) []Row {
	ids := make([]int64, 0, len(devices))
	for id := range devices {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	match := criteria.matcher()
	rows := make([]Row, 0, len(ids))
	for _, id := range ids {
		device := devices[id]
		if !match(device) {
			continue
		}
		row := Row{Device: device}
		if position, ok := positions[id]; ok {
			row.Position = &position
		}
		rows = append(rows, row)
	}

	p.sortRows(rows, key)
	return rows
}

func (p *Projector) sortRows(rows []Row, key SortKey) {
	switch key {
	case SortByName:
		c := collate.New(p.locale)
		sort.SliceStable(rows, func(i, j int) bool {
			return c.CompareString(rows[i].Device.Name, rows[j].Device.Name) < 0
		})
	case SortByStatus:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Device.Status.Rank() < rows[j].Device.Status.Rank()
		})
	case SortByLastUpdate:
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := rows[i].Device.LastUpdate, rows[j].Device.LastUpdate
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.After(*b)
		})
	}
}

// Names имена устройств в порядке строк
func Names(rows []Row) []string {
	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row.Device.Name
	}
	return names
}
