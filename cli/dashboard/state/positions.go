package state

import "github.com/daniil11ru/visla/cli/dashboard/types"

// Positions кэш последней телеметрии по идентификатору устройства, не история.
// Порядок применения определяется порядком вызовов: время самой телеметрии не учитывается.
type Positions struct {
	items map[int64]types.Position
}

func NewPositions() *Positions {
	return &Positions{items: map[int64]types.Position{}}
}

// MergeBatch записывает каждую позицию пакета поверх прежней для её устройства.
// При повторе устройства в пакете побеждает последняя запись. Записи без
// идентификатора устройства пропускаются. Возвращает число применённых и пропущенных записей.
func (p *Positions) MergeBatch(records []types.Position) (applied int, skipped int) {
	if len(records) == 0 {
		return 0, 0
	}
	items := make(map[int64]types.Position, len(p.items)+len(records))
	for id, v := range p.items {
		items[id] = v
	}
	for _, record := range records {
		if !record.HasIdentifier() {
			skipped++
			continue
		}
		items[record.DeviceID] = record
		applied++
	}
	if applied > 0 {
		p.items = items
	}
	return applied, skipped
}

func (p *Positions) Clear() {
	p.items = map[int64]types.Position{}
}

func (p *Positions) Get(deviceID int64) (types.Position, bool) {
	position, ok := p.items[deviceID]
	return position, ok
}

// Items снимок кэша; изменять его нельзя
func (p *Positions) Items() map[int64]types.Position {
	return p.items
}

func (p *Positions) Len() int {
	return len(p.items)
}
