package state

import (
	"sort"

	"github.com/daniil11ru/visla/cli/dashboard/types"
)

// Devices хранилище последних известных записей устройств по идентификатору.
// Каждое изменение подменяет карту целиком, ранее выданные снимки не меняются.
type Devices struct {
	items map[int64]types.Device
}

func NewDevices() *Devices {
	return &Devices{items: map[int64]types.Device{}}
}

// ReplaceAll заменяет содержимое хранилища переданным списком. Записи без идентификатора
// пропускаются, возвращается их количество.
func (d *Devices) ReplaceAll(devices []types.Device) int {
	items := make(map[int64]types.Device, len(devices))
	skipped := 0
	for _, device := range devices {
		if !device.Valid() {
			skipped++
			continue
		}
		items[device.ID] = device
	}
	d.items = items
	return skipped
}

// Upsert добавляет или заменяет одну запись. Возвращает false для записи без идентификатора.
func (d *Devices) Upsert(device types.Device) bool {
	if !device.Valid() {
		return false
	}
	items := make(map[int64]types.Device, len(d.items)+1)
	for id, v := range d.items {
		items[id] = v
	}
	items[device.ID] = device
	d.items = items
	return true
}

// Remove удаляет запись, если она есть
func (d *Devices) Remove(id int64) bool {
	if _, ok := d.items[id]; !ok {
		return false
	}
	items := make(map[int64]types.Device, len(d.items))
	for k, v := range d.items {
		if k != id {
			items[k] = v
		}
	}
	d.items = items
	return true
}

func (d *Devices) Get(id int64) (types.Device, bool) {
	device, ok := d.items[id]
	return device, ok
}

// Items снимок хранилища; изменять его нельзя
func (d *Devices) Items() map[int64]types.Device {
	return d.items
}

func (d *Devices) Len() int {
	return len(d.items)
}

// List записи в порядке возрастания идентификатора
func (d *Devices) List() []types.Device {
	list := make([]types.Device, 0, len(d.items))
	for _, device := range d.items {
		list = append(list, device)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
