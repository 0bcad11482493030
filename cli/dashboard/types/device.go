package types

import "time"

// Device отслеживаемое транспортное средство. Идентичность определяется полем ID,
// более поздняя запись с тем же ID полностью заменяет предыдущую.
type Device struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	UniqueID   string     `json:"uniqueId"`
	Status     Status     `json:"status"`
	LastUpdate *time.Time `json:"lastUpdate"`
	PositionID *int64     `json:"positionId"`
	GroupID    *int64     `json:"groupId"`
	Phone      *string    `json:"phone"`
	Model      *string    `json:"model"`
	Contact    *string    `json:"contact"`
	Category   *string    `json:"category"`
	Disabled   bool       `json:"disabled"`
	Attributes Attributes `json:"attributes"`
}

// Valid запись без идентификатора в хранилище не попадает
func (d Device) Valid() bool {
	return d.ID > 0
}
