package types

import "time"

const (
	// KnotsToKmh множитель перевода скорости из узлов в км/ч
	KnotsToKmh = 1.852
	// MovingSpeedKnots скорость, выше которой транспорт считается движущимся
	MovingSpeedKnots = 2.0
)

// Position последняя известная телеметрия устройства. Скорость хранится в узлах.
type Position struct {
	ID         int64      `json:"id"`
	DeviceID   int64      `json:"deviceId"`
	Protocol   string     `json:"protocol"`
	ServerTime time.Time  `json:"serverTime"`
	DeviceTime time.Time  `json:"deviceTime"`
	FixTime    time.Time  `json:"fixTime"`
	Outdated   bool       `json:"outdated"`
	Valid      bool       `json:"valid"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Altitude   float64    `json:"altitude"`
	Speed      float64    `json:"speed"`
	Course     float64    `json:"course"`
	Address    *string    `json:"address"`
	Accuracy   float64    `json:"accuracy"`
	Attributes Attributes `json:"attributes"`
}

func (p Position) HasIdentifier() bool {
	return p.DeviceID > 0
}

func (p Position) SpeedKmh() float64 {
	return p.Speed * KnotsToKmh
}

func (p Position) Moving() bool {
	return p.Speed > MovingSpeedKnots
}
