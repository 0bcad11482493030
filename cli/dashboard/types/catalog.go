package types

import "time"

type Group struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	GroupID    *int64     `json:"groupId"`
	Attributes Attributes `json:"attributes"`
}

type Geofence struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Area        string     `json:"area"`
	CalendarID  *int64     `json:"calendarId"`
	Attributes  Attributes `json:"attributes"`
}

// Event событие устройства (выход из геозоны, превышение скорости и т.п.)
type Event struct {
	ID            int64      `json:"id"`
	Type          string     `json:"type"`
	EventTime     time.Time  `json:"eventTime"`
	DeviceID      int64      `json:"deviceId"`
	PositionID    *int64     `json:"positionId"`
	GeofenceID    *int64     `json:"geofenceId"`
	MaintenanceID *int64     `json:"maintenanceId"`
	Attributes    Attributes `json:"attributes"`
}
