package types

import (
	"encoding/json"
	"fmt"
)

// Status состояние связи с устройством
type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
	StatusUnknown Status = "unknown"
)

var statusRank = map[Status]int{
	StatusOnline:  0,
	StatusUnknown: 1,
	StatusOffline: 2,
}

func (s Status) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// Rank порядок статуса при сортировке; неизвестные значения считаются offline.
func (s Status) Rank() int {
	if rank, ok := statusRank[s]; ok {
		return rank
	}
	return statusRank[StatusOffline]
}

func ParseStatus(s string) (Status, error) {
	v := Status(s)
	if !v.IsValid() {
		return "", fmt.Errorf("недопустимый статус устройства: %q", s)
	}
	return v, nil
}

// UnmarshalJSON принимает любое строковое значение: сервер может прислать статус,
// о котором клиент не знает, и запись от этого не должна теряться.
func (s *Status) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("статус устройства должен быть строкой: %w", err)
	}
	*s = Status(v)
	return nil
}
