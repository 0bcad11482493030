package view

import "fmt"

type SortKey string

const (
	SortByName       SortKey = "name"
	SortByStatus     SortKey = "status"
	SortByLastUpdate SortKey = "lastUpdate"
)

func (k SortKey) IsValid() bool {
	switch k {
	case SortByName, SortByStatus, SortByLastUpdate:
		return true
	}
	return false
}

func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(s)
	if !k.IsValid() {
		return "", fmt.Errorf("недопустимый ключ сортировки: %q", s)
	}
	return k, nil
}
