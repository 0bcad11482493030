package view

import (
	"sort"
	"strings"

	"github.com/daniil11ru/visla/cli/dashboard/types"
)

// Criteria условия фильтрации списка устройств. Условия независимы и объединяются по И,
// пустое условие ничего не ограничивает.
type Criteria struct {
	Keyword  string
	Statuses map[types.Status]struct{}
	Groups   map[int64]struct{}
}

func NewCriteria(keyword string, statuses []types.Status, groups []int64) Criteria {
	c := Criteria{Keyword: keyword}
	if len(statuses) > 0 {
		c.Statuses = make(map[types.Status]struct{}, len(statuses))
		for _, s := range statuses {
			c.Statuses[s] = struct{}{}
		}
	}
	if len(groups) > 0 {
		c.Groups = make(map[int64]struct{}, len(groups))
		for _, g := range groups {
			c.Groups[g] = struct{}{}
		}
	}
	return c
}

// IsEmpty true, если ни один фильтр не задан
func (c Criteria) IsEmpty() bool {
	return c.Keyword == "" && len(c.Statuses) == 0 && len(c.Groups) == 0
}

func (c Criteria) Clone() Criteria {
	return NewCriteria(c.Keyword, c.StatusList(), c.GroupList())
}

func (c Criteria) StatusList() []types.Status {
	list := make([]types.Status, 0, len(c.Statuses))
	for s := range c.Statuses {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list
}

func (c Criteria) GroupList() []int64 {
	list := make([]int64, 0, len(c.Groups))
	for g := range c.Groups {
		list = append(list, g)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list
}

func (c Criteria) Match(d types.Device) bool {
	return c.matcher()(d)
}

func (c Criteria) matcher() func(types.Device) bool {
	keyword := strings.ToLower(c.Keyword)

	return func(d types.Device) bool {
		if keyword != "" && !matchKeyword(d, keyword) {
			return false
		}
		if len(c.Statuses) > 0 {
			if _, ok := c.Statuses[d.Status]; !ok {
				return false
			}
		}
		if len(c.Groups) > 0 {
			if d.GroupID == nil {
				return false
			}
			if _, ok := c.Groups[*d.GroupID]; !ok {
				return false
			}
		}
		return true
	}
}

func matchKeyword(d types.Device, keyword string) bool {
	if strings.Contains(strings.ToLower(d.Name), keyword) ||
		strings.Contains(strings.ToLower(d.UniqueID), keyword) {
		return true
	}
	if d.Model != nil && strings.Contains(strings.ToLower(*d.Model), keyword) {
		return true
	}
	return d.Phone != nil && strings.Contains(strings.ToLower(*d.Phone), keyword)
}
