package state

// Selection выбранное пользователем устройство: либо ничего, либо один идентификатор.
// Существование устройства не проверяется, выбор может указывать на ещё не загруженную
// или уже удалённую запись.
type Selection struct {
	id       int64
	selected bool
}

// Select возвращает true, если выбор изменился
func (s *Selection) Select(id int64) bool {
	if s.selected && s.id == id {
		return false
	}
	s.id, s.selected = id, true
	return true
}

// Clear снимает выбор
func (s *Selection) Clear() bool {
	if !s.selected {
		return false
	}
	s.id, s.selected = 0, false
	return true
}

func (s *Selection) Selected() (int64, bool) {
	return s.id, s.selected
}
