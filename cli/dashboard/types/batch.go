package types

import (
	"encoding/json"
	"fmt"
)

// DecodeBatch разбирает JSON-массив записей поштучно. Запись, которую не удалось
// разобрать, пропускается и учитывается в skipped, остальные записи пакета сохраняются.
// Ошибка возвращается, только если сам пакет не является массивом.
func DecodeBatch[T any](data []byte) (records []T, skipped int, err error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("пакет не является JSON-массивом: %w", err)
	}

	records = make([]T, 0, len(raw))
	for _, item := range raw {
		var record T
		if err := json.Unmarshal(item, &record); err != nil {
			skipped++
			continue
		}
		records = append(records, record)
	}
	return records, skipped, nil
}
