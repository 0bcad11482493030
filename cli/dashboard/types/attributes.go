package types

import (
	"bytes"
	"encoding/json"
)

// Известные ключи атрибутов позиции
const (
	AttributeIgnition     = "ignition"
	AttributeBatteryLevel = "batteryLevel"
)

type AttributeKind int

const (
	AttributeUnknown AttributeKind = iota
	AttributeBool
	AttributeNumber
	AttributeString
)

// AttributeValue значение произвольного атрибута. Булевы, числовые и строковые значения
// хранятся типизированно, всё остальное (объекты, массивы, null) остаётся в исходном JSON.
type AttributeValue struct {
	kind   AttributeKind
	flag   bool
	number float64
	text   string
	raw    json.RawMessage
}

func BoolAttribute(v bool) AttributeValue {
	return AttributeValue{kind: AttributeBool, flag: v}
}

func NumberAttribute(v float64) AttributeValue {
	return AttributeValue{kind: AttributeNumber, number: v}
}

func StringAttribute(v string) AttributeValue {
	return AttributeValue{kind: AttributeString, text: v}
}

func (v AttributeValue) Kind() AttributeKind {
	return v.kind
}

func (v AttributeValue) Bool() (bool, bool) {
	return v.flag, v.kind == AttributeBool
}

func (v AttributeValue) Number() (float64, bool) {
	return v.number, v.kind == AttributeNumber
}

func (v AttributeValue) Text() (string, bool) {
	return v.text, v.kind == AttributeString
}

// Raw исходный JSON для значений неизвестной формы
func (v AttributeValue) Raw() json.RawMessage {
	return v.raw
}

func (v *AttributeValue) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if bytes.Equal(trimmed, []byte("null")) {
		*v = AttributeValue{kind: AttributeUnknown, raw: json.RawMessage("null")}
		return nil
	}

	var flag bool
	if err := json.Unmarshal(trimmed, &flag); err == nil {
		*v = BoolAttribute(flag)
		return nil
	}

	var number float64
	if err := json.Unmarshal(trimmed, &number); err == nil {
		*v = NumberAttribute(number)
		return nil
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		*v = StringAttribute(text)
		return nil
	}

	raw := make(json.RawMessage, len(trimmed))
	copy(raw, trimmed)
	*v = AttributeValue{kind: AttributeUnknown, raw: raw}
	return nil
}

func (v AttributeValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case AttributeBool:
		return json.Marshal(v.flag)
	case AttributeNumber:
		return json.Marshal(v.number)
	case AttributeString:
		return json.Marshal(v.text)
	}
	if len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// Attributes открытый набор атрибутов устройства или позиции
type Attributes map[string]AttributeValue

func (a Attributes) Get(key string) (AttributeValue, bool) {
	v, ok := a[key]
	return v, ok
}

// Ignition состояние зажигания, если трекер его передаёт
func (a Attributes) Ignition() (bool, bool) {
	v, ok := a[AttributeIgnition]
	if !ok {
		return false, false
	}
	return v.Bool()
}

// BatteryLevel уровень заряда в процентах, если трекер его передаёт
func (a Attributes) BatteryLevel() (float64, bool) {
	v, ok := a[AttributeBatteryLevel]
	if !ok {
		return 0, false
	}
	return v.Number()
}
