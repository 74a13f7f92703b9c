package enums

import "fmt"

// ChangeEventType classifies an externally-originated order history change.
type ChangeEventType string

const (
	ChangeEventInsert ChangeEventType = "insert"
	ChangeEventUpdate ChangeEventType = "update"
	ChangeEventDelete ChangeEventType = "delete"
	ChangeEventClear  ChangeEventType = "clear"
)

var validChangeEventTypes = []ChangeEventType{
	ChangeEventInsert,
	ChangeEventUpdate,
	ChangeEventDelete,
	ChangeEventClear,
}

// IsValid reports whether the value matches a known change event type.
func (t ChangeEventType) IsValid() bool {
	for _, candidate := range validChangeEventTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseChangeEventType converts raw input into a ChangeEventType.
func ParseChangeEventType(value string) (ChangeEventType, error) {
	for _, candidate := range validChangeEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid change event type %q", value)
}
