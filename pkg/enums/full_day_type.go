package enums

import "fmt"

// FullDayType is the sub-tier of a full-day rental.
type FullDayType string

const (
	FullDayType9Hrs  FullDayType = "9hrs"
	FullDayType24Hrs FullDayType = "24hrs"
)

var validFullDayTypes = []FullDayType{
	FullDayType9Hrs,
	FullDayType24Hrs,
}

// String implements fmt.Stringer.
func (f FullDayType) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FullDayType.
func (f FullDayType) IsValid() bool {
	for _, candidate := range validFullDayTypes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFullDayType converts raw input into a FullDayType.
func ParseFullDayType(value string) (FullDayType, error) {
	for _, candidate := range validFullDayTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid full day type %q", value)
}
