package enums

import "fmt"

// RentalType distinguishes half-day slot rentals from full-day rentals.
type RentalType string

const (
	RentalTypeHalfDay RentalType = "half-day"
	RentalTypeFullDay RentalType = "full-day"
)

var validRentalTypes = []RentalType{
	RentalTypeHalfDay,
	RentalTypeFullDay,
}

// String implements fmt.Stringer.
func (r RentalType) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RentalType.
func (r RentalType) IsValid() bool {
	for _, candidate := range validRentalTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRentalType converts raw input into a RentalType.
func ParseRentalType(value string) (RentalType, error) {
	for _, candidate := range validRentalTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rental type %q", value)
}
