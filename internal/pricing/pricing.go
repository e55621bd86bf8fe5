package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sreedhargoud/camrental-backend/pkg/enums"
	apperrors "github.com/sreedhargoud/camrental-backend/pkg/errors"
)

var (
	// Half-day rentals on cameras that only carry a legacy per-day price
	// are billed at 60% of the day rate.
	legacyHalfDayFactor = decimal.NewFromFloat(0.6)

	taxRate = decimal.NewFromFloat(0.10)
)

// Table holds the per-unit rates for a single camera, in the smallest
// currency unit (rupees for display prices, paise only at the gateway).
type Table struct {
	HalfDay      int64
	FullDay9Hrs  int64
	FullDay24Hrs int64
}

// NormalizeLegacy derives a full tier table from a single legacy per-day
// price. Both full-day tiers inherit the day rate.
func NormalizeLegacy(pricePerDay int64) Table {
	half := decimal.NewFromInt(pricePerDay).Mul(legacyHalfDayFactor).Round(0).IntPart()
	return Table{
		HalfDay:      half,
		FullDay9Hrs:  pricePerDay,
		FullDay24Hrs: pricePerDay,
	}
}

// RateFor resolves the per-unit rate for a rental type. Full-day requests
// must carry a sub-tier.
func (t Table) RateFor(rentalType enums.RentalType, fullDayType *enums.FullDayType) (int64, error) {
	switch rentalType {
	case enums.RentalTypeHalfDay:
		return t.HalfDay, nil
	case enums.RentalTypeFullDay:
		if fullDayType == nil {
			return 0, apperrors.New(apperrors.CodeValidation, "full-day rental requires a full-day type")
		}
		switch *fullDayType {
		case enums.FullDayType9Hrs:
			return t.FullDay9Hrs, nil
		case enums.FullDayType24Hrs:
			return t.FullDay24Hrs, nil
		}
		return 0, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("unknown full-day type %q", *fullDayType))
	}
	return 0, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("unknown rental type %q", rentalType))
}

// TierOrderViolations reports tiers that are priced out of the expected
// order (half-day <= 9hrs <= 24hrs). Violations are reported, never
// rejected: admins sometimes price promotions this way on purpose.
func (t Table) TierOrderViolations() []string {
	var violations []string
	if t.HalfDay > t.FullDay9Hrs {
		violations = append(violations, "half-day rate exceeds 9hrs full-day rate")
	}
	if t.FullDay9Hrs > t.FullDay24Hrs {
		violations = append(violations, "9hrs full-day rate exceeds 24hrs full-day rate")
	}
	return violations
}

// DaysInclusive counts calendar days between start and end, inclusive on
// both ends. Aug 1 to Aug 3 is 3 days. Time-of-day and zone offsets are
// discarded before counting.
func DaysInclusive(start, end time.Time) int {
	s := truncateToDate(start)
	e := truncateToDate(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Tax computes the tax amount for a subtotal at the flat 10% rate,
// rounded to the nearest whole unit.
func Tax(subtotal int64) int64 {
	return decimal.NewFromInt(subtotal).Mul(taxRate).Round(0).IntPart()
}

// LineRequest is a single rental to be priced.
type LineRequest struct {
	RentalType  enums.RentalType
	FullDayType *enums.FullDayType
	StartDate   time.Time
	EndDate     time.Time
	Quantity    int
	Accessories []int64
}

// Line is the priced result for one request.
type Line struct {
	UnitPrice      int64
	Days           int
	AccessoryTotal int64
	Total          int64
}

// PriceLine prices one rental against a rate table. Half-day rentals are
// single-date by definition, so the date range is collapsed to one day.
// Full-day rentals are billed per inclusive calendar day.
func PriceLine(table Table, req LineRequest) (Line, error) {
	if req.Quantity <= 0 {
		return Line{}, apperrors.New(apperrors.CodeValidation, "quantity must be positive")
	}
	if req.StartDate.IsZero() {
		return Line{}, apperrors.New(apperrors.CodeValidation, "start date is required")
	}

	rate, err := table.RateFor(req.RentalType, req.FullDayType)
	if err != nil {
		return Line{}, err
	}

	days := 1
	if req.RentalType == enums.RentalTypeFullDay {
		if req.EndDate.IsZero() {
			return Line{}, apperrors.New(apperrors.CodeValidation, "end date is required for full-day rentals")
		}
		days = DaysInclusive(req.StartDate, req.EndDate)
		if days == 0 {
			return Line{}, apperrors.New(apperrors.CodeValidation, "end date must not precede start date")
		}
	}

	var accessories int64
	for _, price := range req.Accessories {
		if price < 0 {
			return Line{}, apperrors.New(apperrors.CodeValidation, "accessory price must not be negative")
		}
		accessories += price
	}
	accessoryTotal := accessories * int64(req.Quantity)

	rental := rate * int64(days) * int64(req.Quantity)
	return Line{
		UnitPrice:      rate,
		Days:           days,
		AccessoryTotal: accessoryTotal,
		Total:          rental + accessoryTotal,
	}, nil
}

// Totals sums line totals into subtotal, tax and grand total.
func Totals(lines []Line) (subtotal, tax, total int64) {
	for _, line := range lines {
		subtotal += line.Total
	}
	tax = Tax(subtotal)
	return subtotal, tax, subtotal + tax
}
