package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreedhargoud/camrental-backend/pkg/enums"
	apperrors "github.com/sreedhargoud/camrental-backend/pkg/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fullDay(t enums.FullDayType) *enums.FullDayType {
	return &t
}

func TestDaysInclusive(t *testing.T) {
	assert.Equal(t, 1, DaysInclusive(date(2026, 8, 1), date(2026, 8, 1)))
	assert.Equal(t, 3, DaysInclusive(date(2026, 8, 1), date(2026, 8, 3)))
	assert.Equal(t, 0, DaysInclusive(date(2026, 8, 3), date(2026, 8, 1)))

	// Time-of-day must not change the count.
	late := time.Date(2026, 8, 1, 23, 30, 0, 0, time.UTC)
	early := time.Date(2026, 8, 3, 0, 15, 0, 0, time.UTC)
	assert.Equal(t, 3, DaysInclusive(late, early))
}

func TestPriceLineFullDayMultiplesDays(t *testing.T) {
	table := Table{HalfDay: 500, FullDay9Hrs: 800, FullDay24Hrs: 1200}

	line, err := PriceLine(table, LineRequest{
		RentalType:  enums.RentalTypeFullDay,
		FullDayType: fullDay(enums.FullDayType9Hrs),
		StartDate:   date(2026, 8, 1),
		EndDate:     date(2026, 8, 3),
		Quantity:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(800), line.UnitPrice)
	assert.Equal(t, 3, line.Days)
	assert.Equal(t, int64(2400), line.Total)
}

func TestPriceLineHalfDayIgnoresRange(t *testing.T) {
	table := Table{HalfDay: 500, FullDay9Hrs: 800, FullDay24Hrs: 1200}

	line, err := PriceLine(table, LineRequest{
		RentalType: enums.RentalTypeHalfDay,
		StartDate:  date(2026, 8, 1),
		EndDate:    date(2026, 8, 5),
		Quantity:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, line.Days)
	assert.Equal(t, int64(1000), line.Total)
}

func TestPriceLineAccessories(t *testing.T) {
	table := Table{HalfDay: 500, FullDay9Hrs: 800, FullDay24Hrs: 1200}

	line, err := PriceLine(table, LineRequest{
		RentalType:  enums.RentalTypeFullDay,
		FullDayType: fullDay(enums.FullDayType24Hrs),
		StartDate:   date(2026, 8, 1),
		EndDate:     date(2026, 8, 2),
		Quantity:    2,
		Accessories: []int64{100, 50},
	})
	require.NoError(t, err)
	// 1200 * 2 days * 2 qty + (150 accessories * 2 qty)
	assert.Equal(t, int64(300), line.AccessoryTotal)
	assert.Equal(t, int64(5100), line.Total)
}

func TestPriceLineValidation(t *testing.T) {
	table := Table{HalfDay: 500, FullDay9Hrs: 800, FullDay24Hrs: 1200}

	cases := []struct {
		name string
		req  LineRequest
	}{
		{
			name: "zero quantity",
			req: LineRequest{
				RentalType: enums.RentalTypeHalfDay,
				StartDate:  date(2026, 8, 1),
			},
		},
		{
			name: "missing start date",
			req: LineRequest{
				RentalType: enums.RentalTypeHalfDay,
				Quantity:   1,
			},
		},
		{
			name: "full-day missing sub-tier",
			req: LineRequest{
				RentalType: enums.RentalTypeFullDay,
				StartDate:  date(2026, 8, 1),
				EndDate:    date(2026, 8, 2),
				Quantity:   1,
			},
		},
		{
			name: "end before start",
			req: LineRequest{
				RentalType:  enums.RentalTypeFullDay,
				FullDayType: fullDay(enums.FullDayType9Hrs),
				StartDate:   date(2026, 8, 5),
				EndDate:     date(2026, 8, 1),
				Quantity:    1,
			},
		},
		{
			name: "negative accessory price",
			req: LineRequest{
				RentalType:  enums.RentalTypeHalfDay,
				StartDate:   date(2026, 8, 1),
				Quantity:    1,
				Accessories: []int64{-50},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PriceLine(table, tc.req)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
		})
	}
}

func TestNormalizeLegacy(t *testing.T) {
	table := NormalizeLegacy(1000)
	assert.Equal(t, int64(600), table.HalfDay)
	assert.Equal(t, int64(1000), table.FullDay9Hrs)
	assert.Equal(t, int64(1000), table.FullDay24Hrs)

	// Rounds to the nearest whole unit.
	odd := NormalizeLegacy(999)
	assert.Equal(t, int64(599), odd.HalfDay)
}

func TestTax(t *testing.T) {
	assert.Equal(t, int64(240), Tax(2400))
	assert.Equal(t, int64(0), Tax(0))
	assert.Equal(t, int64(100), Tax(999))
}

func TestTotals(t *testing.T) {
	lines := []Line{{Total: 2400}, {Total: 600}}
	subtotal, tax, total := Totals(lines)
	assert.Equal(t, int64(3000), subtotal)
	assert.Equal(t, int64(300), tax)
	assert.Equal(t, int64(3300), total)
}

func TestTierOrderViolations(t *testing.T) {
	assert.Empty(t, Table{HalfDay: 500, FullDay9Hrs: 800, FullDay24Hrs: 1200}.TierOrderViolations())

	inverted := Table{HalfDay: 900, FullDay9Hrs: 800, FullDay24Hrs: 700}
	violations := inverted.TierOrderViolations()
	require.Len(t, violations, 2)
}
