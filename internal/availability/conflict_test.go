package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sreedhargoud/camrental-backend/pkg/enums"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func slot(s enums.TimeSlot) *enums.TimeSlot {
	return &s
}

func subType(f enums.FullDayType) *enums.FullDayType {
	return &f
}

func halfDayReq(s enums.TimeSlot) Request {
	return Request{RentalType: enums.RentalTypeHalfDay, TimeSlot: slot(s)}
}

func fullDayReq(f enums.FullDayType) Request {
	return Request{RentalType: enums.RentalTypeFullDay, FullDayType: subType(f)}
}

func TestPastDatesAlwaysReserved(t *testing.T) {
	now := date(2024, 6, 15)

	assert.True(t, IsDateReserved(now, date(2024, 6, 14), nil, halfDayReq(enums.TimeSlotMorning)))
	assert.False(t, IsDateReserved(now, date(2024, 6, 15), nil, halfDayReq(enums.TimeSlotMorning)))
	assert.False(t, IsDateReserved(now, date(2024, 6, 16), nil, halfDayReq(enums.TimeSlotMorning)))
}

func TestHalfDaySlotIndependence(t *testing.T) {
	now := date(2024, 5, 1)
	blocks := []DateBlock{{
		Start:    date(2024, 6, 1),
		End:      date(2024, 6, 1),
		TimeSlot: slot(enums.TimeSlotMorning),
	}}

	assert.False(t, IsDateReserved(now, date(2024, 6, 1), blocks, halfDayReq(enums.TimeSlotAfternoon)))
	assert.False(t, IsDateReserved(now, date(2024, 6, 1), blocks, halfDayReq(enums.TimeSlotEvening)))
	assert.True(t, IsDateReserved(now, date(2024, 6, 1), blocks, halfDayReq(enums.TimeSlotMorning)))
}

func TestFullDayBlockSupersedesEverything(t *testing.T) {
	now := date(2024, 5, 1)
	blocks := []DateBlock{{
		Start:     date(2024, 7, 1),
		End:       date(2024, 7, 3),
		IsFullDay: true,
	}}

	target := date(2024, 7, 2)
	assert.True(t, IsDateReserved(now, target, blocks, fullDayReq(enums.FullDayType9Hrs)))
	assert.True(t, IsDateReserved(now, target, blocks, fullDayReq(enums.FullDayType24Hrs)))
	assert.True(t, IsDateReserved(now, target, blocks, halfDayReq(enums.TimeSlotMorning)))

	// Outside the block range nothing conflicts.
	assert.False(t, IsDateReserved(now, date(2024, 7, 4), blocks, fullDayReq(enums.FullDayType9Hrs)))
}

func TestFullDaySubTierIndependence(t *testing.T) {
	now := date(2024, 5, 1)
	blocks := []DateBlock{{
		Start:       date(2024, 7, 10),
		End:         date(2024, 7, 10),
		IsFullDay:   true,
		FullDayType: subType(enums.FullDayType9Hrs),
	}}

	target := date(2024, 7, 10)
	assert.True(t, IsDateReserved(now, target, blocks, fullDayReq(enums.FullDayType9Hrs)))
	assert.False(t, IsDateReserved(now, target, blocks, fullDayReq(enums.FullDayType24Hrs)))
	assert.False(t, IsDateReserved(now, target, blocks, halfDayReq(enums.TimeSlotEvening)))
}

func TestHalfDayBlockDoesNotBlockFullDaySubTier(t *testing.T) {
	now := date(2024, 5, 1)
	blocks := []DateBlock{{
		Start:    date(2024, 7, 20),
		End:      date(2024, 7, 20),
		TimeSlot: slot(enums.TimeSlotMorning),
	}}

	assert.False(t, IsDateReserved(now, date(2024, 7, 20), blocks, fullDayReq(enums.FullDayType24Hrs)))
}

func TestMalformedBlockFailsSafe(t *testing.T) {
	now := date(2024, 5, 1)
	blocks := []DateBlock{{IsFullDay: true}}

	assert.True(t, IsDateReserved(now, date(2024, 9, 1), blocks, halfDayReq(enums.TimeSlotMorning)))
}

func TestDateRangeReserved(t *testing.T) {
	now := date(2024, 5, 1)
	blocks := []DateBlock{{
		Start:     date(2024, 6, 5),
		End:       date(2024, 6, 5),
		IsFullDay: true,
	}}

	req := fullDayReq(enums.FullDayType9Hrs)
	assert.True(t, IsDateRangeReserved(now, date(2024, 6, 3), date(2024, 6, 7), blocks, req))
	assert.False(t, IsDateRangeReserved(now, date(2024, 6, 6), date(2024, 6, 8), blocks, req))

	// Inverted ranges are malformed, treat as reserved.
	assert.True(t, IsDateRangeReserved(now, date(2024, 6, 8), date(2024, 6, 6), nil, req))
}

func TestConflictReason(t *testing.T) {
	target := date(2024, 6, 1)

	full := []DateBlock{{Start: target, End: target, IsFullDay: true}}
	assert.Equal(t, "Fully reserved", ConflictReason(target, full))

	slots := []DateBlock{
		{Start: target, End: target, TimeSlot: slot(enums.TimeSlotEvening)},
		{Start: target, End: target, TimeSlot: slot(enums.TimeSlotMorning)},
	}
	assert.Equal(t, "Reserved for: morning, evening", ConflictReason(target, slots))

	allSlots := append(slots, DateBlock{Start: target, End: target, TimeSlot: slot(enums.TimeSlotAfternoon)})
	assert.Equal(t, "Fully reserved", ConflictReason(target, allSlots))

	assert.Equal(t, "", ConflictReason(date(2024, 6, 2), slots))
}
