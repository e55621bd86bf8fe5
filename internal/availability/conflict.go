package availability

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sreedhargoud/camrental-backend/pkg/enums"
)

// DateBlock is the conflict detector's view of a block, whether it came
// from an admin blocked-date or a customer reservation. The two entities
// are distinct for ownership and audit only; conflict semantics treat
// them identically.
type DateBlock struct {
	Start       time.Time
	End         time.Time
	IsFullDay   bool
	TimeSlot    *enums.TimeSlot
	FullDayType *enums.FullDayType
}

// Request is the candidate booking being checked against existing blocks.
type Request struct {
	RentalType  enums.RentalType
	TimeSlot    *enums.TimeSlot
	FullDayType *enums.FullDayType
}

func toDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// covers reports whether the block's inclusive date range contains the
// given date. A block with a missing boundary cannot be reasoned about,
// so it covers everything: assume blocked rather than risk a double
// booking.
func (b DateBlock) covers(date time.Time) bool {
	if b.Start.IsZero() || b.End.IsZero() {
		return true
	}
	d := toDate(date)
	return !d.Before(toDate(b.Start)) && !d.After(toDate(b.End))
}

// blocksRequest decides whether a covering block conflicts with the
// request. Full-day blocks pre-empt everything. Slotted blocks conflict
// only on the matching slot; sub-typed full-day blocks conflict only on
// the matching sub-type. A single day can therefore host a morning and
// an afternoon half-day booking, plus a 9hrs and a 24hrs full-day
// booking, with no collision.
func (b DateBlock) blocksRequest(req Request) bool {
	if b.IsFullDay && b.FullDayType == nil {
		return true
	}
	if b.IsFullDay {
		return req.RentalType == enums.RentalTypeFullDay &&
			req.FullDayType != nil &&
			*req.FullDayType == *b.FullDayType
	}
	return req.RentalType == enums.RentalTypeHalfDay &&
		req.TimeSlot != nil &&
		b.TimeSlot != nil &&
		*req.TimeSlot == *b.TimeSlot
}

// IsDateReserved reports whether the date is unavailable for the request.
// Dates strictly before today (day-granular) are always reserved; today
// itself is bookable.
func IsDateReserved(now, date time.Time, blocks []DateBlock, req Request) bool {
	if toDate(date).Before(toDate(now)) {
		return true
	}
	for _, block := range blocks {
		if block.covers(date) && block.blocksRequest(req) {
			return true
		}
	}
	return false
}

// IsDateRangeReserved reports whether any calendar day in the inclusive
// range is unavailable for the request. An inverted range is malformed
// and treated as reserved.
func IsDateRangeReserved(now, start, end time.Time, blocks []DateBlock, req Request) bool {
	s, e := toDate(start), toDate(end)
	if e.Before(s) {
		return true
	}
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		if IsDateReserved(now, d, blocks, req) {
			return true
		}
	}
	return false
}

// ConflictReason builds the display string for an unavailable date:
// "Fully reserved" when a full-day block covers it, otherwise the list
// of taken slots ("Reserved for: morning, evening"). Empty when the
// date carries no covering blocks at all.
func ConflictReason(date time.Time, blocks []DateBlock) string {
	slots := map[enums.TimeSlot]bool{}
	fullDay := false
	for _, block := range blocks {
		if !block.covers(date) {
			continue
		}
		if block.IsFullDay {
			fullDay = true
			continue
		}
		if block.TimeSlot != nil {
			slots[*block.TimeSlot] = true
		}
	}
	if fullDay || len(slots) == enums.TimeSlotCount {
		return "Fully reserved"
	}
	if len(slots) == 0 {
		return ""
	}
	names := make([]string, 0, len(slots))
	for slot := range slots {
		names = append(names, slot.String())
	}
	sort.Sort(bySlotOrder(names))
	return fmt.Sprintf("Reserved for: %s", strings.Join(names, ", "))
}

var slotOrder = map[string]int{
	enums.TimeSlotMorning.String():   0,
	enums.TimeSlotAfternoon.String(): 1,
	enums.TimeSlotEvening.String():   2,
}

type bySlotOrder []string

func (s bySlotOrder) Len() int           { return len(s) }
func (s bySlotOrder) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s bySlotOrder) Less(i, j int) bool { return slotOrder[s[i]] < slotOrder[s[j]] }
