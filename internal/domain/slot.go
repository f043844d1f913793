package domain

import (
	"time"

	"github.com/m04kA/SMC-DutyRosterService/pkg/types"
)

// SlotDefinition is one entry of the fixed weekly duty pattern
type SlotDefinition struct {
	ID          int
	Weekday     string // lower-case English weekday name, e.g. "tuesday"
	StartTime   types.TimeString
	EndTime     types.TimeString
	DisplayName string // e.g. "Dienstag"
}

// TimeRange returns the slot's time range
func (d SlotDefinition) TimeRange() types.TimeRange {
	return types.TimeRange{Start: d.StartTime, End: d.EndTime}
}

// ResolvedSlot is a SlotDefinition materialized onto a concrete date
type ResolvedSlot struct {
	SlotID      int
	Date        time.Time
	TimeRange   types.TimeRange
	Weekday     string
	DisplayName string
}

// Key returns the slot key; at most one confirmed booking exists per key
func (s ResolvedSlot) Key() SlotKey {
	return SlotKey{Date: s.Date.Format(DateFormat), Time: s.TimeRange.String()}
}

// BlockReason explains why a date is not bookable
type BlockReason string

const (
	BlockReasonNone             BlockReason = ""
	BlockReasonHoliday          BlockReason = "holiday"
	BlockReasonSeasonalBlackout BlockReason = "seasonal_blackout"
)

// SlotAvailability is the state of a resolved slot in a week view
type SlotAvailability string

const (
	AvailabilityAvailable SlotAvailability = "available"
	AvailabilityBooked    SlotAvailability = "booked"
	AvailabilityBlocked   SlotAvailability = "blocked"
)

// SlotState pairs a resolved slot with its availability
// Booking is set only for AvailabilityBooked, BlockReason only for AvailabilityBlocked
type SlotState struct {
	Slot         ResolvedSlot
	Availability SlotAvailability
	Booking      *Booking
	BlockReason  BlockReason
}
