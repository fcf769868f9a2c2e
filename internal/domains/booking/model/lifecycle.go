package model

import (
	"fmt"
	"math"
	"time"

	"hostel/shared/constant"
	"hostel/shared/failure"
)

// transitions is the full status machine. Any pair absent here is illegal.
var transitions = map[string][]string{
	StatusPending:    {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:   {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn:  {StatusCheckedOut},
	StatusCheckedOut: {},
	StatusRejected:   {},
	StatusCancelled:  {},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

// Transition validates a status move, returning a failure naming the current
// status when the move is illegal.
func Transition(from, to string) error {
	if !CanTransition(from, to) {
		return failure.BadRequestFromString(fmt.Sprintf("cannot move booking from status %q to %q", from, to)) //nolint:wrapcheck
	}

	return nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share any night. Back-to-back stays (one checks out the day
// the other checks in) do not conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Nights counts billable nights in [checkIn, checkOut). Same-day stays count
// as one night.
func Nights(checkIn, checkOut time.Time) int {
	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if nights < 1 {
		nights = 1
	}

	return nights
}

// FormatBookingNumber renders a month-scoped booking identifier, e.g.
// VH-202403-0005 for the fifth booking of March 2024.
func FormatBookingNumber(t time.Time, seq int) string {
	return fmt.Sprintf("VH-%s-%04d", t.Format(constant.YearMonthKey), seq)
}

// RoomTotal is the estimated room charge for the stay: each allocated room's
// snapshot price times the night count.
func RoomTotal(rooms RoomAllocations, nights int) float64 {
	var total float64
	for _, room := range rooms {
		total += room.PricePerNight * float64(nights)
	}

	return total
}

// RoomIDSet indexes the allocated room ids for overlap intersection.
func RoomIDSet(rooms RoomAllocations) map[string]struct{} {
	set := make(map[string]struct{}, len(rooms))
	for _, room := range rooms {
		set[room.RoomID] = struct{}{}
	}

	return set
}

// ConflictingRoomIDs returns the ids of requested rooms already held by any
// of the given bookings over an overlapping date range. Bookings passed here
// must already be filtered to the blocking statuses and overlapping window.
func ConflictingRoomIDs(requested []string, holders []Booking) []string {
	held := map[string]struct{}{}
	for i := range holders {
		for id := range RoomIDSet(holders[i].Rooms) {
			held[id] = struct{}{}
		}
	}

	var conflicts []string

	for _, id := range requested {
		if _, ok := held[id]; ok {
			conflicts = append(conflicts, id)
		}
	}

	return conflicts
}

// ValidateDateRange rejects inverted stay windows. Same-day stays are valid
// and bill as a single night.
func ValidateDateRange(checkIn, checkOut time.Time) error {
	if checkOut.Before(checkIn) {
		return failure.BadRequestFromString("check-out date must not be before check-in date") //nolint:wrapcheck
	}

	return nil
}
