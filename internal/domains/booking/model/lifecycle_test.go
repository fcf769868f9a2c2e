package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hostel/internal/domains/booking/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{model.StatusPending, model.StatusApproved, true},
		{model.StatusPending, model.StatusRejected, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusPending, model.StatusCheckedIn, false},
		{model.StatusApproved, model.StatusCheckedIn, true},
		{model.StatusApproved, model.StatusCancelled, true},
		{model.StatusApproved, model.StatusRejected, false},
		{model.StatusCheckedIn, model.StatusCheckedOut, true},
		{model.StatusCheckedIn, model.StatusCancelled, false},
		{model.StatusCheckedOut, model.StatusCheckedIn, false},
		{model.StatusRejected, model.StatusApproved, false},
		{model.StatusCancelled, model.StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+" to "+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.allowed, model.CanTransition(tt.from, tt.to))
		})
	}
}

func TestTransition_IllegalMoveNamesStatuses(t *testing.T) {
	err := model.Transition(model.StatusCheckedOut, model.StatusCheckedIn)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), model.StatusCheckedOut)
	assert.Contains(t, err.Error(), model.StatusCheckedIn)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		aStart   time.Time
		aEnd     time.Time
		bStart   time.Time
		bEnd     time.Time
		overlaps bool
	}{
		{
			name:   "identical windows",
			aStart: date(2024, 3, 10), aEnd: date(2024, 3, 12),
			bStart: date(2024, 3, 10), bEnd: date(2024, 3, 12),
			overlaps: true,
		},
		{
			name:   "partial overlap",
			aStart: date(2024, 3, 10), aEnd: date(2024, 3, 14),
			bStart: date(2024, 3, 12), bEnd: date(2024, 3, 16),
			overlaps: true,
		},
		{
			name:   "contained window",
			aStart: date(2024, 3, 10), aEnd: date(2024, 3, 20),
			bStart: date(2024, 3, 12), bEnd: date(2024, 3, 14),
			overlaps: true,
		},
		{
			name:   "back to back stays do not conflict",
			aStart: date(2024, 3, 10), aEnd: date(2024, 3, 12),
			bStart: date(2024, 3, 12), bEnd: date(2024, 3, 14),
			overlaps: false,
		},
		{
			name:   "disjoint windows",
			aStart: date(2024, 3, 10), aEnd: date(2024, 3, 12),
			bStart: date(2024, 3, 20), bEnd: date(2024, 3, 22),
			overlaps: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, model.Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{"one night", date(2024, 3, 10), date(2024, 3, 11), 1},
		{"three nights", date(2024, 3, 10), date(2024, 3, 13), 3},
		{"same day counts as one night", date(2024, 3, 10), date(2024, 3, 10), 1},
		{"partial day rounds up", date(2024, 3, 10), date(2024, 3, 11).Add(6 * time.Hour), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Nights(tt.checkIn, tt.checkOut))
		})
	}
}

func TestFormatBookingNumber(t *testing.T) {
	assert.Equal(t, "VH-202403-0005", model.FormatBookingNumber(date(2024, 3, 15), 5))
	assert.Equal(t, "VH-202412-1234", model.FormatBookingNumber(date(2024, 12, 1), 1234))
}

func TestRoomTotal(t *testing.T) {
	rooms := model.RoomAllocations{
		{RoomID: "r1", RoomNumber: "101", RoomType: "AC", PricePerNight: 1200},
		{RoomID: "r2", RoomNumber: "102", RoomType: "Non-AC", PricePerNight: 800},
	}

	assert.InDelta(t, 6000, model.RoomTotal(rooms, 3), 0.001)
	assert.InDelta(t, 0, model.RoomTotal(nil, 3), 0.001)
}

func TestConflictingRoomIDs(t *testing.T) {
	holders := []model.Booking{
		{Rooms: model.RoomAllocations{{RoomID: "r1"}, {RoomID: "r2"}}},
		{Rooms: model.RoomAllocations{{RoomID: "r3"}}},
	}

	tests := []struct {
		name      string
		requested []string
		want      []string
	}{
		{"no conflict", []string{"r4", "r5"}, nil},
		{"single conflict", []string{"r2", "r4"}, []string{"r2"}},
		{"all conflict", []string{"r1", "r3"}, []string{"r1", "r3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.ConflictingRoomIDs(tt.requested, holders))
		})
	}
}

func TestValidateDateRange(t *testing.T) {
	assert.NoError(t, model.ValidateDateRange(date(2024, 3, 10), date(2024, 3, 12)))
	assert.NoError(t, model.ValidateDateRange(date(2024, 3, 10), date(2024, 3, 10)))
	assert.Error(t, model.ValidateDateRange(date(2024, 3, 12), date(2024, 3, 10)))
}

func TestFoodRequirement_Normalize(t *testing.T) {
	req := model.FoodRequirement{
		Required:     false,
		NumberOfDays: 99,
		Meals: []model.MealDay{
			{Date: date(2024, 3, 10), Breakfast: true, Lunch: true},
			{Date: date(2024, 3, 11)}, // nothing selected, dropped
			{Date: date(2024, 3, 12), Dinner: true},
		},
	}

	got := req.Normalize()

	assert.True(t, got.Required)
	assert.Equal(t, 2, got.NumberOfDays)
	assert.Len(t, got.Meals, 2)
	assert.Equal(t, date(2024, 3, 10), got.Meals[0].Date)
	assert.Equal(t, date(2024, 3, 12), got.Meals[1].Date)

	empty := model.FoodRequirement{Required: true, NumberOfDays: 3}.Normalize()
	assert.False(t, empty.Required)
	assert.Equal(t, 0, empty.NumberOfDays)
	assert.Empty(t, empty.Meals)
}

func TestBooking_EffectiveCheckOut(t *testing.T) {
	planned := date(2024, 3, 12)
	actual := date(2024, 3, 14)

	booking := model.Booking{CheckOutDate: planned}
	assert.Equal(t, planned, booking.EffectiveCheckOut())

	booking.ActualCheckOut = &actual
	assert.Equal(t, actual, booking.EffectiveCheckOut())
}
