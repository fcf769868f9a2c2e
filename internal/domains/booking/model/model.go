package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"hostel/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                 = "id"
	FieldBookingNumber      = "booking_number"
	FieldGuestName          = "guest_name"
	FieldGuestEmail         = "guest_email"
	FieldGuestPhone         = "guest_phone"
	FieldGuestAddress       = "guest_address"
	FieldPurpose            = "purpose"
	FieldNumberOfGuests     = "number_of_guests"
	FieldRooms              = "rooms"
	FieldCheckInDate        = "check_in_date"
	FieldCheckOutDate       = "check_out_date"
	FieldCheckInTime        = "check_in_time"
	FieldCheckOutTime       = "check_out_time"
	FieldActualCheckIn      = "actual_check_in"
	FieldActualCheckOut     = "actual_check_out"
	FieldFoodRequirement    = "food_requirement"
	FieldDocumentKey        = "document_key"
	FieldDocumentName       = "document_name"
	FieldDocumentType       = "document_type"
	FieldStatus             = "status"
	FieldApprovedBy         = "approved_by"
	FieldApprovedAt         = "approved_at"
	FieldRejectionReason    = "rejection_reason"
	FieldCancellationReason = "cancellation_reason"
	FieldTotalAmount        = "total_amount"
	FieldIsPaid             = "is_paid"
	FieldCreatedBy          = "created_by"
)

const (
	StatusPending    = "Pending"
	StatusApproved   = "Approved"
	StatusCheckedIn  = "Checked-In"
	StatusCheckedOut = "Checked-Out"
	StatusRejected   = "Rejected"
	StatusCancelled  = "Cancelled"
)

// SequenceScope is the per-month counter namespace for booking numbers.
const SequenceScope = "booking"

// RoomAllocation is the snapshot of a room at booking time. Price changes on
// the room catalog after this point do not affect the booking.
type RoomAllocation struct {
	RoomID        string  `json:"room_id"`
	RoomNumber    string  `json:"room_number"`
	RoomType      string  `json:"room_type"`
	PricePerNight float64 `json:"price_per_night"`
}

// RoomAllocations is a jsonb-backed allocation list.
type RoomAllocations []RoomAllocation

func (r RoomAllocations) Value() (driver.Value, error) {
	if r == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(r) //nolint:wrapcheck
}

func (r *RoomAllocations) Scan(src any) error {
	if src == nil {
		*r = RoomAllocations{}

		return nil
	}

	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported rooms column type %T", src)
	}

	return json.Unmarshal(raw, r) //nolint:wrapcheck
}

// MealDay marks which meals the guest wants on one day of the stay.
type MealDay struct {
	Date      time.Time `json:"date"`
	Breakfast bool      `json:"breakfast"`
	Lunch     bool      `json:"lunch"`
	Dinner    bool      `json:"dinner"`
}

// Any reports whether the day carries at least one meal.
func (m MealDay) Any() bool {
	return m.Breakfast || m.Lunch || m.Dinner
}

// FoodRequirement is the per-day meal plan the guest opted into. Meals can
// cover any subset of the stay, one entry per requested day.
type FoodRequirement struct {
	Required     bool      `json:"required"`
	NumberOfDays int       `json:"number_of_days"`
	Meals        []MealDay `json:"meals"`
}

// Normalize recomputes the derived flags from the meals list, dropping days
// with no meal selected.
func (f FoodRequirement) Normalize() FoodRequirement {
	meals := make([]MealDay, 0, len(f.Meals))
	for _, day := range f.Meals {
		if day.Any() {
			meals = append(meals, day)
		}
	}

	f.Meals = meals
	f.NumberOfDays = len(meals)
	f.Required = len(meals) > 0

	return f
}

func (f FoodRequirement) Value() (driver.Value, error) {
	return json.Marshal(f) //nolint:wrapcheck
}

func (f *FoodRequirement) Scan(src any) error {
	if src == nil {
		*f = FoodRequirement{}

		return nil
	}

	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported food_requirement column type %T", src)
	}

	return json.Unmarshal(raw, f) //nolint:wrapcheck
}

type Booking struct {
	ID                 string          `db:"id"`
	BookingNumber      string          `db:"booking_number"`
	GuestName          string          `db:"guest_name"`
	GuestEmail         string          `db:"guest_email"`
	GuestPhone         string          `db:"guest_phone"`
	GuestAddress       string          `db:"guest_address"`
	Purpose            string          `db:"purpose"`
	NumberOfGuests     int             `db:"number_of_guests"`
	Rooms              RoomAllocations `db:"rooms"`
	CheckInDate        time.Time       `db:"check_in_date"`
	CheckOutDate       time.Time       `db:"check_out_date"`
	CheckInTime        string          `db:"check_in_time"`
	CheckOutTime       string          `db:"check_out_time"`
	ActualCheckIn      *time.Time      `db:"actual_check_in"`
	ActualCheckOut     *time.Time      `db:"actual_check_out"`
	FoodRequirement    FoodRequirement `db:"food_requirement"`
	DocumentKey        *string         `db:"document_key"`
	DocumentName       *string         `db:"document_name"`
	DocumentType       *string         `db:"document_type"`
	Status             string          `db:"status"`
	ApprovedBy         *string         `db:"approved_by"`
	ApprovedAt         *time.Time      `db:"approved_at"`
	RejectionReason    *string         `db:"rejection_reason"`
	CancellationReason *string         `db:"cancellation_reason"`
	TotalAmount        float64         `db:"total_amount"`
	IsPaid             bool            `db:"is_paid"`
	model.Metadata
}

// EffectiveCheckOut is the date billing should count nights up to: the
// recorded actual check-out when present, the planned one otherwise.
func (b *Booking) EffectiveCheckOut() time.Time {
	if b.ActualCheckOut != nil {
		return *b.ActualCheckOut
	}

	return b.CheckOutDate
}
