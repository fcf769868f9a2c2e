package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"hostel/shared/model"
)

const (
	TableName  = "bills"
	EntityName = "bill"

	FieldID               = "id"
	FieldBillNumber       = "bill_number"
	FieldBookingID        = "booking_id"
	FieldBookingNumber    = "booking_number"
	FieldGuestName        = "guest_name"
	FieldGuestEmail       = "guest_email"
	FieldGuestPhone       = "guest_phone"
	FieldGuestAddress     = "guest_address"
	FieldCheckInDate      = "check_in_date"
	FieldCheckOutDate     = "check_out_date"
	FieldNumberOfNights   = "number_of_nights"
	FieldRoomCharges      = "room_charges"
	FieldRoomSubtotal     = "room_subtotal"
	FieldFoodCharges      = "food_charges"
	FieldExtras           = "extras"
	FieldExtrasSubtotal   = "extras_subtotal"
	FieldTotalAmount      = "total_amount"
	FieldTax              = "tax"
	FieldGrandTotal       = "grand_total"
	FieldPaymentStatus    = "payment_status"
	FieldPaidAmount       = "paid_amount"
	FieldPaymentMethod    = "payment_method"
	FieldSeparateFoodBill = "separate_food_bill"
	FieldNotes            = "notes"
	FieldGeneratedBy      = "generated_by"
)

const (
	PaymentStatusPending = "Pending"
	PaymentStatusPartial = "Partial"
	PaymentStatusPaid    = "Paid"
)

// SequenceScope is the per-month counter namespace for bill numbers.
const SequenceScope = "bill"

// RoomCharge is one line of the itemized room table.
type RoomCharge struct {
	RoomNumber    string  `json:"room_number"`
	RoomType      string  `json:"room_type"`
	PricePerNight float64 `json:"price_per_night"`
	Nights        int     `json:"nights"`
	Total         float64 `json:"total"`
}

// RoomCharges is a jsonb-backed room charge list.
type RoomCharges []RoomCharge

func (r RoomCharges) Value() (driver.Value, error) {
	if r == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(r) //nolint:wrapcheck
}

func (r *RoomCharges) Scan(src any) error {
	if src == nil {
		*r = RoomCharges{}

		return nil
	}

	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported room_charges column type %T", src)
	}

	return json.Unmarshal(raw, r) //nolint:wrapcheck
}

// FoodChargeItem is one billed meal-day: each present meal carries its
// priced amount (guests × rate), DayTotal sums them.
type FoodChargeItem struct {
	Date      time.Time `json:"date"`
	Breakfast float64   `json:"breakfast,omitempty"`
	Lunch     float64   `json:"lunch,omitempty"`
	Dinner    float64   `json:"dinner,omitempty"`
	DayTotal  float64   `json:"day_total"`
}

// FoodCharges is the per-day meal breakdown for the stay.
type FoodCharges struct {
	Items    []FoodChargeItem `json:"items"`
	Subtotal float64          `json:"subtotal"`
}

func (f FoodCharges) Value() (driver.Value, error) {
	return json.Marshal(f) //nolint:wrapcheck
}

func (f *FoodCharges) Scan(src any) error {
	if src == nil {
		*f = FoodCharges{}

		return nil
	}

	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported food_charges column type %T", src)
	}

	return json.Unmarshal(raw, f) //nolint:wrapcheck
}

// Extra is an ad-hoc charge line (laundry, extra bed and the like).
type Extra struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Rate        float64 `json:"rate"`
	Total       float64 `json:"total"`
}

// Extras is a jsonb-backed extra charge list.
type Extras []Extra

func (e Extras) Value() (driver.Value, error) {
	if e == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(e) //nolint:wrapcheck
}

func (e *Extras) Scan(src any) error {
	if src == nil {
		*e = Extras{}

		return nil
	}

	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported extras column type %T", src)
	}

	return json.Unmarshal(raw, e) //nolint:wrapcheck
}

type Bill struct {
	ID               string      `db:"id"`
	BillNumber       string      `db:"bill_number"`
	BookingID        string      `db:"booking_id"`
	BookingNumber    string      `db:"booking_number"`
	GuestName        string      `db:"guest_name"`
	GuestEmail       string      `db:"guest_email"`
	GuestPhone       string      `db:"guest_phone"`
	GuestAddress     string      `db:"guest_address"`
	CheckInDate      time.Time   `db:"check_in_date"`
	CheckOutDate     time.Time   `db:"check_out_date"`
	NumberOfNights   int         `db:"number_of_nights"`
	RoomCharges      RoomCharges `db:"room_charges"`
	RoomSubtotal     float64     `db:"room_subtotal"`
	FoodCharges      FoodCharges `db:"food_charges"`
	Extras           Extras      `db:"extras"`
	ExtrasSubtotal   float64     `db:"extras_subtotal"`
	TotalAmount      float64     `db:"total_amount"`
	Tax              float64     `db:"tax"`
	GrandTotal       float64     `db:"grand_total"`
	PaymentStatus    string      `db:"payment_status"`
	PaidAmount       float64     `db:"paid_amount"`
	PaymentMethod    *string     `db:"payment_method"`
	SeparateFoodBill bool        `db:"separate_food_bill"`
	Notes            string      `db:"notes"`
	GeneratedBy      string      `db:"generated_by"`
	model.Metadata
}
