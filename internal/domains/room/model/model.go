package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"hostel/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldRoomNumber    = "room_number"
	FieldRoomType      = "room_type"
	FieldCategory      = "category"
	FieldPricePerNight = "price_per_night"
	FieldMaxOccupancy  = "max_occupancy"
	FieldAmenities     = "amenities"
	FieldDescription   = "description"
	FieldFloor         = "floor"
	FieldIsAvailable   = "is_available"
	FieldIsBlocked     = "is_blocked"
	FieldBlockReason   = "block_reason"
)

const (
	TypeSingle = "Single"
	TypeDouble = "Double"
	TypeSuite  = "Suite"
	TypeDeluxe = "Deluxe"

	CategoryAC    = "AC"
	CategoryNonAC = "Non-AC"
)

// Amenities is a jsonb-backed string list.
type Amenities []string

func (a Amenities) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(a) //nolint:wrapcheck
}

func (a *Amenities) Scan(src any) error {
	if src == nil {
		*a = Amenities{}

		return nil
	}

	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported amenities column type %T", src)
	}

	return json.Unmarshal(raw, a) //nolint:wrapcheck
}

type Room struct {
	ID            string    `db:"id"`
	RoomNumber    string    `db:"room_number"`
	RoomType      string    `db:"room_type"`
	Category      string    `db:"category"`
	PricePerNight float64   `db:"price_per_night"`
	MaxOccupancy  int       `db:"max_occupancy"`
	Amenities     Amenities `db:"amenities"`
	Description   string    `db:"description"`
	Floor         int       `db:"floor"`
	IsAvailable   bool      `db:"is_available"`
	IsBlocked     bool      `db:"is_blocked"`
	BlockReason   *string   `db:"block_reason"`
	model.Metadata
}

// Bookable reports whether the room can be offered for a new allocation.
func (r *Room) Bookable() bool {
	return r.IsAvailable && !r.IsBlocked
}
