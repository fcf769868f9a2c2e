package dto

import (
	"time"

	"hostel/internal/domains/room/model"
	"hostel/shared"
	gDto "hostel/shared/dto"
	gModel "hostel/shared/model"
	"hostel/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	RoomNumber    string   `json:"room_number"     validate:"required,max=20"`
	RoomType      string   `json:"room_type"       validate:"required,oneof=Single Double Suite Deluxe"`
	Category      string   `json:"category"        validate:"required,oneof=AC Non-AC"`
	PricePerNight float64  `json:"price_per_night" validate:"required,gt=0"`
	MaxOccupancy  int      `json:"max_occupancy"   validate:"required,min=1"`
	Amenities     []string `json:"amenities"       validate:"omitempty,dive,max=50"`
	Description   string   `json:"description"     validate:"omitempty,max=500"`
	Floor         int      `json:"floor"           validate:"omitempty,min=0"`
	IsAvailable   *bool    `json:"is_available"    validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	isAvailable := true
	if c.IsAvailable != nil {
		isAvailable = *c.IsAvailable
	}

	return model.Room{
		ID:            uuid.NewString(),
		RoomNumber:    c.RoomNumber,
		RoomType:      c.RoomType,
		Category:      c.Category,
		PricePerNight: c.PricePerNight,
		MaxOccupancy:  c.MaxOccupancy,
		Amenities:     model.Amenities(c.Amenities),
		Description:   c.Description,
		Floor:         c.Floor,
		IsAvailable:   isAvailable,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	RoomNumber    string          `db:"room_number"     json:"room_number"     validate:"omitempty,max=20"`
	RoomType      string          `db:"room_type"       json:"room_type"       validate:"omitempty,oneof=Single Double Suite Deluxe"`
	Category      string          `db:"category"        json:"category"        validate:"omitempty,oneof=AC Non-AC"`
	PricePerNight *float64        `db:"price_per_night" json:"price_per_night" validate:"omitempty,gt=0"`
	MaxOccupancy  *int            `db:"max_occupancy"   json:"max_occupancy"   validate:"omitempty,min=1"`
	Amenities     model.Amenities `db:"amenities"       json:"amenities"       validate:"omitempty,dive,max=50"`
	Description   *string         `db:"description"     json:"description"     validate:"omitempty,max=500"`
	Floor         *int            `db:"floor"           json:"floor"           validate:"omitempty,min=0"`
	IsAvailable   *bool           `db:"is_available"    json:"is_available"    validate:"omitempty"`
}

// Empty reports whether the update carries no field at all.
func (u *UpdateRoomRequest) Empty() bool {
	return u.RoomNumber == "" && u.RoomType == "" && u.Category == "" &&
		u.PricePerNight == nil && u.MaxOccupancy == nil && u.Amenities == nil &&
		u.Description == nil && u.Floor == nil && u.IsAvailable == nil
}

// AvailabilityWindow asks a listing to annotate each room with whether it is
// free over the half-open [CheckIn, CheckOut) range.
type AvailabilityWindow struct {
	CheckIn  time.Time
	CheckOut time.Time
}

type BlockRoomRequest struct {
	Reason string `json:"reason" validate:"required,max=200"`
}

type RoomResponse struct {
	ID            string   `json:"id"`
	RoomNumber    string   `json:"room_number"`
	RoomType      string   `json:"room_type"`
	Category      string   `json:"category"`
	PricePerNight float64  `json:"price_per_night"`
	MaxOccupancy  int      `json:"max_occupancy"`
	Amenities     []string `json:"amenities"`
	Description   string   `json:"description"`
	Floor         int      `json:"floor"`
	IsAvailable   bool     `json:"is_available"`
	IsBlocked     bool     `json:"is_blocked"`
	BlockReason   *string  `json:"block_reason,omitempty"`

	// AvailableForRange is only set when the listing was asked to annotate
	// availability for a date range.
	AvailableForRange *bool `json:"available_for_range,omitempty"`

	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.Category = model.Category
	r.PricePerNight = model.PricePerNight
	r.MaxOccupancy = model.MaxOccupancy
	r.Amenities = model.Amenities
	r.Description = model.Description
	r.Floor = model.Floor
	r.IsAvailable = model.IsAvailable
	r.IsBlocked = model.IsBlocked
	r.BlockReason = model.BlockReason
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
