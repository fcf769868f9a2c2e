package dto

import (
	"time"

	"github.com/google/uuid"

	"hostel/internal/domains/booking/model"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	gModel "hostel/shared/model"
	"hostel/shared/timezone"
)

// ApprovalDocumentRequest carries the supporting document as a base64 data
// URI, validated for mimetype and decoded size before upload.
type ApprovalDocumentRequest struct {
	FileName string `json:"file_name" validate:"required,max=150"`
	Data     string `json:"data"      validate:"required,mimetypes=application/pdf image/png image/jpeg,maxfilesize=5"`
}

type CreateBookingRequest struct {
	GuestName        string                   `json:"guest_name"        validate:"required,max=100"`
	GuestEmail       string                   `json:"guest_email"       validate:"required,email,max=100"`
	GuestPhone       string                   `json:"guest_phone"       validate:"omitempty,max=20"`
	GuestAddress     string                   `json:"guest_address"     validate:"omitempty,max=200"`
	Purpose          string                   `json:"purpose"           validate:"omitempty,max=500"`
	NumberOfGuests   int                      `json:"number_of_guests"  validate:"required,min=1"`
	RoomIDs          []string                 `json:"room_ids"          validate:"required,min=1,dive,uuid"`
	CheckInDate      string                   `json:"check_in_date"     validate:"required,dateonly"`
	CheckOutDate     string                   `json:"check_out_date"    validate:"required,dateonly"`
	CheckInTime      string                   `json:"check_in_time"     validate:"omitempty,len=5"`
	CheckOutTime     string                   `json:"check_out_time"    validate:"omitempty,len=5"`
	FoodRequirement  model.FoodRequirement    `json:"food_requirement"`
	ApprovalDocument *ApprovalDocumentRequest `json:"approval_document" validate:"omitempty"`
}

// stayTime falls back to the display-only default when the caller left the
// time of day out.
func stayTime(value string) string {
	if value == constant.Empty {
		return constant.DefaultStayTime
	}

	return value
}

// DateRange parses the stay window. Validation has already confirmed the
// fields are well-formed dates.
func (c *CreateBookingRequest) DateRange() (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.Parse(constant.DateOnlyFormat, c.CheckInDate)
	if err != nil {
		return checkIn, checkOut, err //nolint:wrapcheck
	}

	checkOut, err = time.Parse(constant.DateOnlyFormat, c.CheckOutDate)

	return checkIn, checkOut, err //nolint:wrapcheck
}

// ToModel assembles the booking row from the request plus the values the
// service derived: the claimed booking number, the room snapshots and the
// estimated total.
func (c *CreateBookingRequest) ToModel(user, bookingNumber string, rooms model.RoomAllocations, checkIn, checkOut time.Time, totalAmount float64) model.Booking {
	return model.Booking{
		ID:              uuid.NewString(),
		BookingNumber:   bookingNumber,
		GuestName:       c.GuestName,
		GuestEmail:      c.GuestEmail,
		GuestPhone:      c.GuestPhone,
		GuestAddress:    c.GuestAddress,
		Purpose:         c.Purpose,
		NumberOfGuests:  c.NumberOfGuests,
		Rooms:           rooms,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		CheckInTime:     stayTime(c.CheckInTime),
		CheckOutTime:    stayTime(c.CheckOutTime),
		FoodRequirement: c.FoodRequirement.Normalize(),
		Status:          model.StatusPending,
		TotalAmount:     totalAmount,
		IsPaid:          false,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type RejectBookingRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type ModifyRoomsRequest struct {
	RoomIDs []string `json:"room_ids" validate:"required,min=1,dive,uuid"`
}

type AvailabilityRequest struct {
	CheckIn  time.Time
	CheckOut time.Time
	RoomIDs  []string
}

type AvailabilityResponse struct {
	Available          bool     `json:"available"`
	ConflictingRoomIDs []string `json:"conflicting_room_ids,omitempty"`
	AvailableRoomIDs   []string `json:"available_room_ids,omitempty"`
}

type RoomAllocationResponse struct {
	RoomID        string  `json:"room_id"`
	RoomNumber    string  `json:"room_number"`
	RoomType      string  `json:"room_type"`
	PricePerNight float64 `json:"price_per_night"`
}

type BookingResponse struct {
	ID                 string                   `json:"id"`
	BookingNumber      string                   `json:"booking_number"`
	GuestName          string                   `json:"guest_name"`
	GuestEmail         string                   `json:"guest_email"`
	GuestPhone         string                   `json:"guest_phone,omitempty"`
	GuestAddress       string                   `json:"guest_address,omitempty"`
	Purpose            string                   `json:"purpose,omitempty"`
	NumberOfGuests     int                      `json:"number_of_guests"`
	Rooms              []RoomAllocationResponse `json:"rooms"`
	CheckInDate        string                   `json:"check_in_date"`
	CheckOutDate       string                   `json:"check_out_date"`
	CheckInTime        string                   `json:"check_in_time"`
	CheckOutTime       string                   `json:"check_out_time"`
	ActualCheckIn      *string                  `json:"actual_check_in,omitempty"`
	ActualCheckOut     *string                  `json:"actual_check_out,omitempty"`
	FoodRequirement    model.FoodRequirement    `json:"food_requirement"`
	HasDocument        bool                     `json:"has_document"`
	DocumentName       *string                  `json:"document_name,omitempty"`
	Status             string                   `json:"status"`
	ApprovedBy         *string                  `json:"approved_by,omitempty"`
	ApprovedAt         *string                  `json:"approved_at,omitempty"`
	RejectionReason    *string                  `json:"rejection_reason,omitempty"`
	CancellationReason *string                  `json:"cancellation_reason,omitempty"`
	TotalAmount        float64                  `json:"total_amount"`
	IsPaid             bool                     `json:"is_paid"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.BookingNumber = mod.BookingNumber
	r.GuestName = mod.GuestName
	r.GuestEmail = mod.GuestEmail
	r.GuestPhone = mod.GuestPhone
	r.GuestAddress = mod.GuestAddress
	r.Purpose = mod.Purpose
	r.NumberOfGuests = mod.NumberOfGuests

	r.Rooms = make([]RoomAllocationResponse, len(mod.Rooms))
	for i, room := range mod.Rooms {
		r.Rooms[i] = RoomAllocationResponse(room)
	}

	r.CheckInDate = mod.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = mod.CheckOutDate.Format(constant.DateOnlyFormat)
	r.CheckInTime = stayTime(mod.CheckInTime)
	r.CheckOutTime = stayTime(mod.CheckOutTime)

	if mod.ActualCheckIn != nil {
		actual := timezone.Format(*mod.ActualCheckIn, constant.DateFormat)
		r.ActualCheckIn = &actual
	}

	if mod.ActualCheckOut != nil {
		actual := timezone.Format(*mod.ActualCheckOut, constant.DateFormat)
		r.ActualCheckOut = &actual
	}

	r.FoodRequirement = mod.FoodRequirement
	r.HasDocument = mod.DocumentKey != nil
	r.DocumentName = mod.DocumentName
	r.Status = mod.Status
	r.ApprovedBy = mod.ApprovedBy

	if mod.ApprovedAt != nil {
		approvedAt := timezone.Format(*mod.ApprovedAt, constant.DateFormat)
		r.ApprovedAt = &approvedAt
	}

	r.RejectionReason = mod.RejectionReason
	r.CancellationReason = mod.CancellationReason
	r.TotalAmount = mod.TotalAmount
	r.IsPaid = mod.IsPaid
	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type PendingCountResponse struct {
	Count int `json:"count"`
}

// DocumentResponse carries a downloaded approval document back to the
// transport layer.
type DocumentResponse struct {
	FileName    string
	ContentType string
	Data        []byte
}
