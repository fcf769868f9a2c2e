package dto

import (
	"github.com/google/uuid"

	"hostel/internal/domains/billing/model"
	bookingModel "hostel/internal/domains/booking/model"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	gModel "hostel/shared/model"
	"hostel/shared/timezone"
)

type ExtraRequest struct {
	Description string  `json:"description" validate:"required,max=200"`
	Quantity    int     `json:"quantity"    validate:"required,min=1"`
	Rate        float64 `json:"rate"        validate:"required,gte=0"`
}

type GenerateBillRequest struct {
	Extras           []ExtraRequest `json:"extras"             validate:"omitempty,dive"`
	Tax              float64        `json:"tax"                validate:"omitempty,gte=0"`
	SeparateFoodBill bool           `json:"separate_food_bill"`
	Notes            string         `json:"notes"              validate:"omitempty,max=500"`
}

func (g *GenerateBillRequest) ExtrasModel() model.Extras {
	extras := make(model.Extras, len(g.Extras))
	for i, extra := range g.Extras {
		extras[i] = model.Extra{
			Description: extra.Description,
			Quantity:    extra.Quantity,
			Rate:        extra.Rate,
		}
	}

	return extras
}

// ToModel assembles the bill row from the source booking plus the amounts the
// service derived from it.
func (g *GenerateBillRequest) ToModel(user, billNumber string, booking bookingModel.Booking, nights int, roomCharges model.RoomCharges, roomSubtotal float64, foodCharges model.FoodCharges, extras model.Extras, extrasSubtotal, totalAmount, grandTotal float64) model.Bill {
	return model.Bill{
		ID:               uuid.NewString(),
		BillNumber:       billNumber,
		BookingID:        booking.ID,
		BookingNumber:    booking.BookingNumber,
		GuestName:        booking.GuestName,
		GuestEmail:       booking.GuestEmail,
		GuestPhone:       booking.GuestPhone,
		GuestAddress:     booking.GuestAddress,
		CheckInDate:      booking.CheckInDate,
		CheckOutDate:     booking.EffectiveCheckOut(),
		NumberOfNights:   nights,
		RoomCharges:      roomCharges,
		RoomSubtotal:     roomSubtotal,
		FoodCharges:      foodCharges,
		Extras:           extras,
		ExtrasSubtotal:   extrasSubtotal,
		TotalAmount:      totalAmount,
		Tax:              g.Tax,
		GrandTotal:       grandTotal,
		PaymentStatus:    model.PaymentStatusPending,
		PaidAmount:       0,
		SeparateFoodBill: g.SeparateFoodBill,
		Notes:            g.Notes,
		GeneratedBy:      user,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type RecordPaymentRequest struct {
	PaidAmount    *float64 `json:"paid_amount"    validate:"omitempty,gte=0"`
	PaymentMethod *string  `json:"payment_method" validate:"omitempty,oneof=Cash Card UPI Bank-Transfer"`
	PaymentStatus string   `json:"payment_status" validate:"omitempty,oneof=Pending Partial Paid"`
}

// Empty reports whether the update carries no field at all.
func (r *RecordPaymentRequest) Empty() bool {
	return r.PaidAmount == nil && r.PaymentMethod == nil && r.PaymentStatus == ""
}

type ExtraResponse struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Rate        float64 `json:"rate"`
	Total       float64 `json:"total"`
}

type RoomChargeResponse struct {
	RoomNumber    string  `json:"room_number"`
	RoomType      string  `json:"room_type"`
	PricePerNight float64 `json:"price_per_night"`
	Nights        int     `json:"nights"`
	Total         float64 `json:"total"`
}

type BillResponse struct {
	ID               string               `json:"id"`
	BillNumber       string               `json:"bill_number"`
	BookingID        string               `json:"booking_id"`
	BookingNumber    string               `json:"booking_number"`
	GuestName        string               `json:"guest_name"`
	GuestEmail       string               `json:"guest_email"`
	GuestPhone       string               `json:"guest_phone,omitempty"`
	GuestAddress     string               `json:"guest_address,omitempty"`
	CheckInDate      string               `json:"check_in_date"`
	CheckOutDate     string               `json:"check_out_date"`
	NumberOfNights   int                  `json:"number_of_nights"`
	RoomCharges      []RoomChargeResponse `json:"room_charges"`
	RoomSubtotal     float64              `json:"room_subtotal"`
	FoodCharges      model.FoodCharges    `json:"food_charges"`
	Extras           []ExtraResponse      `json:"extras"`
	ExtrasSubtotal   float64              `json:"extras_subtotal"`
	TotalAmount      float64              `json:"total_amount"`
	Tax              float64              `json:"tax"`
	GrandTotal       float64              `json:"grand_total"`
	PaymentStatus    string               `json:"payment_status"`
	PaidAmount       float64              `json:"paid_amount"`
	PaymentMethod    *string              `json:"payment_method,omitempty"`
	SeparateFoodBill bool                 `json:"separate_food_bill"`
	Notes            string               `json:"notes,omitempty"`
	GeneratedBy      string               `json:"generated_by"`
	gDto.Metadata
}

func (r *BillResponse) FromModel(mod model.Bill) {
	r.ID = mod.ID
	r.BillNumber = mod.BillNumber
	r.BookingID = mod.BookingID
	r.BookingNumber = mod.BookingNumber
	r.GuestName = mod.GuestName
	r.GuestEmail = mod.GuestEmail
	r.GuestPhone = mod.GuestPhone
	r.GuestAddress = mod.GuestAddress
	r.CheckInDate = mod.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = mod.CheckOutDate.Format(constant.DateOnlyFormat)
	r.NumberOfNights = mod.NumberOfNights

	r.RoomCharges = make([]RoomChargeResponse, len(mod.RoomCharges))
	for i, charge := range mod.RoomCharges {
		r.RoomCharges[i] = RoomChargeResponse(charge)
	}

	r.RoomSubtotal = mod.RoomSubtotal
	r.FoodCharges = mod.FoodCharges

	r.Extras = make([]ExtraResponse, len(mod.Extras))
	for i, extra := range mod.Extras {
		r.Extras[i] = ExtraResponse(extra)
	}

	r.ExtrasSubtotal = mod.ExtrasSubtotal
	r.TotalAmount = mod.TotalAmount
	r.Tax = mod.Tax
	r.GrandTotal = mod.GrandTotal
	r.PaymentStatus = mod.PaymentStatus
	r.PaidAmount = mod.PaidAmount
	r.PaymentMethod = mod.PaymentMethod
	r.SeparateFoodBill = mod.SeparateFoodBill
	r.Notes = mod.Notes
	r.GeneratedBy = mod.GeneratedBy
	r.Metadata.FromModel(mod.Metadata)
}

type GetBillsResponse struct {
	Bills     []BillResponse `json:"bills"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetBillsResponse) FromModels(models []model.Bill, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bills = make([]BillResponse, len(models))
	for i, mod := range models {
		r.Bills[i].FromModel(mod)
	}
}

// InvoiceResponse carries a rendered invoice PDF back to the transport layer.
type InvoiceResponse struct {
	FileName string
	Data     []byte
}
