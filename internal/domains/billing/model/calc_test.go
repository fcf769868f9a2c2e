package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hostel/internal/domains/billing/model"
	bookingModel "hostel/internal/domains/booking/model"
)

func TestFormatBillNumber(t *testing.T) {
	march := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "INV-202403-0005", model.FormatBillNumber(march, 5))
	assert.Equal(t, "INV-202403-1234", model.FormatBillNumber(march, 1234))
}

func TestComputeRoomCharges(t *testing.T) {
	rooms := bookingModel.RoomAllocations{
		{RoomID: "r1", RoomNumber: "101", RoomType: "AC", PricePerNight: 1200},
		{RoomID: "r2", RoomNumber: "102", RoomType: "Non-AC", PricePerNight: 800},
	}

	charges, subtotal := model.ComputeRoomCharges(rooms, 3)

	assert.Len(t, charges, 2)
	assert.Equal(t, "101", charges[0].RoomNumber)
	assert.Equal(t, 3, charges[0].Nights)
	assert.InDelta(t, 3600, charges[0].Total, 0.001)
	assert.InDelta(t, 2400, charges[1].Total, 0.001)
	assert.InDelta(t, 6000, subtotal, 0.001)
}

func TestComputeRoomCharges_Empty(t *testing.T) {
	charges, subtotal := model.ComputeRoomCharges(nil, 2)

	assert.Empty(t, charges)
	assert.InDelta(t, 0, subtotal, 0.001)
}

func TestComputeFoodCharges(t *testing.T) {
	day1 := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		req    bookingModel.FoodRequirement
		guests int
		want   model.FoodCharges
	}{
		{
			name: "one day with breakfast and lunch",
			req: bookingModel.FoodRequirement{
				Required:     true,
				NumberOfDays: 1,
				Meals:        []bookingModel.MealDay{{Date: day1, Breakfast: true, Lunch: true}},
			},
			guests: 2,
			want: model.FoodCharges{
				Items:    []model.FoodChargeItem{{Date: day1, Breakfast: 300, Lunch: 500, DayTotal: 800}},
				Subtotal: 800,
			},
		},
		{
			name: "meals vary per day",
			req: bookingModel.FoodRequirement{
				Required:     true,
				NumberOfDays: 2,
				Meals: []bookingModel.MealDay{
					{Date: day1, Breakfast: true, Lunch: true, Dinner: true},
					{Date: day2, Dinner: true},
				},
			},
			guests: 3,
			want: model.FoodCharges{
				Items: []model.FoodChargeItem{
					{Date: day1, Breakfast: 450, Lunch: 750, Dinner: 750, DayTotal: 1950},
					{Date: day2, Dinner: 750, DayTotal: 750},
				},
				Subtotal: 2700,
			},
		},
		{
			name: "day without any meal is dropped",
			req: bookingModel.FoodRequirement{
				Meals: []bookingModel.MealDay{
					{Date: day1},
					{Date: day2, Breakfast: true},
				},
			},
			guests: 1,
			want: model.FoodCharges{
				Items:    []model.FoodChargeItem{{Date: day2, Breakfast: 150, DayTotal: 150}},
				Subtotal: 150,
			},
		},
		{
			name:   "no meals",
			req:    bookingModel.FoodRequirement{},
			guests: 2,
			want:   model.FoodCharges{Items: []model.FoodChargeItem{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.ComputeFoodCharges(tt.req, tt.guests))
		})
	}
}

func TestNormalizeExtras(t *testing.T) {
	extras := model.Extras{
		{Description: "Laundry", Quantity: 3, Rate: 50, Total: 9999}, // client-supplied total ignored
		{Description: "Extra bed", Quantity: 1, Rate: 400},
	}

	normalized, subtotal := model.NormalizeExtras(extras)

	assert.InDelta(t, 150, normalized[0].Total, 0.001)
	assert.InDelta(t, 400, normalized[1].Total, 0.001)
	assert.InDelta(t, 550, subtotal, 0.001)
}

func TestComputeTotals(t *testing.T) {
	food := model.FoodCharges{Subtotal: 3900}

	totalAmount, grandTotal := model.ComputeTotals(6000, food, 550, 100)
	assert.InDelta(t, 10450, totalAmount, 0.001)
	assert.InDelta(t, 10550, grandTotal, 0.001)

	totalAmount, grandTotal = model.ComputeTotals(0, model.FoodCharges{}, 0, 0)
	assert.InDelta(t, 0, totalAmount, 0.001)
	assert.InDelta(t, 0, grandTotal, 0.001)
}

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name       string
		paidAmount float64
		grandTotal float64
		explicit   string
		current    string
		want       string
	}{
		{"fully paid overrides explicit", 5000, 5000, model.PaymentStatusPending, model.PaymentStatusPending, model.PaymentStatusPaid},
		{"overpaid is still paid", 6000, 5000, "", model.PaymentStatusPending, model.PaymentStatusPaid},
		{"partial overrides explicit", 2500, 5000, model.PaymentStatusPaid, model.PaymentStatusPending, model.PaymentStatusPartial},
		{"explicit stands when nothing paid", 0, 5000, model.PaymentStatusPending, model.PaymentStatusPartial, model.PaymentStatusPending},
		{"current stands without explicit", 0, 5000, "", model.PaymentStatusPending, model.PaymentStatusPending},
		{"zero total is already covered", 0, 0, model.PaymentStatusPending, "", model.PaymentStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.DerivePaymentStatus(tt.paidAmount, tt.grandTotal, tt.explicit, tt.current))
		})
	}
}
