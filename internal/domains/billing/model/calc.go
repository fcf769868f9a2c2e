package model

import (
	"fmt"
	"time"

	bookingModel "hostel/internal/domains/booking/model"
	"hostel/shared/constant"
)

// Per-person meal rates, charged for each day the meal was requested.
const (
	MealRateBreakfast = 150.0
	MealRateLunch     = 250.0
	MealRateDinner    = 250.0
)

// FormatBillNumber renders a month-scoped invoice identifier, e.g.
// INV-202403-0005 for the fifth bill of March 2024.
func FormatBillNumber(t time.Time, seq int) string {
	return fmt.Sprintf("INV-%s-%04d", t.Format(constant.YearMonthKey), seq)
}

// ComputeRoomCharges itemizes each allocated room over the billed night
// count, using the prices snapshotted on the booking.
func ComputeRoomCharges(rooms bookingModel.RoomAllocations, nights int) (RoomCharges, float64) {
	charges := make(RoomCharges, 0, len(rooms))

	var subtotal float64

	for _, room := range rooms {
		total := room.PricePerNight * float64(nights)

		charges = append(charges, RoomCharge{
			RoomNumber:    room.RoomNumber,
			RoomType:      room.RoomType,
			PricePerNight: room.PricePerNight,
			Nights:        nights,
			Total:         total,
		})

		subtotal += total
	}

	return charges, subtotal
}

// ComputeFoodCharges prices the per-day meal plan: each meal the guest opted
// into on a given day costs its rate times the guest count, and DayTotal sums
// the day's meals. Days with nothing selected produce no line.
func ComputeFoodCharges(req bookingModel.FoodRequirement, guests int) FoodCharges {
	headcount := float64(guests)
	charges := FoodCharges{Items: make([]FoodChargeItem, 0, len(req.Meals))}

	for _, day := range req.Meals {
		item := FoodChargeItem{Date: day.Date}

		if day.Breakfast {
			item.Breakfast = MealRateBreakfast * headcount
		}

		if day.Lunch {
			item.Lunch = MealRateLunch * headcount
		}

		if day.Dinner {
			item.Dinner = MealRateDinner * headcount
		}

		item.DayTotal = item.Breakfast + item.Lunch + item.Dinner
		if item.DayTotal == 0 {
			continue
		}

		charges.Items = append(charges.Items, item)
		charges.Subtotal += item.DayTotal
	}

	return charges
}

// NormalizeExtras recomputes each line total as quantity × rate, ignoring
// any client-supplied total, and returns the subtotal.
func NormalizeExtras(extras Extras) (Extras, float64) {
	normalized := make(Extras, 0, len(extras))

	var subtotal float64

	for _, extra := range extras {
		extra.Total = float64(extra.Quantity) * extra.Rate
		normalized = append(normalized, extra)
		subtotal += extra.Total
	}

	return normalized, subtotal
}

// ComputeTotals sums the charge groups: the pre-tax total first, then the
// grand total with tax on top. Tax is carried as an explicit component so a
// future rate change stays a one-line edit.
func ComputeTotals(roomSubtotal float64, food FoodCharges, extrasSubtotal, tax float64) (totalAmount, grandTotal float64) {
	totalAmount = roomSubtotal + food.Subtotal + extrasSubtotal

	return totalAmount, totalAmount + tax
}

// DerivePaymentStatus resolves the stored payment status from the amounts:
// a fully covered bill is Paid and a partially covered one is Partial no
// matter what the caller sent; otherwise the explicit status (or the current
// one when the caller sent none) stands.
func DerivePaymentStatus(paidAmount, grandTotal float64, explicit, current string) string {
	switch {
	case paidAmount >= grandTotal:
		return PaymentStatusPaid
	case paidAmount > 0 && paidAmount < grandTotal:
		return PaymentStatusPartial
	case explicit != "":
		return explicit
	default:
		return current
	}
}
