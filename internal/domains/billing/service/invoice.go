package service

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"hostel/internal/domains/billing/model"
	"hostel/shared/constant"
)

const (
	invoicePageLeft  = 15.0
	invoicePageRight = 195.0
)

// renderInvoice lays out a single-page A4 invoice for the bill. Amounts are
// printed with the Rs. prefix since the core PDF fonts lack the rupee glyph.
func (s *serviceImpl) renderInvoice(bill model.Bill) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(invoicePageLeft, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, s.cfg.Hostel.Name)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)

	if s.cfg.Hostel.AddressLine1 != constant.Empty {
		pdf.Cell(0, 6, s.cfg.Hostel.AddressLine1)
		pdf.Ln(5)
	}

	if s.cfg.Hostel.AddressLine2 != constant.Empty {
		pdf.Cell(0, 6, s.cfg.Hostel.AddressLine2)
		pdf.Ln(5)
	}

	pdf.Ln(3)
	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(invoicePageLeft, pdf.GetY(), invoicePageRight, pdf.GetY())
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("INVOICE %s", bill.BillNumber))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Booking: %s", bill.BookingNumber))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Guest: %s", bill.GuestName))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Email: %s", bill.GuestEmail))
	pdf.Ln(5)

	if bill.GuestPhone != constant.Empty {
		pdf.Cell(0, 6, fmt.Sprintf("Phone: %s", bill.GuestPhone))
		pdf.Ln(5)
	}

	if bill.GuestAddress != constant.Empty {
		pdf.Cell(0, 6, fmt.Sprintf("Address: %s", bill.GuestAddress))
		pdf.Ln(5)
	}

	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", bill.CreatedAt.Format(constant.DateOnlyFormat)))
	pdf.Ln(8)

	s.renderStay(pdf, bill)
	s.renderRoomCharges(pdf, bill)

	if bill.FoodCharges.Subtotal > 0 {
		s.renderFoodCharges(pdf, bill)
	}

	if len(bill.Extras) > 0 {
		s.renderExtras(pdf, bill)
	}

	s.renderTotals(pdf, bill)

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "This is a computer generated invoice and does not require a signature.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf output: %w", err)
	}

	return buf.Bytes(), nil
}

// renderStay prints the boxed stay window the bill was computed over.
func (s *serviceImpl) renderStay(pdf *gofpdf.Fpdf, bill model.Bill) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetFillColor(248, 248, 248)
	pdf.CellFormat(60, 8, fmt.Sprintf("Check-In: %s", bill.CheckInDate.Format(constant.DateOnlyFormat)), "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 8, fmt.Sprintf("Check-Out: %s", bill.CheckOutDate.Format(constant.DateOnlyFormat)), "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 8, fmt.Sprintf("Nights: %d", bill.NumberOfNights), "1", 1, "L", true, 0, "")
	pdf.Ln(6)
}

func (s *serviceImpl) renderRoomCharges(pdf *gofpdf.Fpdf, bill model.Bill) {
	invoiceSectionTitle(pdf, "ROOM CHARGES")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(30, 7, "Room", "B", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Type", "B", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Rate/Night", "B", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Nights", "B", 0, "R", false, 0, "")
	pdf.CellFormat(55, 7, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)

	for _, charge := range bill.RoomCharges {
		pdf.CellFormat(30, 7, charge.RoomNumber, "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, charge.RoomType, "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, formatAmount(charge.PricePerNight), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", charge.Nights), "", 0, "R", false, 0, "")
		pdf.CellFormat(55, 7, formatAmount(charge.Total), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(125, 7, "Room Subtotal", "T", 0, "R", false, 0, "")
	pdf.CellFormat(55, 7, formatAmount(bill.RoomSubtotal), "T", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func (s *serviceImpl) renderFoodCharges(pdf *gofpdf.Fpdf, bill model.Bill) {
	title := "FOOD CHARGES"
	if bill.SeparateFoodBill {
		title = "FOOD CHARGES (BILLED SEPARATELY)"
	}

	invoiceSectionTitle(pdf, title)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(35, 7, "Date", "B", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Breakfast", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Lunch", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Dinner", "B", 0, "R", false, 0, "")
	pdf.CellFormat(55, 7, "Day Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)

	for _, item := range bill.FoodCharges.Items {
		pdf.CellFormat(35, 7, item.Date.Format(constant.DateOnlyFormat), "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, formatMealAmount(item.Breakfast), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, formatMealAmount(item.Lunch), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, formatMealAmount(item.Dinner), "", 0, "R", false, 0, "")
		pdf.CellFormat(55, 7, formatAmount(item.DayTotal), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(125, 7, "Food Subtotal", "T", 0, "R", false, 0, "")
	pdf.CellFormat(55, 7, formatAmount(bill.FoodCharges.Subtotal), "T", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func (s *serviceImpl) renderExtras(pdf *gofpdf.Fpdf, bill model.Bill) {
	invoiceSectionTitle(pdf, "ADDITIONAL CHARGES")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(80, 7, "Description", "B", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Rate", "B", 0, "R", false, 0, "")
	pdf.CellFormat(55, 7, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)

	for _, extra := range bill.Extras {
		pdf.CellFormat(80, 7, extra.Description, "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", extra.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, formatAmount(extra.Rate), "", 0, "R", false, 0, "")
		pdf.CellFormat(55, 7, formatAmount(extra.Total), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(125, 7, "Additional Subtotal", "T", 0, "R", false, 0, "")
	pdf.CellFormat(55, 7, formatAmount(bill.ExtrasSubtotal), "T", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func (s *serviceImpl) renderTotals(pdf *gofpdf.Fpdf, bill model.Bill) {
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(125, 7, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(55, 7, formatAmount(bill.TotalAmount), "", 1, "R", false, 0, "")

	if bill.Tax > 0 {
		pdf.CellFormat(125, 7, "Tax", "", 0, "R", false, 0, "")
		pdf.CellFormat(55, 7, formatAmount(bill.Tax), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(125, 9, "GRAND TOTAL", "T", 0, "R", false, 0, "")
	pdf.CellFormat(55, 9, formatAmount(bill.GrandTotal), "T", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(125, 7, "Amount Paid", "", 0, "R", false, 0, "")
	pdf.CellFormat(55, 7, formatAmount(bill.PaidAmount), "", 1, "R", false, 0, "")
	pdf.CellFormat(125, 7, "Payment Status", "", 0, "R", false, 0, "")
	pdf.CellFormat(55, 7, bill.PaymentStatus, "", 1, "R", false, 0, "")

	if bill.Notes != constant.Empty {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, fmt.Sprintf("Notes: %s", bill.Notes), "", "L", false)
	}
}

func invoiceSectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(0, 8, title, "", 1, "L", true, 0, "")
	pdf.Ln(2)
}

func formatAmount(amount float64) string {
	return fmt.Sprintf("Rs. %.2f", amount)
}

// formatMealAmount leaves a dash for meals the day did not include.
func formatMealAmount(amount float64) string {
	if amount == 0 {
		return "-"
	}

	return formatAmount(amount)
}
