package billing

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hostel/infras/otel"
	"hostel/internal/domains/billing/model"
	"hostel/internal/domains/billing/model/dto"
	"hostel/internal/domains/billing/service"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/validator"
	"hostel/transport/http/response"
)

type Handler struct {
	service service.Billing
	otel    otel.Otel
}

func New(service service.Billing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bills", func(routerGroup chi.Router) {
		routerGroup.Post("/generate/{bookingId}", handler.GenerateBill)
		routerGroup.Get("/", handler.GetBills)
		routerGroup.Get("/booking/{bookingId}", handler.GetBillByBooking)
		routerGroup.Get("/{id}", handler.GetBillByID)
		routerGroup.Put("/{id}/payment", handler.RecordPayment)
		routerGroup.Get("/{id}/pdf", handler.DownloadInvoice)
	})
}

// GenerateBill creates the bill for a booking.
// @Summary Generate a bill
// @Description Generate the bill for a checked-in or checked-out booking, itemizing room, food and extra charges. A booking can only be billed once.
// @Tags Billing
// @Accept json
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Param request body dto.GenerateBillRequest true "Generate Bill Request"
// @Success 201 {object} response.Data[dto.BillResponse] "Generated bill"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bills/generate/{bookingId} [post]
// @Security BearerAuth
func (handler *Handler) GenerateBill(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GenerateBill")
	defer scope.End()

	bookingID := chi.URLParam(request, constant.RequestParamBookingID)

	req := dto.GenerateBillRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	bill, err := handler.service.Generate(ctx, bookingID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to generate bill")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Bill " + bill.BillNumber + " generated successfully")

	response.WithJSON(writer, http.StatusCreated, bill)
}

// GetBills retrieves all bills based on query parameters.
// @Summary Get all bills
// @Description Retrieve all bills with optional filtering and pagination.
// @Tags Billing
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param payment_status query string false "Filter by payment status (Pending, Partial, Paid)"
// @Param guest_email query string false "Filter by guest email"
// @Success 200 {object} response.Data[dto.GetBillsResponse] "List of bills"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bills [get]
// @Security BearerAuth
func (handler *Handler) GetBills(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBills")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if paymentStatus := r.URL.Query().Get(model.FieldPaymentStatus); paymentStatus != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPaymentStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    paymentStatus,
			Table:    model.TableName,
		})
	}

	if guestEmail := r.URL.Query().Get(model.FieldGuestEmail); guestEmail != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldGuestEmail,
			Operator: gDto.FilterOperatorEq,
			Value:    guestEmail,
			Table:    model.TableName,
		})
	}

	bills, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bills")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bills retrieved successfully")

	response.WithJSON(w, http.StatusOK, bills)
}

// GetBillByBooking retrieves the bill generated for a booking.
// @Summary Get a bill by booking
// @Description Retrieve the bill generated for the given booking, if any.
// @Tags Billing
// @Accept json
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BillResponse] "Bill details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bills/booking/{bookingId} [get]
// @Security BearerAuth
func (handler *Handler) GetBillByBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBillByBooking")
	defer scope.End()

	bookingID := chi.URLParam(r, constant.RequestParamBookingID)

	bill, err := handler.service.GetByBooking(ctx, bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bill by booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bill retrieved successfully")

	response.WithJSON(w, http.StatusOK, bill)
}

// GetBillByID retrieves a bill by its ID.
// @Summary Get a bill by ID
// @Description Retrieve a bill by its unique identifier.
// @Tags Billing
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} response.Data[dto.BillResponse] "Bill details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bills/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBillByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBillByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	bill, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bill by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bill retrieved successfully")

	response.WithJSON(w, http.StatusOK, bill)
}

// RecordPayment updates the payment state of a bill.
// @Summary Record a payment
// @Description Record a payment against a bill. The payment status is derived from the paid amount; a fully paid bill marks its booking as paid.
// @Tags Billing
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param request body dto.RecordPaymentRequest true "Record Payment Request"
// @Success 200 {object} response.Data[dto.BillResponse] "Updated bill"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bills/{id}/payment [put]
// @Security BearerAuth
func (handler *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecordPayment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.RecordPaymentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	bill, err := handler.service.RecordPayment(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to record payment")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Payment recorded successfully by user " + user)

	response.WithJSON(w, http.StatusOK, bill)
}

// DownloadInvoice streams the bill as a PDF invoice.
// @Summary Download invoice PDF
// @Description Render the bill as a printable PDF invoice.
// @Tags Billing
// @Produce application/pdf
// @Param id path string true "Bill ID"
// @Success 200 {file} binary "Invoice PDF"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bills/{id}/pdf [get]
// @Security BearerAuth
func (handler *Handler) DownloadInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DownloadInvoice")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	invoice, err := handler.service.InvoicePDF(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to render invoice")

		response.WithError(w, err)

		return
	}

	w.Header().Set(constant.RequestHeaderContentType, constant.ContentTypePDF)
	w.Header().Set(constant.RequestHeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", invoice.FileName))
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(invoice.Data); err != nil {
		log.Error().Err(err).Msg("failed to write invoice response")
	}
}
