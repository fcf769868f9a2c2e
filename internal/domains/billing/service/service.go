package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hostel/config"
	"hostel/infras/otel"
	"hostel/internal/domains/billing/model"
	"hostel/internal/domains/billing/model/dto"
	"hostel/internal/domains/billing/repository"
	bookingModel "hostel/internal/domains/booking/model"
	bookingRepo "hostel/internal/domains/booking/repository"
	sequenceRepo "hostel/internal/domains/sequence/repository"
	"hostel/shared"
	"hostel/shared/cache"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"
	"hostel/shared/timezone"
)

const (
	cacheGetBill    = "bill:get"
	cacheGetAllBill = "bill:gets"
	cacheCountBill  = "bill:count"
)

type Billing interface {
	Generate(ctx context.Context, bookingID string, req dto.GenerateBillRequest) (dto.BillResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBillsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BillResponse, error)
	GetByBooking(ctx context.Context, bookingID string) (dto.BillResponse, error)
	RecordPayment(ctx context.Context, id string, req dto.RecordPaymentRequest) (dto.BillResponse, error)
	InvoicePDF(ctx context.Context, id string) (dto.InvoiceResponse, error)
}

type serviceImpl struct {
	repo        repository.Bill
	bookingRepo bookingRepo.Booking
	seqRepo     sequenceRepo.Sequence
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Bill, bookingRepo bookingRepo.Booking, seqRepo sequenceRepo.Sequence, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Billing {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		seqRepo:     seqRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Generate(ctx context.Context, bookingID string, req dto.GenerateBillRequest) (res dto.BillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Generate")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if booking.Status != bookingModel.StatusCheckedIn && booking.Status != bookingModel.StatusCheckedOut {
		return res, failure.BadRequestFromString(fmt.Sprintf("cannot bill a booking in status %q", booking.Status)) //nolint:wrapcheck
	}

	exists, err := s.repo.Exist(ctx, s.filterByBooking(bookingID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check existing bill")

		return res, fmt.Errorf("failed to check existing bill: %w", err)
	}

	if exists {
		return res, failure.Conflict(fmt.Sprintf("bill already exists for booking %s", booking.BookingNumber)) //nolint:wrapcheck
	}

	// Bill up to the actual check-out when the guest has already left,
	// otherwise the planned one.
	nights := bookingModel.Nights(booking.CheckInDate, booking.EffectiveCheckOut())

	roomCharges, roomSubtotal := model.ComputeRoomCharges(booking.Rooms, nights)
	foodCharges := model.ComputeFoodCharges(booking.FoodRequirement, booking.NumberOfGuests)
	extras, extrasSubtotal := model.NormalizeExtras(req.ExtrasModel())
	totalAmount, grandTotal := model.ComputeTotals(roomSubtotal, foodCharges, extrasSubtotal, req.Tax)

	now := timezone.Now()

	seq, err := s.seqRepo.Next(ctx, model.SequenceScope, now)
	if err != nil {
		log.Error().Err(err).Msg("failed to claim bill number")

		return res, fmt.Errorf("failed to claim bill number: %w", err)
	}

	actor := bookingModel.ActorFromContext(ctx)
	bill := req.ToModel(actor.ID, model.FormatBillNumber(now, seq), booking, nights, roomCharges, roomSubtotal, foodCharges, extras, extrasSubtotal, totalAmount, grandTotal)

	if err = s.repo.Insert(ctx, bill); err != nil {
		log.Error().Err(err).Msg("failed to create bill")

		return res, fmt.Errorf("failed to create bill: %w", err)
	}

	// A fresh bill always starts unpaid, even when the booking row was
	// touched before.
	err = s.bookingRepo.Update(ctx, map[string]any{
		bookingModel.FieldIsPaid: false,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: actor.ID,
	}, shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to reset booking paid flag")

		return res, fmt.Errorf("failed to reset booking paid flag: %w", err)
	}

	s.invalidateListings(ctx)

	res.FromModel(bill)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBillsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBill, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bills")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bills")

		return res, fmt.Errorf("failed to count bills: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bills")

		return res, fmt.Errorf("failed to get bills: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bills to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBill, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bill count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bills")

		return res, fmt.Errorf("failed to count bills: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bill count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBill, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bill")

		return res, nil
	}

	bill, err := s.loadBill(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(bill)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bill to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByBooking(ctx context.Context, bookingID string) (res dto.BillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	bill, err := s.repo.Get(ctx, s.filterByBooking(bookingID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bill")

		return res, fmt.Errorf("failed to get bill: %w", err)
	}

	if bill.ID == constant.Empty {
		return res, failure.NotFound("no bill exists for this booking") //nolint:wrapcheck
	}

	res.FromModel(bill)

	return res, nil
}

func (s *serviceImpl) RecordPayment(ctx context.Context, id string, req dto.RecordPaymentRequest) (res dto.BillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Empty() {
		return res, failure.BadRequestFromString("no payment field provided") //nolint:wrapcheck
	}

	bill, err := s.loadBill(ctx, id)
	if err != nil {
		return res, err
	}

	paidAmount := bill.PaidAmount
	if req.PaidAmount != nil {
		paidAmount = *req.PaidAmount
	}

	status := model.DerivePaymentStatus(paidAmount, bill.GrandTotal, req.PaymentStatus, bill.PaymentStatus)

	actor := bookingModel.ActorFromContext(ctx)
	now := timezone.Now()

	updatedFields := map[string]any{
		model.FieldPaidAmount:    paidAmount,
		model.FieldPaymentStatus: status,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: actor.ID,
	}

	if req.PaymentMethod != nil {
		updatedFields[model.FieldPaymentMethod] = *req.PaymentMethod
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(bill.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update bill")

		return res, fmt.Errorf("failed to update bill: %w", err)
	}

	// Keep the booking's paid flag in step with the bill.
	isPaid := status == model.PaymentStatusPaid
	wasPaid := bill.PaymentStatus == model.PaymentStatusPaid

	if isPaid != wasPaid {
		err = s.bookingRepo.Update(ctx, map[string]any{
			bookingModel.FieldIsPaid: isPaid,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: actor.ID,
		}, shared.FilterByID(bill.BookingID, bookingModel.FieldID, bookingModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to propagate payment to booking")

			return res, fmt.Errorf("failed to propagate payment to booking: %w", err)
		}
	}

	s.invalidate(ctx, bill.ID)

	bill.PaidAmount = paidAmount
	bill.PaymentStatus = status

	if req.PaymentMethod != nil {
		bill.PaymentMethod = req.PaymentMethod
	}

	bill.ModifiedAt = now
	bill.ModifiedBy = actor.ID

	res.FromModel(bill)

	return res, nil
}

func (s *serviceImpl) InvoicePDF(ctx context.Context, id string) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".InvoicePDF")
	defer scope.End()
	defer scope.TraceIfError(err)

	bill, err := s.loadBill(ctx, id)
	if err != nil {
		return res, err
	}

	data, err := s.renderInvoice(bill)
	if err != nil {
		log.Error().Err(err).Msg("failed to render invoice")

		return res, fmt.Errorf("failed to render invoice: %w", err)
	}

	res.FileName = bill.BillNumber + ".pdf"
	res.Data = data

	return res, nil
}

func (s *serviceImpl) loadBill(ctx context.Context, id string) (model.Bill, error) {
	bill, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bill")

		return bill, fmt.Errorf("failed to get bill: %w", err)
	}

	if bill.ID == constant.Empty {
		return bill, failure.NotFound("bill not found") //nolint:wrapcheck
	}

	return bill, nil
}

func (s *serviceImpl) loadBooking(ctx context.Context, id string) (bookingModel.Booking, error) {
	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) filterByBooking(bookingID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingID,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) invalidateListings(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBill)
		shared.InvalidateCaches(c, s.cache, cacheCountBill)
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBill, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete bill from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBill)
		shared.InvalidateCaches(c, s.cache, cacheCountBill)
	}()
}
