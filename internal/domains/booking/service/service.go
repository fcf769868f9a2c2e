package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hostel/config"
	"hostel/infras/otel"
	"hostel/infras/s3"
	"hostel/internal/domains/booking/model"
	"hostel/internal/domains/booking/model/dto"
	"hostel/internal/domains/booking/repository"
	roomModel "hostel/internal/domains/room/model"
	roomRepo "hostel/internal/domains/room/repository"
	sequenceRepo "hostel/internal/domains/sequence/repository"
	"hostel/shared"
	"hostel/shared/base64"
	"hostel/shared/cache"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"
	"hostel/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	documentDirectory = "approvals"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string, req dto.RejectBookingRequest) error
	CheckIn(ctx context.Context, id string) error
	CheckOut(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string, req dto.CancelBookingRequest) error
	ModifyRooms(ctx context.Context, id string, req dto.ModifyRoomsRequest) error
	Availability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	PendingCount(ctx context.Context) (dto.PendingCountResponse, error)
	Document(ctx context.Context, id string) (dto.DocumentResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepo.Room
	seqRepo  sequenceRepo.Sequence
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	s3       s3.S3
}

func New(repo repository.Booking, roomRepo roomRepo.Room, seqRepo sequenceRepo.Sequence, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		seqRepo:  seqRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		s3:       s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := model.ActorFromContext(ctx)

	checkIn, checkOut, err := req.DateRange()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) //nolint:wrapcheck
	}

	if err = model.ValidateDateRange(checkIn, checkOut); err != nil {
		return res, err
	}

	rooms, err := s.resolveRooms(ctx, req.RoomIDs)
	if err != nil {
		return res, err
	}

	if err = s.ensureAvailable(ctx, req.RoomIDs, checkIn, checkOut, constant.Empty); err != nil {
		return res, err
	}

	nights := model.Nights(checkIn, checkOut)
	totalAmount := model.RoomTotal(rooms, nights)

	now := timezone.Now()

	seq, err := s.seqRepo.Next(ctx, model.SequenceScope, now)
	if err != nil {
		log.Error().Err(err).Msg("failed to claim booking number")

		return res, fmt.Errorf("failed to claim booking number: %w", err)
	}

	booking := req.ToModel(actor.ID, model.FormatBookingNumber(now, seq), rooms, checkIn, checkOut, totalAmount)

	if req.ApprovalDocument != nil {
		if err = s.uploadDocument(ctx, &booking, req.ApprovalDocument); err != nil {
			return res, err
		}
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.invalidateListings(ctx)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return res, err
	}

	actor := model.ActorFromContext(ctx)
	if err = actor.CanView(&booking); err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Approve(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return err
	}

	if err = model.Transition(booking.Status, model.StatusApproved); err != nil {
		return err
	}

	// Availability may have changed since the booking was placed.
	roomIDs := make([]string, len(booking.Rooms))
	for i, room := range booking.Rooms {
		roomIDs[i] = room.RoomID
	}

	if err = s.ensureAvailable(ctx, roomIDs, booking.CheckInDate, booking.CheckOutDate, booking.ID); err != nil {
		return err
	}

	actor := model.ActorFromContext(ctx)

	return s.updateStatus(ctx, &booking, map[string]any{
		model.FieldStatus:     model.StatusApproved,
		model.FieldApprovedBy: actor.ID,
		model.FieldApprovedAt: timezone.Now(),
	})
}

func (s *serviceImpl) Reject(ctx context.Context, id string, req dto.RejectBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return err
	}

	if err = model.Transition(booking.Status, model.StatusRejected); err != nil {
		return err
	}

	return s.updateStatus(ctx, &booking, map[string]any{
		model.FieldStatus:          model.StatusRejected,
		model.FieldRejectionReason: req.Reason,
	})
}

func (s *serviceImpl) CheckIn(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return err
	}

	if err = model.Transition(booking.Status, model.StatusCheckedIn); err != nil {
		return err
	}

	return s.updateStatus(ctx, &booking, map[string]any{
		model.FieldStatus:        model.StatusCheckedIn,
		model.FieldActualCheckIn: timezone.Now(),
	})
}

func (s *serviceImpl) CheckOut(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return err
	}

	if err = model.Transition(booking.Status, model.StatusCheckedOut); err != nil {
		return err
	}

	return s.updateStatus(ctx, &booking, map[string]any{
		model.FieldStatus:         model.StatusCheckedOut,
		model.FieldActualCheckOut: timezone.Now(),
	})
}

func (s *serviceImpl) Cancel(ctx context.Context, id string, req dto.CancelBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return err
	}

	actor := model.ActorFromContext(ctx)
	if err = actor.CanCancel(&booking); err != nil {
		return err
	}

	if err = model.Transition(booking.Status, model.StatusCancelled); err != nil {
		return err
	}

	updatedFields := map[string]any{
		model.FieldStatus: model.StatusCancelled,
	}

	if req.Reason != constant.Empty {
		updatedFields[model.FieldCancellationReason] = req.Reason
	}

	return s.updateStatus(ctx, &booking, updatedFields)
}

func (s *serviceImpl) ModifyRooms(ctx context.Context, id string, req dto.ModifyRoomsRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ModifyRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status != model.StatusPending && booking.Status != model.StatusApproved {
		return failure.BadRequestFromString(fmt.Sprintf("cannot modify rooms of a booking in status %q", booking.Status)) //nolint:wrapcheck
	}

	rooms, err := s.resolveRooms(ctx, req.RoomIDs)
	if err != nil {
		return err
	}

	if err = s.ensureAvailable(ctx, req.RoomIDs, booking.CheckInDate, booking.CheckOutDate, booking.ID); err != nil {
		return err
	}

	nights := model.Nights(booking.CheckInDate, booking.CheckOutDate)

	return s.updateStatus(ctx, &booking, map[string]any{
		model.FieldRooms:       rooms,
		model.FieldTotalAmount: model.RoomTotal(rooms, nights),
	})
}

func (s *serviceImpl) Availability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = model.ValidateDateRange(req.CheckIn, req.CheckOut); err != nil {
		return res, err
	}

	holders, err := s.repo.FindActiveOverlapping(ctx, req.CheckIn, req.CheckOut, constant.Empty)
	if err != nil {
		log.Error().Err(err).Msg("failed to find overlapping bookings")

		return res, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}

	if len(req.RoomIDs) > 0 {
		conflicts := model.ConflictingRoomIDs(req.RoomIDs, holders)

		res.Available = len(conflicts) == 0
		res.ConflictingRoomIDs = conflicts

		return res, nil
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	held := map[string]struct{}{}
	for i := range holders {
		for roomID := range model.RoomIDSet(holders[i].Rooms) {
			held[roomID] = struct{}{}
		}
	}

	for _, room := range rooms {
		if _, taken := held[room.ID]; taken || !room.Bookable() {
			continue
		}

		res.AvailableRoomIDs = append(res.AvailableRoomIDs, room.ID)
	}

	res.Available = len(res.AvailableRoomIDs) > 0

	return res, nil
}

func (s *serviceImpl) PendingCount(ctx context.Context) (res dto.PendingCountResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PendingCount")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    model.StatusPending,
				Table:    model.TableName,
			},
		},
	}

	count, err := s.Count(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		return res, err
	}

	res.Count = count

	return res, nil
}

func (s *serviceImpl) Document(ctx context.Context, id string) (res dto.DocumentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Document")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.DocumentKey == nil {
		return res, failure.NotFound("booking has no approval document") //nolint:wrapcheck
	}

	data, contentType, err := s.s3.DownloadFile(ctx, s.cfg.External.S3.BucketName, *booking.DocumentKey)
	if err != nil {
		log.Error().Err(err).Msg("failed to download approval document")

		return res, fmt.Errorf("failed to download approval document: %w", err)
	}

	if booking.DocumentType != nil && *booking.DocumentType != constant.Empty {
		contentType = *booking.DocumentType
	}

	res.Data = data
	res.ContentType = contentType

	res.FileName = booking.BookingNumber + "-document"
	if booking.DocumentName != nil {
		res.FileName = *booking.DocumentName
	}

	return res, nil
}

func (s *serviceImpl) uploadDocument(ctx context.Context, booking *model.Booking, doc *dto.ApprovalDocumentRequest) error {
	data, err := base64.Decode(doc.Data)
	if err != nil {
		return failure.BadRequestFromString("approval document is not valid base64") //nolint:wrapcheck
	}

	contentType := base64.GetContentType(doc.Data)
	objectName := fmt.Sprintf("%s-%s", uuid.NewString(), strings.ReplaceAll(doc.FileName, "/", "_"))

	url, err := s.s3.UploadFileBytes(ctx, s.cfg.External.S3.BucketName, documentDirectory, objectName, contentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload approval document")

		return fmt.Errorf("failed to upload approval document: %w", err)
	}

	log.Info().Str("url", url).Msg("approval document uploaded")

	key := path.Join(documentDirectory, objectName)
	booking.DocumentKey = &key
	booking.DocumentName = &doc.FileName
	booking.DocumentType = &contentType

	return nil
}

// resolveRooms loads the requested rooms and snapshots them onto the
// booking, rejecting unknown, blocked or unavailable rooms.
func (s *serviceImpl) resolveRooms(ctx context.Context, roomIDs []string) (model.RoomAllocations, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldID,
				Operator: gDto.FilterOperatorIn,
				Value:    roomIDs,
				Table:    roomModel.TableName,
			},
		},
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	byID := make(map[string]roomModel.Room, len(rooms))
	for _, room := range rooms {
		byID[room.ID] = room
	}

	allocations := make(model.RoomAllocations, 0, len(roomIDs))
	seen := map[string]struct{}{}

	for _, id := range roomIDs {
		if _, dup := seen[id]; dup {
			return nil, failure.BadRequestFromString(fmt.Sprintf("room %s requested more than once", id)) //nolint:wrapcheck
		}

		seen[id] = struct{}{}

		room, ok := byID[id]
		if !ok {
			return nil, failure.BadRequestFromString(fmt.Sprintf("room %s does not exist", id)) //nolint:wrapcheck
		}

		if !room.Bookable() {
			return nil, failure.Conflict(fmt.Sprintf("room %s is not available for booking", room.RoomNumber)) //nolint:wrapcheck
		}

		allocations = append(allocations, model.RoomAllocation{
			RoomID:        room.ID,
			RoomNumber:    room.RoomNumber,
			RoomType:      room.RoomType,
			PricePerNight: room.PricePerNight,
		})
	}

	return allocations, nil
}

// ensureAvailable re-checks the overlap invariant immediately before a
// write. The validate-to-commit window is not transactional, so a narrow
// race remains; approve re-validates to shrink it further.
func (s *serviceImpl) ensureAvailable(ctx context.Context, roomIDs []string, checkIn, checkOut time.Time, excludeID string) error {
	holders, err := s.repo.FindActiveOverlapping(ctx, checkIn, checkOut, excludeID)
	if err != nil {
		log.Error().Err(err).Msg("failed to find overlapping bookings")

		return fmt.Errorf("failed to find overlapping bookings: %w", err)
	}

	if conflicts := model.ConflictingRoomIDs(roomIDs, holders); len(conflicts) > 0 {
		return failure.Conflict(fmt.Sprintf("rooms already booked for the selected dates: %s", strings.Join(conflicts, ", "))) //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) loadBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) updateStatus(ctx context.Context, booking *model.Booking, updatedFields map[string]any) error {
	actor := model.ActorFromContext(ctx)

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = actor.ID

	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidate(ctx, booking.ID)

	return nil
}

func (s *serviceImpl) invalidateListings(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
