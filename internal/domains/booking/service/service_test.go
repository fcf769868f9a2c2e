package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hostel/config"
	"hostel/infras/otel/mocks"
	s3Mocks "hostel/infras/s3/mocks"
	bookingMocks "hostel/internal/domains/booking/mocks"
	"hostel/internal/domains/booking/model"
	"hostel/internal/domains/booking/model/dto"
	"hostel/internal/domains/booking/service"
	roomMocks "hostel/internal/domains/room/mocks"
	roomModel "hostel/internal/domains/room/model"
	sequenceMocks "hostel/internal/domains/sequence/mocks"
	cacheMocks "hostel/shared/cache/mocks"
	"hostel/shared/constant"
	gModel "hostel/shared/model"
	"hostel/shared/timezone"
)

type bookingServiceMocks struct {
	repo     *bookingMocks.MockBooking
	roomRepo *roomMocks.MockRoom
	seqRepo  *sequenceMocks.MockSequence
	cache    *cacheMocks.MockRedisCache
	s3       *s3Mocks.MockS3
}

func newBookingService(t *testing.T) (service.Booking, bookingServiceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := bookingServiceMocks{
		repo:     bookingMocks.NewMockBooking(ctrl),
		roomRepo: roomMocks.NewMockRoom(ctrl),
		seqRepo:  sequenceMocks.NewMockSequence(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
	}

	// Cache traffic is incidental to these scenarios; invalidation runs on
	// detached goroutines.
	m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.repo, m.roomRepo, m.seqRepo, cfg, m.cache, mocks.NewOtel(), m.s3)

	return svc, m
}

func actorContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func bookableRooms() []roomModel.Room {
	return []roomModel.Room{
		{ID: "room-1", RoomNumber: "101", RoomType: roomModel.TypeDouble, PricePerNight: 1200, IsAvailable: true},
		{ID: "room-2", RoomNumber: "102", RoomType: roomModel.TypeSingle, PricePerNight: 800, IsAvailable: true},
	}
}

func pendingBooking(createdBy string) model.Booking {
	return model.Booking{
		ID:            "booking-1",
		BookingNumber: "VH-202403-0001",
		GuestName:     "Asha Guest",
		GuestEmail:    "asha@example.com",
		Rooms: model.RoomAllocations{
			{RoomID: "room-1", RoomNumber: "101", RoomType: roomModel.TypeDouble, PricePerNight: 1200},
		},
		CheckInDate:  time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
		Status:       model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}
}

func TestBookingService_Create(t *testing.T) {
	createReq := func() dto.CreateBookingRequest {
		return dto.CreateBookingRequest{
			GuestName:      "Asha Guest",
			GuestEmail:     "asha@example.com",
			NumberOfGuests: 2,
			RoomIDs:        []string{"room-1", "room-2"},
			CheckInDate:    "2024-03-10",
			CheckOutDate:   "2024-03-12",
		}
	}

	t.Run("successful creation", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.roomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(bookableRooms(), nil)

		m.repo.EXPECT().
			FindActiveOverlapping(gomock.Any(), gomock.Any(), gomock.Any(), "").
			Return(nil, nil)

		m.seqRepo.EXPECT().
			Next(gomock.Any(), model.SequenceScope, gomock.Any()).
			Return(7, nil)

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				assert.Equal(t, model.StatusPending, booking.Status)
				assert.Len(t, booking.Rooms, 2)
				assert.InDelta(t, 4000, booking.TotalAmount, 0.001)
				assert.Equal(t, "12:00", booking.CheckInTime)
				assert.Equal(t, "12:00", booking.CheckOutTime)

				return nil
			})

		res, err := svc.Create(actorContext("guest-1", constant.RoleGuest), createReq())

		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(res.BookingNumber, "VH-"))
		assert.True(t, strings.HasSuffix(res.BookingNumber, "-0007"))
		assert.Equal(t, model.StatusPending, res.Status)
	})

	t.Run("caller-supplied stay times are kept", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.roomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(bookableRooms(), nil)

		m.repo.EXPECT().
			FindActiveOverlapping(gomock.Any(), gomock.Any(), gomock.Any(), "").
			Return(nil, nil)

		m.seqRepo.EXPECT().
			Next(gomock.Any(), model.SequenceScope, gomock.Any()).
			Return(8, nil)

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				assert.Equal(t, "14:00", booking.CheckInTime)
				assert.Equal(t, "10:00", booking.CheckOutTime)

				return nil
			})

		req := createReq()
		req.CheckInTime = "14:00"
		req.CheckOutTime = "10:00"

		res, err := svc.Create(actorContext("guest-1", constant.RoleGuest), req)

		assert.NoError(t, err)
		assert.Equal(t, "14:00", res.CheckInTime)
		assert.Equal(t, "10:00", res.CheckOutTime)
	})

	t.Run("inverted date range", func(t *testing.T) {
		svc, _ := newBookingService(t)

		req := createReq()
		req.CheckInDate = "2024-03-12"
		req.CheckOutDate = "2024-03-10"

		_, err := svc.Create(actorContext("guest-1", constant.RoleGuest), req)

		assert.Error(t, err)
	})

	t.Run("unknown room", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.roomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(bookableRooms()[:1], nil)

		_, err := svc.Create(actorContext("guest-1", constant.RoleGuest), createReq())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "room-2")
	})

	t.Run("duplicate room in request", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.roomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(bookableRooms(), nil)

		req := createReq()
		req.RoomIDs = []string{"room-1", "room-1"}

		_, err := svc.Create(actorContext("guest-1", constant.RoleGuest), req)

		assert.Error(t, err)
	})

	t.Run("blocked room is rejected", func(t *testing.T) {
		svc, m := newBookingService(t)

		rooms := bookableRooms()
		rooms[1].IsBlocked = true

		m.roomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(rooms, nil)

		_, err := svc.Create(actorContext("guest-1", constant.RoleGuest), createReq())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "102")
	})

	t.Run("room already held over the window", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.roomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(bookableRooms(), nil)

		holder := pendingBooking("other-guest")
		holder.Status = model.StatusApproved

		m.repo.EXPECT().
			FindActiveOverlapping(gomock.Any(), gomock.Any(), gomock.Any(), "").
			Return([]model.Booking{holder}, nil)

		_, err := svc.Create(actorContext("guest-1", constant.RoleGuest), createReq())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "room-1")
	})

	t.Run("sequence claim error", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.roomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(bookableRooms(), nil)

		m.repo.EXPECT().
			FindActiveOverlapping(gomock.Any(), gomock.Any(), gomock.Any(), "").
			Return(nil, nil)

		m.seqRepo.EXPECT().
			Next(gomock.Any(), model.SequenceScope, gomock.Any()).
			Return(0, errors.New("database error"))

		_, err := svc.Create(actorContext("guest-1", constant.RoleGuest), createReq())

		assert.Error(t, err)
	})
}

func TestBookingService_Get(t *testing.T) {
	t.Run("owner can read own booking", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking("guest-1"), nil)

		res, err := svc.Get(actorContext("guest-1", constant.RoleGuest), "booking-1")

		assert.NoError(t, err)
		assert.Equal(t, "booking-1", res.ID)
	})

	t.Run("other guest is refused", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking("guest-1"), nil)

		_, err := svc.Get(actorContext("guest-2", constant.RoleGuest), "booking-1")

		assert.Error(t, err)
	})

	t.Run("staff can read any booking", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking("guest-1"), nil)

		res, err := svc.Get(actorContext("staff-1", constant.RoleStaff), "booking-1")

		assert.NoError(t, err)
		assert.Equal(t, "booking-1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := svc.Get(actorContext("staff-1", constant.RoleStaff), "missing-id")

		assert.Error(t, err)
	})
}

func TestBookingService_Approve(t *testing.T) {
	t.Run("successful approval", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking("guest-1"), nil)

		m.repo.EXPECT().
			FindActiveOverlapping(gomock.Any(), gomock.Any(), gomock.Any(), "booking-1").
			Return(nil, nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusApproved, fields[model.FieldStatus])
				assert.Equal(t, "staff-1", fields[model.FieldApprovedBy])
				assert.NotNil(t, fields[model.FieldApprovedAt])

				return nil
			})

		err := svc.Approve(actorContext("staff-1", constant.RoleStaff), "booking-1")

		assert.NoError(t, err)
	})

	t.Run("availability lost since placement", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking("guest-1"), nil)

		holder := pendingBooking("other-guest")
		holder.ID = "booking-2"
		holder.Status = model.StatusApproved

		m.repo.EXPECT().
			FindActiveOverlapping(gomock.Any(), gomock.Any(), gomock.Any(), "booking-1").
			Return([]model.Booking{holder}, nil)

		err := svc.Approve(actorContext("staff-1", constant.RoleStaff), "booking-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "room-1")
	})

	t.Run("already approved", func(t *testing.T) {
		svc, m := newBookingService(t)

		booking := pendingBooking("guest-1")
		booking.Status = model.StatusApproved

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		err := svc.Approve(actorContext("staff-1", constant.RoleStaff), "booking-1")

		assert.Error(t, err)
	})
}

func TestBookingService_Cancel(t *testing.T) {
	t.Run("owner cancels own booking", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking("guest-1"), nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])
				assert.Equal(t, "change of plans", fields[model.FieldCancellationReason])

				return nil
			})

		err := svc.Cancel(actorContext("guest-1", constant.RoleGuest), "booking-1", dto.CancelBookingRequest{Reason: "change of plans"})

		assert.NoError(t, err)
	})

	t.Run("staff cannot cancel another guest's booking", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking("guest-1"), nil)

		err := svc.Cancel(actorContext("staff-1", constant.RoleStaff), "booking-1", dto.CancelBookingRequest{})

		assert.Error(t, err)
	})

	t.Run("admin cancels any booking", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking("guest-1"), nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Cancel(actorContext("admin-1", constant.RoleAdmin), "booking-1", dto.CancelBookingRequest{})

		assert.NoError(t, err)
	})

	t.Run("checked-in booking cannot be cancelled", func(t *testing.T) {
		svc, m := newBookingService(t)

		booking := pendingBooking("guest-1")
		booking.Status = model.StatusCheckedIn

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		err := svc.Cancel(actorContext("guest-1", constant.RoleGuest), "booking-1", dto.CancelBookingRequest{})

		assert.Error(t, err)
	})
}

func TestBookingService_CheckInCheckOut(t *testing.T) {
	t.Run("check-in stamps the actual arrival", func(t *testing.T) {
		svc, m := newBookingService(t)

		booking := pendingBooking("guest-1")
		booking.Status = model.StatusApproved

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusCheckedIn, fields[model.FieldStatus])
				assert.NotNil(t, fields[model.FieldActualCheckIn])

				return nil
			})

		err := svc.CheckIn(actorContext("staff-1", constant.RoleStaff), "booking-1")

		assert.NoError(t, err)
	})

	t.Run("check-in requires approval first", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking("guest-1"), nil)

		err := svc.CheckIn(actorContext("staff-1", constant.RoleStaff), "booking-1")

		assert.Error(t, err)
	})

	t.Run("check-out stamps the actual departure", func(t *testing.T) {
		svc, m := newBookingService(t)

		booking := pendingBooking("guest-1")
		booking.Status = model.StatusCheckedIn

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusCheckedOut, fields[model.FieldStatus])
				assert.NotNil(t, fields[model.FieldActualCheckOut])

				return nil
			})

		err := svc.CheckOut(actorContext("staff-1", constant.RoleStaff), "booking-1")

		assert.NoError(t, err)
	})
}

func TestBookingService_ModifyRooms(t *testing.T) {
	t.Run("reallocation recomputes the estimate", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking("guest-1"), nil)

		m.roomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(bookableRooms(), nil)

		m.repo.EXPECT().
			FindActiveOverlapping(gomock.Any(), gomock.Any(), gomock.Any(), "booking-1").
			Return(nil, nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				// Two nights across both rooms.
				assert.InDelta(t, 4000, fields[model.FieldTotalAmount], 0.001)

				return nil
			})

		err := svc.ModifyRooms(actorContext("staff-1", constant.RoleStaff), "booking-1", dto.ModifyRoomsRequest{RoomIDs: []string{"room-1", "room-2"}})

		assert.NoError(t, err)
	})

	t.Run("checked-out booking cannot be modified", func(t *testing.T) {
		svc, m := newBookingService(t)

		booking := pendingBooking("guest-1")
		booking.Status = model.StatusCheckedOut

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		err := svc.ModifyRooms(actorContext("staff-1", constant.RoleStaff), "booking-1", dto.ModifyRoomsRequest{RoomIDs: []string{"room-2"}})

		assert.Error(t, err)
	})
}

func TestBookingService_Availability(t *testing.T) {
	window := dto.AvailabilityRequest{
		CheckIn:  time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
	}

	t.Run("specific rooms with conflict", func(t *testing.T) {
		svc, m := newBookingService(t)

		holder := pendingBooking("other-guest")
		holder.Status = model.StatusApproved

		m.repo.EXPECT().
			FindActiveOverlapping(gomock.Any(), window.CheckIn, window.CheckOut, "").
			Return([]model.Booking{holder}, nil)

		req := window
		req.RoomIDs = []string{"room-1", "room-2"}

		res, err := svc.Availability(context.Background(), req)

		assert.NoError(t, err)
		assert.False(t, res.Available)
		assert.Equal(t, []string{"room-1"}, res.ConflictingRoomIDs)
	})

	t.Run("all rooms mode excludes held and blocked rooms", func(t *testing.T) {
		svc, m := newBookingService(t)

		holder := pendingBooking("other-guest")
		holder.Status = model.StatusApproved

		m.repo.EXPECT().
			FindActiveOverlapping(gomock.Any(), window.CheckIn, window.CheckOut, "").
			Return([]model.Booking{holder}, nil)

		rooms := bookableRooms()
		rooms = append(rooms, roomModel.Room{ID: "room-3", RoomNumber: "103", IsAvailable: true, IsBlocked: true})

		m.roomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(rooms, nil)

		res, err := svc.Availability(context.Background(), window)

		assert.NoError(t, err)
		assert.True(t, res.Available)
		assert.Equal(t, []string{"room-2"}, res.AvailableRoomIDs)
	})
}

func TestBookingService_PendingCount(t *testing.T) {
	svc, m := newBookingService(t)

	m.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(4, nil)

	res, err := svc.PendingCount(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 4, res.Count)
}
