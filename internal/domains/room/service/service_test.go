package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hostel/config"
	"hostel/infras/otel/mocks"
	bookingMocks "hostel/internal/domains/booking/mocks"
	bookingModel "hostel/internal/domains/booking/model"
	roomMocks "hostel/internal/domains/room/mocks"
	"hostel/internal/domains/room/model"
	"hostel/internal/domains/room/model/dto"
	"hostel/internal/domains/room/service"
	cacheMocks "hostel/shared/cache/mocks"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
)

type roomServiceMocks struct {
	repo        *roomMocks.MockRoom
	bookingRepo *bookingMocks.MockBooking
	cache       *cacheMocks.MockRedisCache
}

func newRoomService(t *testing.T) (service.Room, roomServiceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := roomServiceMocks{
		repo:        roomMocks.NewMockRoom(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	// Cache traffic is incidental to these scenarios; invalidation runs on
	// detached goroutines.
	m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.repo, m.bookingRepo, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func sampleRooms() []model.Room {
	return []model.Room{
		{ID: "room-1", RoomNumber: "101", RoomType: model.TypeDouble, Category: model.CategoryAC, PricePerNight: 1200, MaxOccupancy: 2, IsAvailable: true},
		{ID: "room-2", RoomNumber: "102", RoomType: model.TypeSingle, Category: model.CategoryNonAC, PricePerNight: 800, MaxOccupancy: 1, IsAvailable: true},
	}
}

func TestRoomService_Create(t *testing.T) {
	req := dto.CreateRoomRequest{
		RoomNumber:    "101",
		RoomType:      model.TypeDouble,
		Category:      model.CategoryAC,
		PricePerNight: 1200,
		MaxOccupancy:  2,
	}

	t.Run("successful creation", func(t *testing.T) {
		svc, m := newRoomService(t)

		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, room model.Room) error {
				assert.Equal(t, "101", room.RoomNumber)
				assert.True(t, room.IsAvailable)
				assert.Equal(t, "admin-1", room.CreatedBy)

				return nil
			})

		err := svc.Create(adminContext(), req)

		assert.NoError(t, err)
	})

	t.Run("duplicate room number", func(t *testing.T) {
		svc, m := newRoomService(t)

		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := svc.Create(adminContext(), req)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "101")
	})
}

func TestRoomService_GetAll(t *testing.T) {
	params := gDto.QueryParams{Limit: 10, Page: 1}

	t.Run("plain listing", func(t *testing.T) {
		svc, m := newRoomService(t)

		m.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(2, nil)

		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(sampleRooms(), nil)

		res, err := svc.GetAll(context.Background(), params, gDto.FilterGroup{}, nil)

		assert.NoError(t, err)
		assert.Len(t, res.Rooms, 2)
		assert.Equal(t, 2, res.TotalData)
		assert.Nil(t, res.Rooms[0].AvailableForRange)
	})

	t.Run("listing with availability window", func(t *testing.T) {
		svc, m := newRoomService(t)

		window := &dto.AvailabilityWindow{
			CheckIn:  time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
		}

		m.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(2, nil)

		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(sampleRooms(), nil)

		holder := bookingModel.Booking{
			Status: bookingModel.StatusApproved,
			Rooms:  bookingModel.RoomAllocations{{RoomID: "room-1"}},
		}

		m.bookingRepo.EXPECT().
			FindActiveOverlapping(gomock.Any(), window.CheckIn, window.CheckOut, "").
			Return([]bookingModel.Booking{holder}, nil)

		res, err := svc.GetAll(context.Background(), params, gDto.FilterGroup{}, window)

		assert.NoError(t, err)
		assert.Len(t, res.Rooms, 2)
		assert.NotNil(t, res.Rooms[0].AvailableForRange)
		assert.False(t, *res.Rooms[0].AvailableForRange)
		assert.True(t, *res.Rooms[1].AvailableForRange)
	})
}

func TestRoomService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, m := newRoomService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(sampleRooms()[0], nil)

		res, err := svc.Get(context.Background(), "room-1")

		assert.NoError(t, err)
		assert.Equal(t, "room-1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newRoomService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{}, nil)

		_, err := svc.Get(context.Background(), "missing-id")

		assert.Error(t, err)
	})
}

func TestRoomService_Update(t *testing.T) {
	t.Run("empty update request", func(t *testing.T) {
		svc, _ := newRoomService(t)

		err := svc.Update(adminContext(), dto.UpdateRoomRequest{}, "room-1")

		assert.Error(t, err)
	})

	t.Run("successful update", func(t *testing.T) {
		svc, m := newRoomService(t)

		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		price := 1500.0
		err := svc.Update(adminContext(), dto.UpdateRoomRequest{PricePerNight: &price}, "room-1")

		assert.NoError(t, err)
	})

	t.Run("room not found", func(t *testing.T) {
		svc, m := newRoomService(t)

		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		price := 1500.0
		err := svc.Update(adminContext(), dto.UpdateRoomRequest{PricePerNight: &price}, "missing-id")

		assert.Error(t, err)
	})
}

func TestRoomService_BlockUnblock(t *testing.T) {
	t.Run("block stores the reason", func(t *testing.T) {
		svc, m := newRoomService(t)

		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, true, fields[model.FieldIsBlocked])
				assert.Equal(t, "plumbing repair", *fields[model.FieldBlockReason].(*string))

				return nil
			})

		err := svc.Block(adminContext(), "room-1", dto.BlockRoomRequest{Reason: "plumbing repair"})

		assert.NoError(t, err)
	})

	t.Run("unblock clears the reason", func(t *testing.T) {
		svc, m := newRoomService(t)

		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, false, fields[model.FieldIsBlocked])
				assert.Nil(t, fields[model.FieldBlockReason])

				return nil
			})

		err := svc.Unblock(adminContext(), "room-1")

		assert.NoError(t, err)
	})
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		svc, m := newRoomService(t)

		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		m.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Delete(adminContext(), "room-1")

		assert.NoError(t, err)
	})

	t.Run("room not found", func(t *testing.T) {
		svc, m := newRoomService(t)

		m.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Delete(adminContext(), "missing-id")

		assert.Error(t, err)
	})
}
