package model_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"hostel/internal/domains/booking/model"
	"hostel/shared/constant"
	gModel "hostel/shared/model"
)

func ownedBy(userID string) *model.Booking {
	return &model.Booking{
		ID:       "booking-1",
		Metadata: gModel.Metadata{CreatedBy: userID},
	}
}

func TestActorFromContext(t *testing.T) {
	ctx := context.Background()
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, "user-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, "user@example.com")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleStaff)

	actor := model.ActorFromContext(ctx)

	assert.Equal(t, "user-1", actor.ID)
	assert.Equal(t, "user@example.com", actor.Email)
	assert.Equal(t, constant.RoleStaff, actor.Role)
}

func TestActor_Staff(t *testing.T) {
	assert.True(t, model.Actor{Role: constant.RoleStaff}.Staff())
	assert.True(t, model.Actor{Role: constant.RoleAdmin}.Staff())
	assert.False(t, model.Actor{Role: constant.RoleGuest}.Staff())
}

func TestActor_CanView(t *testing.T) {
	booking := ownedBy("guest-1")

	tests := []struct {
		name    string
		actor   model.Actor
		wantErr bool
	}{
		{"owner can view", model.Actor{ID: "guest-1", Role: constant.RoleGuest}, false},
		{"staff can view any", model.Actor{ID: "staff-1", Role: constant.RoleStaff}, false},
		{"admin can view any", model.Actor{ID: "admin-1", Role: constant.RoleAdmin}, false},
		{"other guest cannot view", model.Actor{ID: "guest-2", Role: constant.RoleGuest}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.actor.CanView(booking)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestActor_CanCancel(t *testing.T) {
	booking := ownedBy("guest-1")

	tests := []struct {
		name    string
		actor   model.Actor
		wantErr bool
	}{
		{"owner can cancel", model.Actor{ID: "guest-1", Role: constant.RoleGuest}, false},
		{"admin can cancel any", model.Actor{ID: "admin-1", Role: constant.RoleAdmin}, false},
		{"staff cannot cancel others", model.Actor{ID: "staff-1", Role: constant.RoleStaff}, true},
		{"other guest cannot cancel", model.Actor{ID: "guest-2", Role: constant.RoleGuest}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.actor.CanCancel(booking)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
