package model

import (
	"context"

	"hostel/shared/constant"
	"hostel/shared/failure"
)

// Actor is the authenticated principal an operation runs as.
type Actor struct {
	ID    string
	Email string
	Role  string
}

// ActorFromContext pulls the authenticated principal out of the request
// context populated by the auth middleware.
func ActorFromContext(ctx context.Context) Actor {
	id, _ := ctx.Value(constant.ContextKeyUserID).(string)
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return Actor{ID: id, Email: email, Role: role}
}

// Staff reports whether the actor holds an operational role.
func (a Actor) Staff() bool {
	return a.Role == constant.RoleStaff || a.Role == constant.RoleAdmin
}

// Owns reports whether the actor created the booking.
func (a Actor) Owns(b *Booking) bool {
	return a.ID != "" && a.ID == b.CreatedBy
}

// CanView allows staff and admins to read any booking, guests only their own.
func (a Actor) CanView(b *Booking) error {
	if a.Staff() || a.Owns(b) {
		return nil
	}

	return failure.ResourceRestrictedError
}

// CanCancel allows admins to cancel any booking, guests only their own.
func (a Actor) CanCancel(b *Booking) error {
	if a.Role == constant.RoleAdmin || a.Owns(b) {
		return nil
	}

	return failure.Forbidden("only the booking owner or an admin may cancel a booking") //nolint:wrapcheck
}
