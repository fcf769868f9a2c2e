package dto

import (
	"github.com/google/uuid"

	"hostel/internal/domains/user/model"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	gModel "hostel/shared/model"
	"hostel/shared/timezone"
)

type CreateUserRequest struct {
	Name     string  `json:"name"     validate:"required,max=100"`
	Email    string  `json:"email"    validate:"required,email,max=100"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role"     validate:"omitempty,oneof=guest staff admin"`
	Phone    *string `json:"phone,omitempty"   validate:"omitempty,max=20"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=200"`
}

func (r *CreateUserRequest) ToModel(user string, hashedPassword string) model.User {
	role := r.Role
	if role == constant.Empty {
		role = constant.RoleGuest
	}

	return model.User{
		ID:       uuid.NewString(),
		Name:     r.Name,
		Email:    r.Email,
		Password: hashedPassword,
		Role:     role,
		Phone:    r.Phone,
		Address:  r.Address,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UserResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	LastLogin *string `json:"last_login,omitempty"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Role = model.Role
	r.Phone = model.Phone
	r.Address = model.Address

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type UpdateUserRequest struct {
	Name    *string `db:"name"    json:"name,omitempty"    validate:"omitempty,max=100"`
	Role    *string `db:"role"    json:"role,omitempty"    validate:"omitempty,oneof=guest staff admin"`
	Phone   *string `db:"phone"   json:"phone,omitempty"   validate:"omitempty,max=20"`
	Address *string `db:"address" json:"address,omitempty" validate:"omitempty,max=200"`
	Active  *bool   `db:"active"  json:"active,omitempty"`
}

// Empty reports whether the update carries no field at all.
func (u *UpdateUserRequest) Empty() bool {
	return u.Name == nil && u.Role == nil && u.Phone == nil && u.Address == nil && u.Active == nil
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
