package dto

import (
	"time"

	"github.com/yukikurage/project-management-api/internal/models"
)

// UserFormat selects which projection of a user is returned
type UserFormat string

const (
	UserFormatIndex   UserFormat = "index"
	UserFormatDetails UserFormat = "details"
)

// ParseUserFormat validates a format query value. An empty value selects details.
func ParseUserFormat(s string) (UserFormat, bool) {
	switch UserFormat(s) {
	case "", UserFormatDetails:
		return UserFormatDetails, true
	case UserFormatIndex:
		return UserFormatIndex, true
	default:
		return "", false
	}
}

// UserIndexDTO is the public, minimal view of a user
type UserIndexDTO struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Slug      string `json:"slug"`
}

// UserDetailsDTO is the full view of a user, without the password
type UserDetailsDTO struct {
	ID        uint64    `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Slug      string    `json:"slug"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserSummaryDTO is how owners and participants appear inside a project
type UserSummaryDTO struct {
	ID        uint64 `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Slug      string `json:"slug"`
	Email     string `json:"email"`
}

// AssigneeDTO is how assigned users appear inside a task
type AssigneeDTO struct {
	ID        uint64 `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Slug      string `json:"slug"`
}

// CreateUserRequest is the body of user creation and registration
type CreateUserRequest struct {
	Firstname string `json:"firstname" binding:"required,max=50"`
	Lastname  string `json:"lastname" binding:"required,max=50"`
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,max=72"`
}

// UpdateUserRequest carries the fields to merge into an existing user
type UpdateUserRequest struct {
	Firstname *string `json:"firstname" binding:"omitempty,min=3,max=50"`
	Lastname  *string `json:"lastname" binding:"omitempty,min=3,max=50"`
	Email     *string `json:"email" binding:"omitempty,email,max=255"`
}

// ToUserIndexDTO converts a User model to UserIndexDTO
func ToUserIndexDTO(user models.User) UserIndexDTO {
	return UserIndexDTO{
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Slug:      user.Slug,
	}
}

// ToUserDetailsDTO converts a User model to UserDetailsDTO
func ToUserDetailsDTO(user models.User) UserDetailsDTO {
	return UserDetailsDTO{
		ID:        user.ID,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Slug:      user.Slug,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// FormatUser applies the projection selected by format
func FormatUser(user models.User, format UserFormat) any {
	if format == UserFormatIndex {
		return ToUserIndexDTO(user)
	}
	return ToUserDetailsDTO(user)
}

// ToUserSummaryDTO converts a User model to UserSummaryDTO
func ToUserSummaryDTO(user models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:        user.ID,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Slug:      user.Slug,
		Email:     user.Email,
	}
}

// ToAssigneeDTO converts a User model to AssigneeDTO
func ToAssigneeDTO(user models.User) AssigneeDTO {
	return AssigneeDTO{
		ID:        user.ID,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Slug:      user.Slug,
	}
}

// ToUserDetailsList converts users to their details projection
func ToUserDetailsList(users []models.User) []UserDetailsDTO {
	items := make([]UserDetailsDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDetailsDTO(user)
	}
	return items
}
