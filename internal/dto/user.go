package dto

import (
	"time"

	"github.com/yukikurage/trip-planner-api/internal/models"
)

// UserDTO is the sanitized user projection. Password material never leaves the server.
type UserDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSummaryDTO is the short form used inside other resources
type UserSummaryDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// AuthResponse is returned on registration
type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// LoginResponse is returned on login; the token travels in the cookie
type LoginResponse struct {
	User UserDTO `json:"user"`
}

// SessionResponse reports whether the caller carries a valid session
type SessionResponse struct {
	IsLoggedIn bool     `json:"isLoggedIn"`
	User       *UserDTO `json:"user,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserSummaryDTO converts a User model to UserSummaryDTO
func ToUserSummaryDTO(user models.User) UserSummaryDTO {
	return UserSummaryDTO{ID: user.ID, Username: user.Username}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, u := range users {
		out[i] = ToUserDTO(u)
	}
	return out
}
