package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/premialabs/premia/internal/domain/model"
)

// RegisterUserRequest is the input DTO for the RegisterUser use case.
type RegisterUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the input DTO for the AuthenticateUser use case.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is the outward representation of an account.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse carries a fresh session token and its account.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ProfileResponse is the account plus its quote count.
type ProfileResponse struct {
	User       UserResponse `json:"user"`
	QuoteCount int64        `json:"quote_count"`
}

// UpdateProfileRequest is the input DTO for the UpdateUserProfile use case.
// Empty fields are left unchanged.
type UpdateProfileRequest struct {
	UserID          uuid.UUID `json:"-"`
	Email           string    `json:"email"`
	CurrentPassword string    `json:"current_password"`
	NewPassword     string    `json:"new_password"`
}

// UserFromModel maps an account aggregate to the response DTO.
func UserFromModel(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID(),
		Username:  u.Username(),
		Email:     u.Email(),
		IsAdmin:   u.IsAdmin(),
		CreatedAt: u.CreatedAt(),
	}
}
