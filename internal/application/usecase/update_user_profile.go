package usecase

import (
	"context"
	"fmt"

	"github.com/premialabs/premia/internal/application/dto"
	"github.com/premialabs/premia/internal/auth"
	"github.com/premialabs/premia/internal/domain/port"
	"github.com/premialabs/premia/internal/domain/valueobject"
)

// UpdateUserProfile is the use case for changing email or password.
type UpdateUserProfile struct {
	users port.UserRepository
}

// NewUpdateUserProfile creates a new UpdateUserProfile use case.
func NewUpdateUserProfile(users port.UserRepository) *UpdateUserProfile {
	return &UpdateUserProfile{users: users}
}

// Execute applies the requested changes. Empty fields are left unchanged.
// A password change requires the current password.
func (uc *UpdateUserProfile) Execute(ctx context.Context, req dto.UpdateProfileRequest) (dto.UserResponse, error) {
	user, err := uc.users.FindByID(ctx, req.UserID)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return dto.UserResponse{}, fmt.Errorf("user %s: %w", req.UserID, ErrNotFound)
	}

	if req.Email != "" && req.Email != user.Email() {
		other, err := uc.users.FindByEmail(ctx, req.Email)
		if err != nil {
			return dto.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
		}
		if other != nil && other.ID() != user.ID() {
			return dto.UserResponse{}, ErrEmailTaken
		}
		if err := user.ChangeEmail(req.Email); err != nil {
			return dto.UserResponse{}, err
		}
	}

	if req.NewPassword != "" {
		if !auth.CheckPassword(user.PasswordHash(), req.CurrentPassword) {
			return dto.UserResponse{}, ErrInvalidCredentials
		}
		if len(req.NewPassword) < auth.MinPasswordLength {
			return dto.UserResponse{}, &valueobject.ValidationError{
				Field:  "new_password",
				Reason: fmt.Sprintf("password must be at least %d characters", auth.MinPasswordLength),
			}
		}
		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			return dto.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		if err := user.ChangePasswordHash(hash); err != nil {
			return dto.UserResponse{}, err
		}
	}

	if err := uc.users.Save(ctx, user); err != nil {
		return dto.UserResponse{}, fmt.Errorf("failed to save user: %w", err)
	}

	return dto.UserFromModel(user), nil
}
