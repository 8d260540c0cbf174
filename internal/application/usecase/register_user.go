package usecase

import (
	"context"
	"fmt"

	"github.com/premialabs/premia/internal/application/dto"
	"github.com/premialabs/premia/internal/auth"
	"github.com/premialabs/premia/internal/domain/model"
	"github.com/premialabs/premia/internal/domain/port"
	"github.com/premialabs/premia/internal/domain/valueobject"
)

// RegisterUser is the use case for creating a customer account.
type RegisterUser struct {
	users     port.UserRepository
	publisher port.EventPublisher
}

// NewRegisterUser creates a new RegisterUser use case.
func NewRegisterUser(users port.UserRepository, publisher port.EventPublisher) *RegisterUser {
	return &RegisterUser{
		users:     users,
		publisher: publisher,
	}
}

// Execute validates the registration, persists the account, and publishes events.
func (uc *RegisterUser) Execute(ctx context.Context, req dto.RegisterUserRequest) (dto.UserResponse, error) {
	if len(req.Password) < auth.MinPasswordLength {
		return dto.UserResponse{}, &valueobject.ValidationError{
			Field:  "password",
			Reason: fmt.Sprintf("password must be at least %d characters", auth.MinPasswordLength),
		}
	}

	existing, err := uc.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return dto.UserResponse{}, ErrUsernameTaken
	}

	existing, err = uc.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return dto.UserResponse{}, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := model.NewUser(req.Username, req.Email, hash)
	if err != nil {
		return dto.UserResponse{}, err
	}

	if err := uc.users.Save(ctx, user); err != nil {
		return dto.UserResponse{}, fmt.Errorf("failed to save user: %w", err)
	}

	events := user.DomainEvents()
	if len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			return dto.UserResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	return dto.UserFromModel(user), nil
}
