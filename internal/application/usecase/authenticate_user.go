package usecase

import (
	"context"
	"fmt"

	"github.com/premialabs/premia/internal/application/dto"
	"github.com/premialabs/premia/internal/auth"
	"github.com/premialabs/premia/internal/domain/port"
)

// AuthenticateUser is the use case for logging in.
type AuthenticateUser struct {
	users  port.UserRepository
	tokens *auth.Service
}

// NewAuthenticateUser creates a new AuthenticateUser use case.
func NewAuthenticateUser(users port.UserRepository, tokens *auth.Service) *AuthenticateUser {
	return &AuthenticateUser{
		users:  users,
		tokens: tokens,
	}
}

// Execute verifies the credentials and issues a session token.
// Unknown usernames and wrong passwords return the same error.
func (uc *AuthenticateUser) Execute(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	user, err := uc.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash(), req.Password) {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := uc.tokens.GenerateToken(user.ID(), user.Username(), auth.RolesFor(user.IsAdmin()))
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("failed to issue token: %w", err)
	}

	return dto.AuthResponse{
		Token: token,
		User:  dto.UserFromModel(user),
	}, nil
}
