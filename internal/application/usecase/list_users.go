package usecase

import (
	"context"
	"fmt"

	"github.com/premialabs/premia/internal/application/dto"
	"github.com/premialabs/premia/internal/domain/port"
)

// ListUsers is the use case for the admin user listing.
type ListUsers struct {
	users port.UserRepository
}

// NewListUsers creates a new ListUsers use case.
func NewListUsers(users port.UserRepository) *ListUsers {
	return &ListUsers{users: users}
}

// Execute returns a page of accounts ordered by creation time.
func (uc *ListUsers) Execute(ctx context.Context, limit, offset int) ([]dto.UserResponse, error) {
	limit = clampPageSize(limit)
	if offset < 0 {
		offset = 0
	}

	users, err := uc.users.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.UserFromModel(user))
	}
	return responses, nil
}
