package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/premialabs/premia/internal/domain/port"
)

// DeleteUser is the use case for removing an account and its quotes.
type DeleteUser struct {
	users port.UserRepository
}

// NewDeleteUser creates a new DeleteUser use case.
func NewDeleteUser(users port.UserRepository) *DeleteUser {
	return &DeleteUser{users: users}
}

// Execute deletes the target account and cascades its quotes. Admins
// cannot delete themselves, and the last admin account cannot be removed.
func (uc *DeleteUser) Execute(ctx context.Context, requesterID, targetID uuid.UUID) error {
	if requesterID == targetID {
		return ErrSelfDeletion
	}

	target, err := uc.users.FindByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if target == nil {
		return fmt.Errorf("user %s: %w", targetID, ErrNotFound)
	}

	if target.IsAdmin() {
		admins, err := uc.users.CountAdmins(ctx)
		if err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}

	if err := uc.users.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
