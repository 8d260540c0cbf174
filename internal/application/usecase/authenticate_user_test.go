package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/premialabs/premia/internal/application/dto"
	"github.com/premialabs/premia/internal/application/usecase"
	"github.com/premialabs/premia/internal/auth"
	"github.com/premialabs/premia/internal/domain/model"
)

func testTokenService(t *testing.T) *auth.Service {
	t.Helper()
	service, err := auth.NewService(auth.Config{Secret: "test-secret"})
	require.NoError(t, err)
	return service
}

func TestAuthenticateUser(t *testing.T) {
	t.Run("issues a token for valid credentials", func(t *testing.T) {
		hash, err := auth.HashPassword("correct-horse")
		require.NoError(t, err)
		account, err := model.NewUser("bob", "bob@example.com", hash)
		require.NoError(t, err)

		users := &mockUserRepository{
			findByUsernameFunc: func(context.Context, string) (*model.User, error) {
				return account, nil
			},
		}
		tokens := testTokenService(t)
		uc := usecase.NewAuthenticateUser(users, tokens)

		resp, err := uc.Execute(context.Background(), dto.LoginRequest{Username: "bob", Password: "correct-horse"})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "bob", resp.User.Username)

		claims, err := tokens.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, account.ID(), claims.UserID)
		assert.True(t, claims.HasRole(auth.RoleCustomer))
		assert.False(t, claims.IsAdmin())
	})

	t.Run("admin accounts get both roles", func(t *testing.T) {
		hash, err := auth.HashPassword("admin-pass")
		require.NoError(t, err)
		account, err := model.NewUser("root_user", "root@example.com", hash)
		require.NoError(t, err)
		account.PromoteToAdmin()

		users := &mockUserRepository{
			findByUsernameFunc: func(context.Context, string) (*model.User, error) {
				return account, nil
			},
		}
		tokens := testTokenService(t)
		uc := usecase.NewAuthenticateUser(users, tokens)

		resp, err := uc.Execute(context.Background(), dto.LoginRequest{Username: "root_user", Password: "admin-pass"})
		require.NoError(t, err)

		claims, err := tokens.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.True(t, claims.IsAdmin())
		assert.True(t, claims.HasRole(auth.RoleCustomer))
	})

	t.Run("unknown username and wrong password fail identically", func(t *testing.T) {
		hash, err := auth.HashPassword("right-password")
		require.NoError(t, err)
		account, err := model.NewUser("carol", "carol@example.com", hash)
		require.NoError(t, err)

		uc := usecase.NewAuthenticateUser(&mockUserRepository{}, testTokenService(t))
		_, errUnknown := uc.Execute(context.Background(), dto.LoginRequest{Username: "ghost", Password: "whatever"})

		users := &mockUserRepository{
			findByUsernameFunc: func(context.Context, string) (*model.User, error) {
				return account, nil
			},
		}
		uc = usecase.NewAuthenticateUser(users, testTokenService(t))
		_, errWrong := uc.Execute(context.Background(), dto.LoginRequest{Username: "carol", Password: "wrong-password"})

		assert.ErrorIs(t, errUnknown, usecase.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrong, usecase.ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("fails when the lookup fails", func(t *testing.T) {
		users := &mockUserRepository{
			findByUsernameFunc: func(context.Context, string) (*model.User, error) {
				return nil, errors.New("connection lost")
			},
		}
		uc := usecase.NewAuthenticateUser(users, testTokenService(t))

		_, err := uc.Execute(context.Background(), dto.LoginRequest{Username: "bob", Password: "x"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to find user")
	})
}
