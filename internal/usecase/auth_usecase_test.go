package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"go-social-backend/internal/domain"
	"go-social-backend/internal/usecase"
	"go-social-backend/pkg/apperror"
	"go-social-backend/pkg/auth"
	"go-social-backend/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testJWTSecret = "test-secret-at-least-32-bytes-long!!"

func TestSignup(t *testing.T) {
	tokens := auth.NewTokenIssuer(testJWTSecret)
	ctx := context.Background()

	t.Run("Should reject weak password without touching the repository", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens)

		_, _, err := uc.Signup(ctx, "alice@example.com", "weakpass", "alice")
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should create user and issue a verifiable token", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens)

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			u.ID = 42
			// Plaintext must never reach the repository
			assert.NotEqual(t, "Str0ng!pass", u.PasswordHash)
			assert.True(t, password.Check(u.PasswordHash, "Str0ng!pass"))
		})

		user, token, err := uc.Signup(ctx, "alice@example.com", "Str0ng!pass", "alice")
		assert.NoError(t, err)
		assert.Equal(t, int64(42), user.ID)

		sub, err := tokens.Verify(token)
		assert.NoError(t, err)
		assert.Equal(t, "42", sub)
	})
}

func TestLogin(t *testing.T) {
	tokens := auth.NewTokenIssuer(testJWTSecret)
	ctx := context.Background()

	hash, _ := password.Hash("Str0ng!pass")
	stored := &domain.User{ID: 7, Email: "bob@example.com", PasswordHash: hash}

	t.Run("Should return the same error for unknown email and wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens)

		mockRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, apperror.NotFound("User not found"))
		_, _, unknownErr := uc.Login(ctx, "ghost@example.com", "Str0ng!pass")

		mockRepo.On("GetByEmail", ctx, "bob@example.com").Return(stored, nil)
		_, _, wrongPassErr := uc.Login(ctx, "bob@example.com", "not-the-password")

		assert.Error(t, unknownErr)
		assert.Error(t, wrongPassErr)
		assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())

		var appErr *apperror.AppError
		assert.ErrorAs(t, unknownErr, &appErr)
		assert.Equal(t, http.StatusUnauthorized, appErr.Code)
	})

	t.Run("Should issue a token for valid credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens)

		mockRepo.On("GetByEmail", ctx, "bob@example.com").Return(stored, nil)

		user, token, err := uc.Login(ctx, "bob@example.com", "Str0ng!pass")
		assert.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)

		sub, err := tokens.Verify(token)
		assert.NoError(t, err)
		assert.Equal(t, "7", sub)
	})
}

func TestChangePassword(t *testing.T) {
	tokens := auth.NewTokenIssuer(testJWTSecret)
	ctx := context.Background()

	hash, _ := password.Hash("Curr3nt!pass")
	stored := &domain.User{ID: 7, PasswordHash: hash}

	t.Run("Should reject a wrong current password", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens)

		mockRepo.On("GetByID", ctx, int64(7)).Return(stored, nil)

		err := uc.ChangePassword(ctx, 7, "wrong-password", "N3w!passwd")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusUnauthorized, appErr.Code)
		mockRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject a weak new password", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens)

		mockRepo.On("GetByID", ctx, int64(7)).Return(stored, nil)

		err := uc.ChangePassword(ctx, 7, "Curr3nt!pass", "weak")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	})

	t.Run("Should store a hash of the new password", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockRepo, tokens)

		mockRepo.On("GetByID", ctx, int64(7)).Return(stored, nil)
		mockRepo.On("UpdatePassword", ctx, int64(7), mock.AnythingOfType("string")).Return(nil).Run(func(args mock.Arguments) {
			assert.True(t, password.Check(args.String(2), "N3w!passwd"))
		})

		err := uc.ChangePassword(ctx, 7, "Curr3nt!pass", "N3w!passwd")
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}
