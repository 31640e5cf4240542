package usecase

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go-social-backend/internal/domain"
	"go-social-backend/pkg/apperror"
	"go-social-backend/pkg/auth"
	"go-social-backend/pkg/password"
)

const passwordPolicyMessage = "Password must be at least 8 characters long, " +
	"contain an uppercase letter, a lowercase letter, a digit, and a special character"

type authUsecase struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenIssuer
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens *auth.TokenIssuer) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo, tokens: tokens}
}

func (u *authUsecase) Signup(ctx context.Context, email, pass, name string) (*domain.User, string, error) {
	if !password.IsComplex(pass) {
		return nil, "", apperror.BadRequest(passwordPolicyMessage)
	}

	hash, err := password.Hash(pass)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	now := time.Now()
	user := &domain.User{
		Username:     name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := u.tokens.Issue(strconv.FormatInt(user.ID, 10))
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return user, token, nil
}

// Login resolves an email/password pair to a fresh token. The same error is
// returned for an unknown email and a wrong password so the response never
// reveals which check failed.
func (u *authUsecase) Login(ctx context.Context, email, pass string) (*domain.User, string, error) {
	invalidCredentials := apperror.Unauthorized("Invalid email or password")

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusNotFound {
			return nil, "", invalidCredentials
		}
		return nil, "", err
	}

	if !password.Check(user.PasswordHash, pass) {
		return nil, "", invalidCredentials
	}

	token, err := u.tokens.Issue(strconv.FormatInt(user.ID, 10))
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return user, token, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

func (u *authUsecase) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !password.Check(user.PasswordHash, currentPassword) {
		return apperror.Unauthorized("Current password is incorrect")
	}
	if !password.IsComplex(newPassword) {
		return apperror.BadRequest(passwordPolicyMessage)
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return apperror.Internal(err)
	}
	return u.userRepo.UpdatePassword(ctx, userID, hash)
}
