package domain

import (
	"context"
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    *string   `json:"first_name"`
	LastName     *string   `json:"last_name"`
	Phone        *string   `json:"phone"`
	Website      *string   `json:"website"`
	Headline     *string   `json:"headline"`
	Industry     *string   `json:"industry"`
	Company      *string   `json:"company"`
	JobTitle     *string   `json:"job_title"`
	ProfileImage *string   `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserSummary is the denormalized owner view embedded in post responses.
type UserSummary struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	ProfileImage *string `json:"profile_image"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateProfileImage(ctx context.Context, id int64, imageURL string) error
	Delete(ctx context.Context, id int64) error
}

type AuthUsecase interface {
	Signup(ctx context.Context, email, password, name string) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	GetCurrentUser(ctx context.Context, id int64) (*User, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
}
