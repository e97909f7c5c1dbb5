package account

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrInvalidCredentials is returned on login with a wrong email or password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound is returned when a lookup matches no account.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidInput wraps request validation failures.
	ErrInvalidInput = errors.New("invalid input")
)

// User is a registered account. The backend is a thin credential store; the
// client stays authoritative over all challenge state.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PhysicalStats is a dated body-measurement entry captured at registration.
type PhysicalStats struct {
	ID                string   `json:"id"`
	UserID            string   `json:"userId"`
	Weight            float64  `json:"weight"` // kg
	Height            float64  `json:"height"` // cm
	BodyFatPercentage *float64 `json:"bodyFatPercentage,omitempty"`
	Date              string   `json:"date"` // YYYY-MM-DD
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Name              string   `json:"name" validate:"required,min=1,max=100"`
	Email             string   `json:"email" validate:"required,email"`
	Password          string   `json:"password" validate:"required,min=8,max=72"`
	AvatarURL         string   `json:"avatarUrl,omitempty" validate:"omitempty,url"`
	Weight            float64  `json:"weight" validate:"required,gt=0"`
	Height            float64  `json:"height" validate:"required,gt=0"`
	BodyFatPercentage *float64 `json:"bodyFatPercentage,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// Repository is the persistence port for accounts.
type Repository interface {
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	CreatePhysicalStats(ctx context.Context, stats *PhysicalStats) error
}
