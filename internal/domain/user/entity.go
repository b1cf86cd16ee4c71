package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxFullNameLength = 100

type User struct {
	id           uuid.UUID
	email        Email
	fullName     string
	passwordHash string
	role         Role
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser registers a new active account. Self-registration always yields a
// customer; administrators are provisioned out of band.
func NewUser(email Email, fullName, passwordHash string, role Role, now time.Time) (*User, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" || len(fullName) > MaxFullNameLength {
		return nil, ErrInvalidFullName
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	return &User{
		id:           uuid.New(),
		email:        email,
		fullName:     fullName,
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) FullName() string     { return u.fullName }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
