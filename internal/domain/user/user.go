// Package user holds the account aggregate referenced by the usage ledger.
// The ledger treats users as external identities: it reads the tier and
// never mutates the aggregate.
package user

import (
	"errors"
	"time"

	vo "iops/internal/domain/user/valueobjects"
)

// Role separates regular accounts from operators allowed to trigger
// administrative actions such as the manual usage reset.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	id           uint
	email        vo.Email
	username     string
	passwordHash string
	tier         vo.Tier
	role         Role
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates an active free-tier account.
func NewUser(email vo.Email, username, passwordHash string) (*User, error) {
	if email.IsZero() {
		return nil, errors.New("email is required")
	}
	if username == "" {
		return nil, errors.New("username is required")
	}
	if passwordHash == "" {
		return nil, errors.New("password hash is required")
	}

	now := time.Now().UTC()
	return &User{
		email:        email,
		username:     username,
		passwordHash: passwordHash,
		tier:         vo.TierFree,
		role:         RoleUser,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a user from persisted state. The stored tier string is
// carried through as-is; quota lookups apply the free fallback, not this
// constructor, so a stale tier value never breaks reads.
func Reconstruct(
	id uint,
	email vo.Email,
	username string,
	passwordHash string,
	tier vo.Tier,
	role Role,
	isActive bool,
	createdAt time.Time,
	updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, errors.New("user ID cannot be zero")
	}
	if email.IsZero() {
		return nil, errors.New("email is required")
	}

	return &User{
		id:           id,
		email:        email,
		username:     username,
		passwordHash: passwordHash,
		tier:         tier,
		role:         role,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

// ChangeTier moves the account to a new subscription level.
func (u *User) ChangeTier(tier vo.Tier) error {
	if !tier.IsValid() {
		return errors.New("invalid tier")
	}
	u.tier = tier
	u.updatedAt = time.Now().UTC()
	return nil
}

func (u *User) Deactivate() {
	u.isActive = false
	u.updatedAt = time.Now().UTC()
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) Email() vo.Email {
	return u.email
}

func (u *User) Username() string {
	return u.username
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Tier() vo.Tier {
	return u.tier
}

func (u *User) Role() Role {
	return u.role
}

func (u *User) IsAdmin() bool {
	return u.role == RoleAdmin
}

func (u *User) IsActive() bool {
	return u.isActive
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// SetID assigns the persistence identity after the first insert.
func (u *User) SetID(id uint) error {
	if id == 0 {
		return errors.New("user ID cannot be zero")
	}
	u.id = id
	return nil
}
