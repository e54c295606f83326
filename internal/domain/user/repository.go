package user

import "context"

type Repository interface {
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error

	// ListAllIDs returns the IDs of every known user. The monthly reset uses
	// it to seed current-month records; implementations read in batches to
	// keep memory bounded for large populations.
	ListAllIDs(ctx context.Context) ([]uint, error)
}
