package dataset

import "context"

type Repository interface {
	Create(ctx context.Context, d *Dataset) error
	GetByID(ctx context.Context, id uint) (*Dataset, error)
	ListByUser(ctx context.Context, userID uint) ([]*Dataset, error)
}
