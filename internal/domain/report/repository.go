package report

import "context"

type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByShortCode(ctx context.Context, code string) (*Report, error)
	ListByUser(ctx context.Context, userID uint) ([]*Report, error)
}
