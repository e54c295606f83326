package chat

import "context"

type Repository interface {
	Create(ctx context.Context, m *Message) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]*Message, error)
}
