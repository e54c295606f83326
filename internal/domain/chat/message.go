// Package chat holds the AI conversation messages metered by the usage
// ledger. Model inference is an external collaborator; only the exchange
// record lives here.
package chat

import (
	"errors"
	"time"
)

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

type Message struct {
	id        uint
	userID    uint
	datasetID uint
	role      MessageRole
	content   string
	createdAt time.Time
}

func NewMessage(userID, datasetID uint, role MessageRole, content string) (*Message, error) {
	if userID == 0 {
		return nil, errors.New("user ID cannot be zero")
	}
	if role != RoleUser && role != RoleAssistant {
		return nil, errors.New("invalid message role")
	}
	if content == "" {
		return nil, errors.New("message content is required")
	}

	return &Message{
		userID:    userID,
		datasetID: datasetID,
		role:      role,
		content:   content,
		createdAt: time.Now().UTC(),
	}, nil
}

func Reconstruct(id, userID, datasetID uint, role MessageRole, content string, createdAt time.Time) (*Message, error) {
	if id == 0 {
		return nil, errors.New("message ID cannot be zero")
	}
	return &Message{
		id:        id,
		userID:    userID,
		datasetID: datasetID,
		role:      role,
		content:   content,
		createdAt: createdAt,
	}, nil
}

func (m *Message) ID() uint             { return m.id }
func (m *Message) UserID() uint         { return m.userID }
func (m *Message) DatasetID() uint      { return m.datasetID }
func (m *Message) Role() MessageRole    { return m.role }
func (m *Message) Content() string      { return m.content }
func (m *Message) CreatedAt() time.Time { return m.createdAt }

func (m *Message) SetID(id uint) error {
	if id == 0 {
		return errors.New("message ID cannot be zero")
	}
	m.id = id
	return nil
}
