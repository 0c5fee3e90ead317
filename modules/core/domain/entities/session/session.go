package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Session struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	IP        string
	UserAgent string
	CreatedAt time.Time
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

type CreateDTO struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	IP        string
	UserAgent string
}

func (d *CreateDTO) ToEntity() *Session {
	return &Session{
		Token:     d.Token,
		UserID:    d.UserID,
		ExpiresAt: d.ExpiresAt,
		IP:        d.IP,
		UserAgent: d.UserAgent,
		CreatedAt: time.Now(),
	}
}

type Repository interface {
	Create(ctx context.Context, data *Session) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
