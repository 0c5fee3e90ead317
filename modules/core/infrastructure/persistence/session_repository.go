package persistence

import (
	"context"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/owow-nl/wizkid-manager/modules/core/domain/entities/session"
	"github.com/owow-nl/wizkid-manager/pkg/composables"
)

var (
	ErrSessionNotFound = gerrors.New("session not found")
)

const (
	sessionInsertQuery = `
        INSERT INTO sessions (token, user_id, expires_at, ip, user_agent)
        VALUES ($1, $2, $3, $4, $5)`

	sessionFindByTokenQuery = `
        SELECT token, user_id, expires_at, ip, user_agent, created_at
        FROM sessions
        WHERE token = $1`

	sessionDeleteQuery = `DELETE FROM sessions WHERE token = $1`
)

type PgSessionRepository struct{}

func NewSessionRepository() session.Repository {
	return &PgSessionRepository{}
}

func (g *PgSessionRepository) Create(ctx context.Context, data *session.Session) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sessionInsertQuery,
		data.Token, data.UserID, data.ExpiresAt, data.IP, data.UserAgent,
	); err != nil {
		return gerrors.Wrap(err, "failed to create session")
	}
	return nil
}

func (g *PgSessionRepository) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var (
		sess      session.Session
		userID    uuid.UUID
		expiresAt time.Time
		createdAt time.Time
	)
	if err := tx.QueryRow(ctx, sessionFindByTokenQuery, token).Scan(
		&sess.Token, &userID, &expiresAt, &sess.IP, &sess.UserAgent, &createdAt,
	); err != nil {
		if gerrors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	sess.UserID = userID
	sess.ExpiresAt = expiresAt
	sess.CreatedAt = createdAt
	return &sess, nil
}

func (g *PgSessionRepository) Delete(ctx context.Context, token string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, sessionDeleteQuery, token)
	return err
}
