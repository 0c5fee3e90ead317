package persistence

import (
	"context"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/owow-nl/wizkid-manager/modules/core/domain/aggregates/user"
	"github.com/owow-nl/wizkid-manager/pkg/composables"
)

var (
	ErrUserNotFound = gerrors.New("user not found")
)

const (
	userFindByIDQuery = `
        SELECT id, email, password_hash, created_at, updated_at
        FROM users
        WHERE id = $1`

	userFindByEmailQuery = `
        SELECT id, email, password_hash, created_at, updated_at
        FROM users
        WHERE lower(email) = lower($1)`

	userInsertQuery = `
        INSERT INTO users (id, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING id, email, password_hash, created_at, updated_at`
)

type PgUserRepository struct{}

func NewUserRepository() user.Repository {
	return &PgUserRepository{}
}

func (g *PgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}
	return scanUser(tx.QueryRow(ctx, userFindByIDQuery, id))
}

func (g *PgUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}
	return scanUser(tx.QueryRow(ctx, userFindByEmailQuery, email))
}

func (g *PgUserRepository) Create(ctx context.Context, data user.User) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, err
	}
	created, err := scanUser(tx.QueryRow(ctx, userInsertQuery, data.ID(), data.Email(), data.PasswordHash()))
	if err != nil {
		return user.User{}, gerrors.Wrap(err, "failed to create user")
	}
	return created, nil
}

func scanUser(row pgx.Row) (user.User, error) {
	var (
		id           uuid.UUID
		email        string
		passwordHash string
		createdAt    time.Time
		updatedAt    time.Time
	)
	if err := row.Scan(&id, &email, &passwordHash, &createdAt, &updatedAt); err != nil {
		if gerrors.Is(err, pgx.ErrNoRows) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, err
	}
	return user.Hydrate(id, email, passwordHash, createdAt, updatedAt), nil
}
