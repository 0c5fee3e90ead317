package persistence

import (
	"context"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/owow-nl/wizkid-manager/modules/core/domain/entities/profile"
	"github.com/owow-nl/wizkid-manager/pkg/composables"
)

var (
	ErrProfileNotFound = gerrors.New("profile not found")
)

const (
	profileFindByUserIDQuery = `
        SELECT user_id, role, phone, avatar_url, updated_at
        FROM profiles
        WHERE user_id = $1`

	profileUpsertQuery = `
        INSERT INTO profiles (user_id, role, phone, avatar_url, updated_at)
        VALUES ($1, $2, $3, $4, now())
        ON CONFLICT (user_id) DO UPDATE
        SET role = EXCLUDED.role,
            phone = EXCLUDED.phone,
            avatar_url = EXCLUDED.avatar_url,
            updated_at = now()
        RETURNING user_id, role, phone, avatar_url, updated_at`
)

type PgProfileRepository struct{}

func NewProfileRepository() profile.Repository {
	return &PgProfileRepository{}
}

func (g *PgProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return profile.Profile{}, err
	}
	return scanProfile(tx.QueryRow(ctx, profileFindByUserIDQuery, userID))
}

func (g *PgProfileRepository) Upsert(ctx context.Context, data profile.Profile) (profile.Profile, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return profile.Profile{}, err
	}
	saved, err := scanProfile(tx.QueryRow(ctx, profileUpsertQuery,
		data.UserID(), data.Role(), data.Phone(), data.AvatarURL(),
	))
	if err != nil {
		return profile.Profile{}, gerrors.Wrap(err, "failed to upsert profile")
	}
	return saved, nil
}

func scanProfile(row pgx.Row) (profile.Profile, error) {
	var (
		userID    uuid.UUID
		role      string
		phone     string
		avatarURL string
		updatedAt time.Time
	)
	if err := row.Scan(&userID, &role, &phone, &avatarURL, &updatedAt); err != nil {
		if gerrors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, ErrProfileNotFound
		}
		return profile.Profile{}, err
	}
	return profile.Hydrate(userID, role, phone, avatarURL, updatedAt), nil
}
