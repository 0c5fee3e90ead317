package persistence

import (
	"context"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/owow-nl/wizkid-manager/modules/wizkid/domain/aggregates/wizkid"
	"github.com/owow-nl/wizkid-manager/pkg/composables"
	"github.com/owow-nl/wizkid-manager/pkg/repo"
)

var (
	ErrWizkidNotFound = gerrors.New("wizkid not found")
)

const wizkidColumns = "id, name, role, birth_date, email, phone, photo_url, fired, created_at, updated_at"

var (
	wizkidSelectQuery = repo.Join("SELECT", wizkidColumns, "FROM wizkids")

	wizkidFindAllQuery = repo.Join(wizkidSelectQuery, "ORDER BY name ASC")

	wizkidFindByIDQuery = repo.Join(wizkidSelectQuery, repo.JoinWhere("id = $1"))

	wizkidInsertQuery = repo.Join(
		"INSERT INTO wizkids (id, name, role, birth_date, email, phone, photo_url, fired)",
		"VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		"RETURNING", wizkidColumns,
	)

	wizkidUpdateQuery = repo.Join(
		"UPDATE wizkids",
		"SET name = $2, role = $3, birth_date = $4, email = $5, phone = $6, photo_url = $7, fired = $8, updated_at = now()",
		repo.JoinWhere("id = $1"),
		"RETURNING", wizkidColumns,
	)
)

type PgWizkidRepository struct{}

func NewWizkidRepository() wizkid.Repository {
	return &PgWizkidRepository{}
}

func (g *PgWizkidRepository) GetAll(ctx context.Context) ([]wizkid.Wizkid, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, wizkidFindAllQuery)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to list wizkids")
	}
	defer rows.Close()

	wizkids := make([]wizkid.Wizkid, 0)
	for rows.Next() {
		w, err := scanWizkid(rows)
		if err != nil {
			return nil, err
		}
		wizkids = append(wizkids, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return wizkids, nil
}

func (g *PgWizkidRepository) GetByID(ctx context.Context, id uuid.UUID) (wizkid.Wizkid, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return wizkid.Wizkid{}, err
	}
	return scanWizkid(tx.QueryRow(ctx, wizkidFindByIDQuery, id))
}

func (g *PgWizkidRepository) Create(ctx context.Context, data wizkid.Wizkid) (wizkid.Wizkid, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return wizkid.Wizkid{}, err
	}
	created, err := scanWizkid(tx.QueryRow(ctx, wizkidInsertQuery,
		data.ID(), data.Name(), string(data.Role()), data.BirthDate(),
		data.Email(), data.Phone(), data.PhotoURL(), data.Fired(),
	))
	if err != nil {
		return wizkid.Wizkid{}, gerrors.Wrap(err, "failed to create wizkid")
	}
	return created, nil
}

func (g *PgWizkidRepository) Update(ctx context.Context, data wizkid.Wizkid) (wizkid.Wizkid, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return wizkid.Wizkid{}, err
	}
	updated, err := scanWizkid(tx.QueryRow(ctx, wizkidUpdateQuery,
		data.ID(), data.Name(), string(data.Role()), data.BirthDate(),
		data.Email(), data.Phone(), data.PhotoURL(), data.Fired(),
	))
	if err != nil {
		return wizkid.Wizkid{}, gerrors.Wrap(err, "failed to update wizkid")
	}
	return updated, nil
}

func scanWizkid(row pgx.Row) (wizkid.Wizkid, error) {
	var (
		id        uuid.UUID
		name      string
		role      string
		birthDate time.Time
		email     string
		phone     string
		photoURL  string
		fired     bool
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(
		&id, &name, &role, &birthDate, &email, &phone, &photoURL, &fired, &createdAt, &updatedAt,
	); err != nil {
		if gerrors.Is(err, pgx.ErrNoRows) {
			return wizkid.Wizkid{}, ErrWizkidNotFound
		}
		return wizkid.Wizkid{}, err
	}
	return wizkid.Hydrate(
		id, name, wizkid.Role(role), birthDate, email, phone, photoURL, fired, createdAt, updatedAt,
	), nil
}
