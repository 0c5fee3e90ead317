package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owow-nl/wizkid-manager/modules/wizkid/domain/aggregates/wizkid"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/infrastructure/persistence"
	"github.com/owow-nl/wizkid-manager/pkg/composables"
)

var wizkidColumns = []string{
	"id", "name", "role", "birth_date", "email", "phone", "photo_url", "fired", "created_at", "updated_at",
}

func mockContext(t *testing.T) (context.Context, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return composables.WithTx(context.Background(), mock), mock
}

func TestPgWizkidRepository_GetAll_OrdersByName(t *testing.T) {
	ctx, mock := mockContext(t)
	repo := persistence.NewWizkidRepository()

	now := time.Now()
	birth := time.Date(1995, time.July, 2, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows(wizkidColumns).
		AddRow(uuid.New(), "Daan de Vries", "Boss", birth, "daan@owow.nl", "", "", false, now, now).
		AddRow(uuid.New(), "Sanne Bakker", "Developer", birth, "sanne@owow.nl", "", "", true, now, now)

	mock.ExpectQuery("SELECT id, name, role, birth_date, email, phone, photo_url, fired, created_at, updated_at FROM wizkids ORDER BY name ASC").
		WillReturnRows(rows)

	wizkids, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, wizkids, 2)
	assert.Equal(t, "Daan de Vries", wizkids[0].Name())
	assert.Equal(t, wizkid.RoleBoss, wizkids[0].Role())
	assert.True(t, wizkids[1].Fired())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgWizkidRepository_GetByID_NotFound(t *testing.T) {
	ctx, mock := mockContext(t)
	repo := persistence.NewWizkidRepository()
	id := uuid.New()

	mock.ExpectQuery("SELECT id, name, role, birth_date, email, phone, photo_url, fired, created_at, updated_at FROM wizkids WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(wizkidColumns))

	_, err := repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, persistence.ErrWizkidNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgWizkidRepository_Update_FlipsFired(t *testing.T) {
	ctx, mock := mockContext(t)
	repo := persistence.NewWizkidRepository()

	now := time.Now()
	birth := time.Date(1995, time.July, 2, 0, 0, 0, 0, time.UTC)
	w := wizkid.New("Sanne Bakker", wizkid.RoleDeveloper, birth).
		WithEmail("sanne@owow.nl").
		WithFired(true)

	mock.ExpectQuery("UPDATE wizkids SET").
		WithArgs(w.ID(), "Sanne Bakker", "Developer", birth, "sanne@owow.nl", "", "", true).
		WillReturnRows(pgxmock.NewRows(wizkidColumns).
			AddRow(w.ID(), "Sanne Bakker", "Developer", birth, "sanne@owow.nl", "", "", true, now, now))

	updated, err := repo.Update(ctx, w)
	require.NoError(t, err)
	assert.True(t, updated.Fired())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgWizkidRepository_MissingTxAndPool(t *testing.T) {
	repo := persistence.NewWizkidRepository()
	_, err := repo.GetAll(context.Background())
	assert.ErrorIs(t, err, composables.ErrNoPool)
}
