package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owow-nl/wizkid-manager/modules/core/domain/entities/profile"
	"github.com/owow-nl/wizkid-manager/modules/core/infrastructure/persistence"
	"github.com/owow-nl/wizkid-manager/modules/core/services"
)

type fakeProfileRepository struct {
	profiles map[uuid.UUID]profile.Profile
}

func newFakeProfileRepository() *fakeProfileRepository {
	return &fakeProfileRepository{profiles: map[uuid.UUID]profile.Profile{}}
}

func (f *fakeProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return profile.Profile{}, persistence.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepository) Upsert(ctx context.Context, data profile.Profile) (profile.Profile, error) {
	f.profiles[data.UserID()] = data
	return data, nil
}

func TestProfileService_AbsentProfileIsNotAnError(t *testing.T) {
	svc := services.NewProfileService(newFakeProfileRepository())
	userID := uuid.New()

	p, err := svc.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, p.UserID())
	assert.Empty(t, p.Role())
}

func TestProfileService_UpsertRoundTrip(t *testing.T) {
	repo := newFakeProfileRepository()
	svc := services.NewProfileService(repo)
	userID := uuid.New()

	p, err := svc.GetByUserID(context.Background(), userID)
	require.NoError(t, err)

	saved, err := svc.Upsert(context.Background(), p.WithRole("Boss").WithPhone("+31 6 1111 1111"))
	require.NoError(t, err)
	assert.Equal(t, "Boss", saved.Role())

	loaded, err := svc.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Boss", loaded.Role())
	assert.Equal(t, "+31 6 1111 1111", loaded.Phone())
}
