package services_test

import (
	"context"
	"testing"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owow-nl/wizkid-manager/modules/core/domain/aggregates/user"
	"github.com/owow-nl/wizkid-manager/modules/core/domain/entities/profile"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/domain/aggregates/wizkid"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/services"
	"github.com/owow-nl/wizkid-manager/pkg/composables"
	"github.com/owow-nl/wizkid-manager/pkg/constants"
	"github.com/owow-nl/wizkid-manager/pkg/eventbus"
)

type fakeWizkidRepository struct {
	records     map[uuid.UUID]wizkid.Wizkid
	updateCalls int
	updateErr   error
}

func newFakeWizkidRepository(records ...wizkid.Wizkid) *fakeWizkidRepository {
	m := make(map[uuid.UUID]wizkid.Wizkid, len(records))
	for _, w := range records {
		m[w.ID()] = w
	}
	return &fakeWizkidRepository{records: m}
}

func (f *fakeWizkidRepository) GetAll(ctx context.Context) ([]wizkid.Wizkid, error) {
	out := make([]wizkid.Wizkid, 0, len(f.records))
	for _, w := range f.records {
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeWizkidRepository) GetByID(ctx context.Context, id uuid.UUID) (wizkid.Wizkid, error) {
	w, ok := f.records[id]
	if !ok {
		return wizkid.Wizkid{}, gerrors.New("wizkid not found")
	}
	return w, nil
}

func (f *fakeWizkidRepository) Create(ctx context.Context, data wizkid.Wizkid) (wizkid.Wizkid, error) {
	f.records[data.ID()] = data
	return data, nil
}

func (f *fakeWizkidRepository) Update(ctx context.Context, data wizkid.Wizkid) (wizkid.Wizkid, error) {
	f.updateCalls++
	if f.updateErr != nil {
		return wizkid.Wizkid{}, f.updateErr
	}
	f.records[data.ID()] = data
	return data, nil
}

type fakeNotifier struct {
	calls []bool
	err   error
}

func (f *fakeNotifier) NotifyStatusChange(ctx context.Context, name, email string, fired bool) error {
	f.calls = append(f.calls, fired)
	return f.err
}

type fakeProfileLookup struct {
	role string
	err  error
}

func (f *fakeProfileLookup) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	if f.err != nil {
		return profile.Profile{}, f.err
	}
	return profile.New(userID).WithRole(f.role), nil
}

func testContext(t *testing.T, asBoss bool) context.Context {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	ctx := context.WithValue(context.Background(), constants.LoggerKey, logrus.NewEntry(logger))
	if asBoss {
		u, err := user.New("boss@owow.nl", "wizkids2000")
		require.NoError(t, err)
		ctx = composables.WithUser(ctx, u)
	}
	return ctx
}

func newService(repo wizkid.Repository, notifier *fakeNotifier, role string) *services.WizkidService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return services.NewWizkidService(
		repo,
		eventbus.NewEventPublisher(logger),
		notifier,
		&fakeProfileLookup{role: role},
	)
}

func TestWizkidService_ToggleFired_DoubleToggleRestoresStatus(t *testing.T) {
	w := wizkid.New("Sanne Bakker", wizkid.RoleDeveloper, time.Date(1995, time.July, 2, 0, 0, 0, 0, time.UTC)).
		WithEmail("sanne@owow.nl")
	repo := newFakeWizkidRepository(w)
	notifier := &fakeNotifier{}
	svc := newService(repo, notifier, "Boss")
	ctx := testContext(t, true)

	fired, err := svc.ToggleFired(ctx, w.ID())
	require.NoError(t, err)
	assert.True(t, fired.Fired())

	rehired, err := svc.ToggleFired(ctx, w.ID())
	require.NoError(t, err)
	assert.False(t, rehired.Fired())

	assert.Equal(t, 2, repo.updateCalls)
	assert.Equal(t, []bool{true, false}, notifier.calls)
}

func TestWizkidService_ToggleFired_NotificationFailureIsSwallowed(t *testing.T) {
	w := wizkid.New("Sanne Bakker", wizkid.RoleDeveloper, time.Date(1995, time.July, 2, 0, 0, 0, 0, time.UTC)).
		WithEmail("sanne@owow.nl")
	repo := newFakeWizkidRepository(w)
	notifier := &fakeNotifier{err: gerrors.New("relay unreachable")}
	svc := newService(repo, notifier, "Boss")

	updated, err := svc.ToggleFired(testContext(t, true), w.ID())
	require.NoError(t, err)
	assert.True(t, updated.Fired())
	assert.Equal(t, 1, repo.updateCalls)

	stored, err := repo.GetByID(context.Background(), w.ID())
	require.NoError(t, err)
	assert.True(t, stored.Fired())
}

func TestWizkidService_ToggleFired_NotifiesOnlyAfterCommit(t *testing.T) {
	w := wizkid.New("Sanne Bakker", wizkid.RoleDeveloper, time.Date(1995, time.July, 2, 0, 0, 0, 0, time.UTC)).
		WithEmail("sanne@owow.nl")
	repo := newFakeWizkidRepository(w)
	notifier := &fakeNotifier{}
	svc := newService(repo, notifier, "Boss")
	ctx := composables.WithCommitHooks(testContext(t, true))

	updated, err := svc.ToggleFired(ctx, w.ID())
	require.NoError(t, err)
	assert.True(t, updated.Fired())
	assert.Equal(t, 1, repo.updateCalls)
	assert.Empty(t, notifier.calls, "email must not leave before the flip commits")

	composables.RunCommitHooks(ctx)
	assert.Equal(t, []bool{true}, notifier.calls)

	// Hooks are one-shot; a second run must not resend.
	composables.RunCommitHooks(ctx)
	assert.Equal(t, []bool{true}, notifier.calls)
}

func TestWizkidService_ToggleFired_NoEmailSkipsNotification(t *testing.T) {
	w := wizkid.New("Tim van Dijk", wizkid.RoleIntern, time.Date(2002, time.September, 8, 0, 0, 0, 0, time.UTC))
	repo := newFakeWizkidRepository(w)
	notifier := &fakeNotifier{}
	svc := newService(repo, notifier, "Boss")

	_, err := svc.ToggleFired(testContext(t, true), w.ID())
	require.NoError(t, err)
	assert.Empty(t, notifier.calls)
	assert.Equal(t, 1, repo.updateCalls)
}

func TestWizkidService_ToggleFired_RequiresBoss(t *testing.T) {
	w := wizkid.New("Sanne Bakker", wizkid.RoleDeveloper, time.Date(1995, time.July, 2, 0, 0, 0, 0, time.UTC))
	repo := newFakeWizkidRepository(w)
	notifier := &fakeNotifier{}

	t.Run("no user in context", func(t *testing.T) {
		svc := newService(repo, notifier, "Boss")
		_, err := svc.ToggleFired(testContext(t, false), w.ID())
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("non-boss role", func(t *testing.T) {
		svc := newService(repo, notifier, "Developer")
		_, err := svc.ToggleFired(testContext(t, true), w.ID())
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	assert.Zero(t, repo.updateCalls)
	assert.Empty(t, notifier.calls)
}

func TestWizkidService_Update_FlipFailurePropagates(t *testing.T) {
	w := wizkid.New("Sanne Bakker", wizkid.RoleDeveloper, time.Date(1995, time.July, 2, 0, 0, 0, 0, time.UTC)).
		WithEmail("sanne@owow.nl")
	repo := newFakeWizkidRepository(w)
	repo.updateErr = gerrors.New("connection lost")
	notifier := &fakeNotifier{}
	svc := newService(repo, notifier, "Boss")

	_, err := svc.ToggleFired(testContext(t, true), w.ID())
	require.Error(t, err)
	assert.Empty(t, notifier.calls)
}
