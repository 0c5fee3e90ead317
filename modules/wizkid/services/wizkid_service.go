package services

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/owow-nl/wizkid-manager/modules/core/domain/entities/profile"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/domain/aggregates/wizkid"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/infrastructure/notify"
	"github.com/owow-nl/wizkid-manager/pkg/composables"
	"github.com/owow-nl/wizkid-manager/pkg/eventbus"
)

var (
	// ErrForbidden marks an action the current user's role does not allow.
	ErrForbidden = gerrors.New("action not allowed for this role")
)

// ProfileLookup resolves the acting user's own profile; satisfied by the
// core profile service.
type ProfileLookup interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
}

type WizkidService struct {
	repo      wizkid.Repository
	publisher eventbus.EventBus
	notifier  notify.Notifier
	profiles  ProfileLookup
}

func NewWizkidService(
	repo wizkid.Repository,
	publisher eventbus.EventBus,
	notifier notify.Notifier,
	profiles ProfileLookup,
) *WizkidService {
	return &WizkidService{
		repo:      repo,
		publisher: publisher,
		notifier:  notifier,
		profiles:  profiles,
	}
}

func (s *WizkidService) GetAll(ctx context.Context) ([]wizkid.Wizkid, error) {
	return s.repo.GetAll(ctx)
}

func (s *WizkidService) GetByID(ctx context.Context, id uuid.UUID) (wizkid.Wizkid, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *WizkidService) Update(ctx context.Context, id uuid.UUID, dto *wizkid.UpdateDTO) (wizkid.Wizkid, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return wizkid.Wizkid{}, err
	}
	updated, err := s.repo.Update(ctx, dto.Apply(current))
	if err != nil {
		return wizkid.Wizkid{}, err
	}
	s.publisher.Publish(&wizkid.UpdatedEvent{Result: updated})
	return updated, nil
}

// ToggleFired flips the fired flag and then sends the advisory email. The
// flip is authoritative; the email waits for the surrounding transaction to
// commit, and a notification failure is logged and swallowed so the caller
// never sees it as an error. Only a Boss may toggle.
func (s *WizkidService) ToggleFired(ctx context.Context, id uuid.UUID) (wizkid.Wizkid, error) {
	if err := s.requireBoss(ctx); err != nil {
		return wizkid.Wizkid{}, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return wizkid.Wizkid{}, err
	}
	updated, err := s.repo.Update(ctx, current.WithFired(!current.Fired()))
	if err != nil {
		return wizkid.Wizkid{}, err
	}
	s.publisher.Publish(&wizkid.StatusChangedEvent{Result: updated, Fired: updated.Fired()})

	if updated.Email() != "" {
		name, email, fired, wizkidID := updated.Name(), updated.Email(), updated.Fired(), updated.ID()
		composables.AfterCommit(ctx, func(ctx context.Context) {
			if err := s.notifier.NotifyStatusChange(ctx, name, email, fired); err != nil {
				composables.UseLogger(ctx).WithError(err).WithField("wizkid", wizkidID).
					Error("failed to send status change notification")
			}
		})
	}
	return updated, nil
}

func (s *WizkidService) requireBoss(ctx context.Context) error {
	u, err := composables.UseUser(ctx)
	if err != nil {
		return ErrForbidden
	}
	p, err := s.profiles.GetByUserID(ctx, u.ID())
	if err != nil {
		return err
	}
	if p.Role() != string(wizkid.RoleBoss) {
		return ErrForbidden
	}
	return nil
}
