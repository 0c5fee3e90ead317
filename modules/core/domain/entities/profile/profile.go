package profile

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile holds the optional account settings a user maintains about
// themselves. There is at most one per user; absence is a valid state.
type Profile struct {
	userID    uuid.UUID
	role      string
	phone     string
	avatarURL string
	updatedAt time.Time
}

func New(userID uuid.UUID) Profile {
	return Profile{userID: userID}
}

func Hydrate(
	userID uuid.UUID,
	role string,
	phone string,
	avatarURL string,
	updatedAt time.Time,
) Profile {
	return Profile{
		userID:    userID,
		role:      strings.TrimSpace(role),
		phone:     strings.TrimSpace(phone),
		avatarURL: avatarURL,
		updatedAt: updatedAt,
	}
}

func (p Profile) UserID() uuid.UUID    { return p.userID }
func (p Profile) Role() string         { return p.role }
func (p Profile) Phone() string        { return p.phone }
func (p Profile) AvatarURL() string    { return p.avatarURL }
func (p Profile) UpdatedAt() time.Time { return p.updatedAt }
func (p Profile) IsZero() bool         { return p.userID == uuid.Nil }

func (p Profile) WithRole(role string) Profile {
	p.role = strings.TrimSpace(role)
	return p
}

func (p Profile) WithPhone(phone string) Profile {
	p.phone = strings.TrimSpace(phone)
	return p
}

func (p Profile) WithAvatarURL(url string) Profile {
	p.avatarURL = url
	return p
}

type Repository interface {
	// GetByUserID returns ErrProfileNotFound for users without a profile.
	GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
	// Upsert inserts the profile if absent, otherwise updates it.
	Upsert(ctx context.Context, data Profile) (Profile, error)
}
