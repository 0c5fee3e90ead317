package wizkid

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the fixed set of tags a wizkid can hold. Boss is the only role
// allowed to fire or rehire.
type Role string

const (
	RoleBoss      Role = "Boss"
	RoleDeveloper Role = "Developer"
	RoleDesigner  Role = "Designer"
	RoleIntern    Role = "Intern"
)

func Roles() []Role {
	return []Role{RoleBoss, RoleDeveloper, RoleDesigner, RoleIntern}
}

func (r Role) IsValid() bool {
	switch r {
	case RoleBoss, RoleDeveloper, RoleDesigner, RoleIntern:
		return true
	}
	return false
}

// Wizkid is an employee record in the directory. Name and birth date are
// mandatory; email, phone and photo are independently optional. Records are
// created by seeding or administration, never deleted, and a fired wizkid
// stays in the directory.
type Wizkid struct {
	id        uuid.UUID
	name      string
	role      Role
	birthDate time.Time
	email     string
	phone     string
	photoURL  string
	fired     bool
	createdAt time.Time
	updatedAt time.Time
}

func New(name string, role Role, birthDate time.Time) Wizkid {
	return Wizkid{
		id:        uuid.New(),
		name:      strings.TrimSpace(name),
		role:      role,
		birthDate: birthDate,
	}
}

func Hydrate(
	id uuid.UUID,
	name string,
	role Role,
	birthDate time.Time,
	email string,
	phone string,
	photoURL string,
	fired bool,
	createdAt time.Time,
	updatedAt time.Time,
) Wizkid {
	return Wizkid{
		id:        id,
		name:      name,
		role:      role,
		birthDate: birthDate,
		email:     email,
		phone:     phone,
		photoURL:  photoURL,
		fired:     fired,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (w Wizkid) ID() uuid.UUID        { return w.id }
func (w Wizkid) Name() string         { return w.name }
func (w Wizkid) Role() Role           { return w.role }
func (w Wizkid) BirthDate() time.Time { return w.birthDate }
func (w Wizkid) Email() string        { return w.email }
func (w Wizkid) Phone() string        { return w.phone }
func (w Wizkid) PhotoURL() string     { return w.photoURL }
func (w Wizkid) Fired() bool          { return w.fired }
func (w Wizkid) CreatedAt() time.Time { return w.createdAt }
func (w Wizkid) UpdatedAt() time.Time { return w.updatedAt }
func (w Wizkid) IsZero() bool         { return w.id == uuid.Nil }

func (w Wizkid) WithName(name string) Wizkid {
	w.name = strings.TrimSpace(name)
	return w
}

func (w Wizkid) WithRole(role Role) Wizkid {
	w.role = role
	return w
}

func (w Wizkid) WithBirthDate(birthDate time.Time) Wizkid {
	w.birthDate = birthDate
	return w
}

func (w Wizkid) WithEmail(email string) Wizkid {
	w.email = strings.TrimSpace(email)
	return w
}

func (w Wizkid) WithPhone(phone string) Wizkid {
	w.phone = strings.TrimSpace(phone)
	return w
}

func (w Wizkid) WithPhotoURL(url string) Wizkid {
	w.photoURL = url
	return w
}

func (w Wizkid) WithFired(fired bool) Wizkid {
	w.fired = fired
	return w
}

// Age is the calendar-aware age in years at the given moment. The year
// difference is decremented when the month/day has not been reached yet.
func (w Wizkid) Age(now time.Time) int {
	years := now.Year() - w.birthDate.Year()
	anniversary := time.Date(now.Year(), w.birthDate.Month(), w.birthDate.Day(), 0, 0, 0, 0, now.Location())
	if now.Before(anniversary) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
