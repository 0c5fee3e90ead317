package seed

import (
	"context"
	"time"

	"github.com/owow-nl/wizkid-manager/modules/wizkid/domain/aggregates/wizkid"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/infrastructure/persistence"
	"github.com/owow-nl/wizkid-manager/pkg/application"
	"github.com/owow-nl/wizkid-manager/pkg/configuration"
)

type seedWizkid struct {
	name      string
	role      wizkid.Role
	birthDate time.Time
	email     string
	phone     string
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

var defaultWizkids = []seedWizkid{
	{"Daan de Vries", wizkid.RoleBoss, date(1988, time.March, 14), "daan@owow.nl", "+31 6 1111 1111"},
	{"Sanne Bakker", wizkid.RoleDeveloper, date(1995, time.July, 2), "sanne@owow.nl", "+31 6 2222 2222"},
	{"Luuk Jansen", wizkid.RoleDeveloper, date(1993, time.November, 23), "luuk@owow.nl", ""},
	{"Femke Visser", wizkid.RoleDesigner, date(1997, time.January, 30), "femke@owow.nl", "+31 6 3333 3333"},
	{"Tim van Dijk", wizkid.RoleIntern, date(2002, time.September, 8), "", ""},
}

// CreateDefaultWizkids fills an empty directory with a starter team. An
// already populated table is left untouched.
func CreateDefaultWizkids(ctx context.Context, app application.Application) error {
	logger := configuration.Use().Logger()
	repo := persistence.NewWizkidRepository()

	existing, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Infof("Wizkids already seeded")
		return nil
	}

	logger.Infof("Seeding %d wizkids", len(defaultWizkids))
	for _, s := range defaultWizkids {
		w := wizkid.New(s.name, s.role, s.birthDate).
			WithEmail(s.email).
			WithPhone(s.phone)
		if _, err := repo.Create(ctx, w); err != nil {
			return err
		}
	}
	return nil
}
