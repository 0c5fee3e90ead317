package mappers

import (
	"time"

	"github.com/owow-nl/wizkid-manager/modules/wizkid/domain/aggregates/wizkid"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/presentation/viewmodels"
)

func WizkidToViewModel(w wizkid.Wizkid, now time.Time) *viewmodels.Wizkid {
	return &viewmodels.Wizkid{
		ID:        w.ID().String(),
		Name:      w.Name(),
		Role:      string(w.Role()),
		Initials:  viewmodels.Initials(w.Name()),
		Age:       w.Age(now),
		BirthDate: w.BirthDate().Format("2006-01-02"),
		Email:     w.Email(),
		Phone:     w.Phone(),
		PhotoURL:  w.PhotoURL(),
		Fired:     w.Fired(),
	}
}

func WizkidsToViewModels(list []wizkid.Wizkid, now time.Time) []*viewmodels.Wizkid {
	out := make([]*viewmodels.Wizkid, 0, len(list))
	for _, w := range list {
		out = append(out, WizkidToViewModel(w, now))
	}
	return out
}
