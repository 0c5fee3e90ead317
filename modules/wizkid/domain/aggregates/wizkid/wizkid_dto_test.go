package wizkid_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owow-nl/wizkid-manager/modules/wizkid/domain/aggregates/wizkid"
)

func TestUpdateDTO_Ok(t *testing.T) {
	dto := &wizkid.UpdateDTO{
		Name:      "  Sanne Bakker  ",
		Role:      "Developer",
		BirthDate: "1995-07-02",
		Email:     "sanne@owow.nl",
	}
	errs, ok := dto.Ok(context.Background())
	require.True(t, ok, errs)
	assert.Equal(t, "Sanne Bakker", dto.Name)
}

func TestUpdateDTO_RequiredFields(t *testing.T) {
	dto := &wizkid.UpdateDTO{}
	errs, ok := dto.Ok(context.Background())
	assert.False(t, ok)
	assert.Contains(t, errs, "Name")
	assert.Contains(t, errs, "Role")
	assert.Contains(t, errs, "BirthDate")
}

func TestUpdateDTO_RejectsUnknownRole(t *testing.T) {
	dto := &wizkid.UpdateDTO{Name: "Sanne", Role: "CEO", BirthDate: "1995-07-02"}
	errs, ok := dto.Ok(context.Background())
	assert.False(t, ok)
	assert.Contains(t, errs, "Role")
}

func TestUpdateDTO_RejectsBadBirthDate(t *testing.T) {
	dto := &wizkid.UpdateDTO{Name: "Sanne", Role: "Developer", BirthDate: "02-07-1995"}
	errs, ok := dto.Ok(context.Background())
	assert.False(t, ok)
	assert.Contains(t, errs, "BirthDate")
}

func TestUpdateDTO_RejectsBadEmail(t *testing.T) {
	dto := &wizkid.UpdateDTO{Name: "Sanne", Role: "Developer", BirthDate: "1995-07-02", Email: "not-an-email"}
	errs, ok := dto.Ok(context.Background())
	assert.False(t, ok)
	assert.Contains(t, errs, "Email")
}

func TestUpdateDTO_ApplyKeepsFiredFlag(t *testing.T) {
	w := wizkid.New("Old Name", wizkid.RoleIntern, time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)).
		WithFired(true)
	dto := &wizkid.UpdateDTO{Name: "New Name", Role: "Developer", BirthDate: "1999-05-20"}
	_, ok := dto.Ok(context.Background())
	require.True(t, ok)

	updated := dto.Apply(w)
	assert.Equal(t, "New Name", updated.Name())
	assert.Equal(t, wizkid.RoleDeveloper, updated.Role())
	assert.True(t, updated.Fired())
	assert.Equal(t, w.ID(), updated.ID())
}
