package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owow-nl/wizkid-manager/modules/core/domain/aggregates/user"
	"github.com/owow-nl/wizkid-manager/modules/core/domain/entities/profile"
	corepersistence "github.com/owow-nl/wizkid-manager/modules/core/infrastructure/persistence"
	coreservices "github.com/owow-nl/wizkid-manager/modules/core/services"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/domain/aggregates/wizkid"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/presentation/controllers"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/services"
	"github.com/owow-nl/wizkid-manager/pkg/application"
	"github.com/owow-nl/wizkid-manager/pkg/composables"
	"github.com/owow-nl/wizkid-manager/pkg/constants"
	"github.com/owow-nl/wizkid-manager/pkg/eventbus"
)

type stubWizkidRepository struct {
	record    wizkid.Wizkid
	updateErr error
}

func (s *stubWizkidRepository) GetAll(ctx context.Context) ([]wizkid.Wizkid, error) {
	return []wizkid.Wizkid{s.record}, nil
}

func (s *stubWizkidRepository) GetByID(ctx context.Context, id uuid.UUID) (wizkid.Wizkid, error) {
	if id != s.record.ID() {
		return wizkid.Wizkid{}, gerrors.New("wizkid not found")
	}
	return s.record, nil
}

func (s *stubWizkidRepository) Create(ctx context.Context, data wizkid.Wizkid) (wizkid.Wizkid, error) {
	return data, nil
}

func (s *stubWizkidRepository) Update(ctx context.Context, data wizkid.Wizkid) (wizkid.Wizkid, error) {
	if s.updateErr != nil {
		return wizkid.Wizkid{}, s.updateErr
	}
	s.record = data
	return data, nil
}

type stubProfileRepository struct{}

func (s *stubProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	return profile.Profile{}, corepersistence.ErrProfileNotFound
}

func (s *stubProfileRepository) Upsert(ctx context.Context, data profile.Profile) (profile.Profile, error) {
	return data, nil
}

type stubNotifier struct{}

func (s *stubNotifier) NotifyStatusChange(ctx context.Context, name, email string, fired bool) error {
	return nil
}

func newEditController(t *testing.T, repo *stubWizkidRepository) *controllers.WizkidController {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
	})
	profileService := coreservices.NewProfileService(&stubProfileRepository{})
	app.RegisterServices(
		profileService,
		services.NewWizkidService(repo, app.EventPublisher(), &stubNotifier{}, profileService),
	)
	return controllers.NewWizkidController(app).(*controllers.WizkidController)
}

func editTestContext(t *testing.T) context.Context {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	ctx := context.WithValue(context.Background(), constants.LoggerKey, logrus.NewEntry(logger))
	u, err := user.New("boss@owow.nl", "wizkids2000")
	require.NoError(t, err)
	return composables.WithUser(ctx, u)
}

func postEditForm(t *testing.T, c *controllers.WizkidController, id string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/wizkids/"+id+"/edit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = req.WithContext(editTestContext(t))
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rec := httptest.NewRecorder()
	c.PostEdit(rec, req)
	return rec
}

func getEditPage(t *testing.T, c *controllers.WizkidController, id string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/wizkids/"+id+"/edit", nil)
	req = req.WithContext(editTestContext(t))
	req = mux.SetURLVars(req, map[string]string{"id": id})
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c.GetEdit(rec, req)
	return rec
}

func TestWizkidController_FailedSaveKeepsEnteredValues(t *testing.T) {
	stored := wizkid.New("Sanne Bakker", wizkid.RoleDeveloper, time.Date(1995, time.July, 2, 0, 0, 0, 0, time.UTC)).
		WithEmail("sanne@owow.nl")
	repo := &stubWizkidRepository{record: stored, updateErr: gerrors.New("connection lost")}
	c := newEditController(t, repo)
	id := stored.ID().String()

	rec := postEditForm(t, c, id, url.Values{
		"Name":      {"Entered New Name"},
		"Role":      {"Designer"},
		"BirthDate": {"1996-01-15"},
		"Email":     {"entered@owow.nl"},
		"Phone":     {"+31 6 9999 9999"},
	})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/wizkids/"+id+"/edit", rec.Header().Get("Location"))

	page := getEditPage(t, c, id, rec.Result().Cookies())
	require.Equal(t, http.StatusOK, page.Code)
	body := page.Body.String()
	assert.Contains(t, body, `value="Entered New Name"`)
	assert.Contains(t, body, `value="1996-01-15"`)
	assert.Contains(t, body, `value="entered@owow.nl"`)
	assert.Contains(t, body, `value="+31 6 9999 9999"`)
	assert.Contains(t, body, `<option value="Designer" selected>`)
	assert.Contains(t, body, "Could not save the changes")
	assert.NotContains(t, body, `value="Sanne Bakker"`, "stored record must not clobber the entered name")
}

func TestWizkidController_ValidationFailureKeepsEnteredValues(t *testing.T) {
	stored := wizkid.New("Sanne Bakker", wizkid.RoleDeveloper, time.Date(1995, time.July, 2, 0, 0, 0, 0, time.UTC))
	repo := &stubWizkidRepository{record: stored}
	c := newEditController(t, repo)
	id := stored.ID().String()

	rec := postEditForm(t, c, id, url.Values{
		"Name":      {""},
		"Role":      {"Designer"},
		"BirthDate": {"1996-01-15"},
		"Phone":     {"+31 6 9999 9999"},
	})
	assert.Equal(t, http.StatusFound, rec.Code)

	page := getEditPage(t, c, id, rec.Result().Cookies())
	require.Equal(t, http.StatusOK, page.Code)
	body := page.Body.String()
	assert.Contains(t, body, "This field is required")
	assert.Contains(t, body, `value="1996-01-15"`)
	assert.Contains(t, body, `value="+31 6 9999 9999"`)
	assert.Contains(t, body, `<option value="Designer" selected>`)
}

func TestWizkidController_SuccessfulSaveRedirectsToList(t *testing.T) {
	stored := wizkid.New("Sanne Bakker", wizkid.RoleDeveloper, time.Date(1995, time.July, 2, 0, 0, 0, 0, time.UTC))
	repo := &stubWizkidRepository{record: stored}
	c := newEditController(t, repo)

	rec := postEditForm(t, c, stored.ID().String(), url.Values{
		"Name":      {"Sanne de Vries"},
		"Role":      {"Developer"},
		"BirthDate": {"1995-07-02"},
	})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/wizkids", rec.Header().Get("Location"))
	assert.Equal(t, "Sanne de Vries", repo.record.Name())
}
