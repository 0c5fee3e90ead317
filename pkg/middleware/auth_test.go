package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owow-nl/wizkid-manager/modules/core/domain/aggregates/user"
	"github.com/owow-nl/wizkid-manager/modules/core/domain/entities/session"
	"github.com/owow-nl/wizkid-manager/pkg/composables"
	"github.com/owow-nl/wizkid-manager/pkg/configuration"
	"github.com/owow-nl/wizkid-manager/pkg/middleware"
)

type fakeAuthenticator struct {
	user user.User
	sess *session.Session
	err  error
}

func (f *fakeAuthenticator) Authorize(ctx context.Context, token string) (user.User, *session.Session, error) {
	if f.err != nil {
		return user.User{}, nil, f.err
	}
	return f.user, f.sess, nil
}

func newAuthRouter(t *testing.T, auth middleware.Authenticator, handler http.HandlerFunc) *mux.Router {
	t.Helper()
	r := mux.NewRouter()
	r.Use(middleware.RequestParams(), middleware.Authorize(auth), middleware.RedirectNotAuthenticated())
	r.HandleFunc("/wizkids", handler).Methods(http.MethodGet)
	return r
}

func TestRedirectNotAuthenticated_AnonymousIsRedirected(t *testing.T) {
	listRendered := false
	router := newAuthRouter(t, &fakeAuthenticator{err: gerrors.New("no session")}, func(w http.ResponseWriter, r *http.Request) {
		listRendered = true
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wizkids", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.False(t, listRendered, "record list must never render for anonymous requests")
}

func TestRedirectNotAuthenticated_GuestPasses(t *testing.T) {
	conf := configuration.Use()
	var sawGuest bool
	router := newAuthRouter(t, &fakeAuthenticator{err: gerrors.New("no session")}, func(w http.ResponseWriter, r *http.Request) {
		sawGuest = composables.UseGuest(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/wizkids", nil)
	req.AddCookie(&http.Cookie{Name: conf.GuestCookieKey, Value: "1"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sawGuest)
}

func TestAuthorize_SessionClearsGuestMode(t *testing.T) {
	conf := configuration.Use()
	u, err := user.New("boss@owow.nl", "wizkids2000")
	require.NoError(t, err)
	auth := &fakeAuthenticator{
		user: u,
		sess: &session.Session{Token: "tok", UserID: u.ID(), ExpiresAt: time.Now().Add(time.Hour)},
	}

	var sawGuest, sawUser, paramsAuthenticated bool
	router := newAuthRouter(t, auth, func(w http.ResponseWriter, r *http.Request) {
		sawGuest = composables.UseGuest(r.Context())
		sawUser = composables.UseAuthenticated(r.Context())
		if params, ok := composables.UseParams(r.Context()); ok {
			paramsAuthenticated = params.Authenticated
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/wizkids", nil)
	req.AddCookie(&http.Cookie{Name: conf.GuestCookieKey, Value: "1"})
	req.AddCookie(&http.Cookie{Name: conf.SidCookieKey, Value: "tok"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sawUser)
	assert.True(t, paramsAuthenticated)
	assert.False(t, sawGuest, "guest mode must not survive a real session")

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == conf.GuestCookieKey && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "guest cookie should be expired on the response")
}

func TestRequireUser_GuestIsRejected(t *testing.T) {
	conf := configuration.Use()
	r := mux.NewRouter()
	r.Use(middleware.Authorize(&fakeAuthenticator{err: gerrors.New("no session")}), middleware.RequireUser())
	reached := false
	r.HandleFunc("/wizkids/abc/edit", func(w http.ResponseWriter, r *http.Request) {
		reached = true
	})

	req := httptest.NewRequest(http.MethodGet, "/wizkids/abc/edit", nil)
	req.AddCookie(&http.Cookie{Name: conf.GuestCookieKey, Value: "1"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.False(t, reached)
}
