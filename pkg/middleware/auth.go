package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/owow-nl/wizkid-manager/modules/core/domain/aggregates/user"
	"github.com/owow-nl/wizkid-manager/modules/core/domain/entities/session"
	"github.com/owow-nl/wizkid-manager/pkg/composables"
	"github.com/owow-nl/wizkid-manager/pkg/configuration"
)

// Authenticator resolves a session token to its user. Implemented by the
// core auth service.
type Authenticator interface {
	Authorize(ctx context.Context, token string) (user.User, *session.Session, error)
}

// Authorize resolves the session cookie into a user and session on the
// request context. When a valid session is present any lingering guest
// cookie is cleared; guest mode and a real account never coexist. Requests
// without a session fall through untouched so public routes keep working.
func Authorize(auth Authenticator) mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if c, err := r.Cookie(conf.GuestCookieKey); err == nil && c.Value == "1" {
				ctx = composables.WithGuest(ctx, true)
			}

			token, err := r.Cookie(conf.SidCookieKey)
			if err != nil {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			u, sess, err := auth.Authorize(ctx, token.Value)
			if err != nil {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if composables.UseGuest(ctx) {
				ctx = composables.WithGuest(ctx, false)
				http.SetCookie(w, &http.Cookie{
					Name:    conf.GuestCookieKey,
					Value:   "",
					Path:    "/",
					MaxAge:  -1,
					Expires: time.Unix(0, 0),
				})
			}

			if params, ok := composables.UseParams(ctx); ok {
				params.Authenticated = true
			}
			ctx = composables.WithUser(ctx, u)
			ctx = composables.WithSession(ctx, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RedirectNotAuthenticated sends anonymous requests to the login page.
// Guest mode counts as authenticated for viewing purposes.
func RedirectNotAuthenticated() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !composables.UseAuthenticated(ctx) && !composables.UseGuest(ctx) {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser rejects guest sessions; mutating routes need a real account.
func RequireUser() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !composables.UseAuthenticated(r.Context()) {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
