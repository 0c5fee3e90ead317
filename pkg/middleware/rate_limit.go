package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/owow-nl/wizkid-manager/pkg/composables"
	"github.com/owow-nl/wizkid-manager/pkg/configuration"
)

// RateLimit throttles requests per client IP using an in-memory store.
// Intended for the login and sign-up endpoints.
func RateLimit(rate limiter.Rate) mux.MiddlewareFunc {
	conf := configuration.Use()
	instance := limiter.New(memory.NewStore(), rate)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiterCtx, err := instance.Get(r.Context(), getRealIP(r, conf))
			if err != nil {
				logger := composables.UseLogger(r.Context())
				logger.WithError(err).Error("failed to check rate limit")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			if limiterCtx.Reached {
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
