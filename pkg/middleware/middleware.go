package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/owow-nl/wizkid-manager/pkg/composables"
	"github.com/owow-nl/wizkid-manager/pkg/configuration"
	"github.com/owow-nl/wizkid-manager/pkg/constants"
)

// Provide stores a value in the request context under the given key.
func Provide(k constants.ContextKey, v interface{}) mux.MiddlewareFunc {
	return ContextKeyValue(k, func(r *http.Request, w http.ResponseWriter) interface{} {
		return v
	})
}

func ContextKeyValue(k constants.ContextKey, fn func(r *http.Request, w http.ResponseWriter) interface{}) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), k, fn(r, w))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithPool(pool *pgxpool.Pool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(composables.WithPool(r.Context(), pool)))
		})
	}
}

func RequestParams() mux.MiddlewareFunc {
	conf := configuration.Use()
	return ContextKeyValue(constants.ParamsKey, func(r *http.Request, w http.ResponseWriter) interface{} {
		return &composables.Params{
			Request:   r,
			Writer:    w,
			IP:        getRealIP(r, conf),
			UserAgent: r.UserAgent(),
		}
	})
}

func getRealIP(r *http.Request, conf *configuration.Configuration) string {
	if len(r.Header.Get(conf.RealIPHeader)) > 0 {
		return r.Header.Get(conf.RealIPHeader)
	}
	return r.RemoteAddr
}
