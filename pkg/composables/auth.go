package composables

import (
	"context"
	"errors"

	"github.com/owow-nl/wizkid-manager/modules/core/domain/aggregates/user"
	"github.com/owow-nl/wizkid-manager/modules/core/domain/entities/session"
	"github.com/owow-nl/wizkid-manager/pkg/constants"
)

var (
	ErrNoUser          = errors.New("no user in context")
	ErrNoSession       = errors.New("no session in context")
	ErrInvalidPassword = errors.New("invalid password")
)

func WithUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, constants.UserKey, u)
}

func UseUser(ctx context.Context) (user.User, error) {
	u, ok := ctx.Value(constants.UserKey).(user.User)
	if !ok || u.IsZero() {
		return user.User{}, ErrNoUser
	}
	return u, nil
}

func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, constants.SessionKey, sess)
}

func UseSession(ctx context.Context) (*session.Session, error) {
	sess, ok := ctx.Value(constants.SessionKey).(*session.Session)
	if !ok || sess == nil {
		return nil, ErrNoSession
	}
	return sess, nil
}

func WithGuest(ctx context.Context, guest bool) context.Context {
	return context.WithValue(ctx, constants.GuestKey, guest)
}

// UseGuest reports whether the request runs in guest mode. Guest mode never
// coexists with an authenticated user: the session middleware clears the
// flag as soon as a real session is observed.
func UseGuest(ctx context.Context) bool {
	guest, ok := ctx.Value(constants.GuestKey).(bool)
	return ok && guest
}

// UseAuthenticated reports whether a real (non-guest) session backs the
// request.
func UseAuthenticated(ctx context.Context) bool {
	_, err := UseUser(ctx)
	return err == nil
}
