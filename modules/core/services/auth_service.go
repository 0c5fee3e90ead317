package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/owow-nl/wizkid-manager/modules/core/domain/aggregates/user"
	"github.com/owow-nl/wizkid-manager/modules/core/domain/entities/session"
	"github.com/owow-nl/wizkid-manager/pkg/composables"
	"github.com/owow-nl/wizkid-manager/pkg/configuration"
)

type AuthService struct {
	users    user.Repository
	sessions session.Repository
}

func NewAuthService(users user.Repository, sessions session.Repository) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
	}
}

// Authorize resolves a session token to its user. Expired sessions are
// deleted on sight and reported as not found.
func (s *AuthService) Authorize(ctx context.Context, token string) (user.User, *session.Session, error) {
	sess, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return user.User{}, nil, err
	}
	if sess.IsExpired() {
		if err := s.sessions.Delete(ctx, token); err != nil {
			composables.UseLogger(ctx).WithError(err).Error("failed to delete expired session")
		}
		return user.User{}, nil, composables.ErrNoSession
	}
	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return user.User{}, nil, err
	}
	return u, sess, nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (user.User, *session.Session, error) {
	logger := composables.UseLogger(ctx)
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return user.User{}, nil, err
	}
	if !u.CheckPassword(password) {
		logger.WithField("email", email).Warn("invalid password")
		return user.User{}, nil, composables.ErrInvalidPassword
	}
	sess, err := s.authenticate(ctx, u)
	if err != nil {
		return user.User{}, nil, err
	}
	return u, sess, nil
}

func (s *AuthService) SignUp(ctx context.Context, email, password string) (user.User, *session.Session, error) {
	u, err := user.New(email, password)
	if err != nil {
		return user.User{}, nil, err
	}
	created, err := s.users.Create(ctx, u)
	if err != nil {
		return user.User{}, nil, err
	}
	sess, err := s.authenticate(ctx, created)
	if err != nil {
		return user.User{}, nil, err
	}
	return created, sess, nil
}

func (s *AuthService) SignOut(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Cookie wraps the session token in the browser cookie the middleware
// expects.
func (s *AuthService) Cookie(sess *session.Session) *http.Cookie {
	conf := configuration.Use()
	domain := ""
	if conf.GoAppEnvironment == configuration.Production {
		domain = conf.Domain
	}
	return &http.Cookie{
		Name:     conf.SidCookieKey,
		Value:    sess.Token,
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   conf.GoAppEnvironment == configuration.Production,
		Domain:   domain,
		Path:     "/",
	}
}

func (s *AuthService) newSessionToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (s *AuthService) authenticate(ctx context.Context, u user.User) (*session.Session, error) {
	conf := configuration.Use()
	logger := composables.UseLogger(ctx)

	ip, ok := composables.UseIP(ctx)
	if !ok {
		logger.Warn("could not get IP, using default")
		ip = "0.0.0.0"
	}
	userAgent, ok := composables.UseUserAgent(ctx)
	if !ok {
		logger.Warn("could not get User-Agent, using default")
		userAgent = "Unknown"
	}

	token, err := s.newSessionToken()
	if err != nil {
		return nil, err
	}

	dto := &session.CreateDTO{
		Token:     token,
		UserID:    u.ID(),
		ExpiresAt: time.Now().Add(conf.SessionDuration),
		IP:        ip,
		UserAgent: userAgent,
	}
	sess := dto.ToEntity()
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}
