package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/ulule/limiter/v3"

	"github.com/owow-nl/wizkid-manager/modules/core/domain/entities/session"
	"github.com/owow-nl/wizkid-manager/modules/core/infrastructure/persistence"
	"github.com/owow-nl/wizkid-manager/modules/core/presentation/templates/pages/login"
	"github.com/owow-nl/wizkid-manager/modules/core/services"
	"github.com/owow-nl/wizkid-manager/pkg/application"
	"github.com/owow-nl/wizkid-manager/pkg/composables"
	"github.com/owow-nl/wizkid-manager/pkg/configuration"
	"github.com/owow-nl/wizkid-manager/pkg/constants"
	"github.com/owow-nl/wizkid-manager/pkg/middleware"
	"github.com/owow-nl/wizkid-manager/pkg/shared"
)

type CredentialsDTO struct {
	Email    string `form:"Email" validate:"required,email"`
	Password string `form:"Password" validate:"required,min=8"`
}

func (d *CredentialsDTO) Ok(ctx context.Context) (map[string]string, bool) {
	errorMessages := map[string]string{}
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return errorMessages, true
	}
	for _, err := range errs.(validator.ValidationErrors) {
		switch err.Tag() {
		case "required":
			errorMessages[err.Field()] = "This field is required"
		case "email":
			errorMessages[err.Field()] = "Must be a valid email address"
		case "min":
			errorMessages[err.Field()] = "Password must be at least 8 characters"
		default:
			errorMessages[err.Field()] = "Invalid value"
		}
	}
	return errorMessages, len(errorMessages) == 0
}

func NewLoginController(app application.Application) application.Controller {
	return &LoginController{
		app:         app,
		authService: app.Service(services.AuthService{}).(*services.AuthService),
	}
}

type LoginController struct {
	app         application.Application
	authService *services.AuthService
}

func (c *LoginController) Key() string {
	return "/login"
}

func (c *LoginController) Register(r *mux.Router) {
	getRouter := r.PathPrefix("/").Subrouter()
	getRouter.HandleFunc("/login", c.GetLogin).Methods(http.MethodGet)
	getRouter.HandleFunc("/signup", c.GetSignUp).Methods(http.MethodGet)

	setRouter := r.PathPrefix("/").Subrouter()
	setRouter.Use(
		middleware.WithTransaction(),
		middleware.RateLimit(limiter.Rate{Period: time.Minute, Limit: 10}),
	)
	setRouter.HandleFunc("/login", c.PostLogin).Methods(http.MethodPost)
	setRouter.HandleFunc("/signup", c.PostSignUp).Methods(http.MethodPost)

	sessionRouter := r.PathPrefix("/").Subrouter()
	sessionRouter.Use(middleware.WithTransaction())
	sessionRouter.HandleFunc("/logout", c.Logout).Methods(http.MethodPost)

	r.HandleFunc("/guest", c.Guest).Methods(http.MethodPost)
}

func (c *LoginController) GetLogin(w http.ResponseWriter, r *http.Request) {
	c.renderForm(w, r, false)
}

func (c *LoginController) GetSignUp(w http.ResponseWriter, r *http.Request) {
	c.renderForm(w, r, true)
}

func (c *LoginController) renderForm(w http.ResponseWriter, r *http.Request, signUp bool) {
	errorsMap, err := composables.UseFlashMap[string, string](w, r, "errorsMap")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	errorMessage, err := composables.UseFlash(w, r, "error")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	props := &login.LoginProps{
		Email:        r.URL.Query().Get("email"),
		ErrorMessage: string(errorMessage),
		ErrorsMap:    errorsMap,
		SignUp:       signUp,
	}
	if err := login.Index(props).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (c *LoginController) PostLogin(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())
	dto, err := composables.UseForm(&CredentialsDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errorsMap, ok := dto.Ok(r.Context()); !ok {
		shared.SetFlashMap(w, "errorsMap", errorsMap)
		shared.Redirect(w, r, fmt.Sprintf("/login?email=%s", dto.Email))
		return
	}

	_, sess, err := c.authService.SignIn(r.Context(), dto.Email, dto.Password)
	if err != nil {
		logger.WithError(err).Warn("failed to authenticate user")
		if errors.Is(err, composables.ErrInvalidPassword) || errors.Is(err, persistence.ErrUserNotFound) {
			shared.SetFlash(w, "error", []byte("Invalid email or password"))
		} else {
			shared.SetFlash(w, "error", []byte("Something went wrong, please try again"))
		}
		shared.Redirect(w, r, fmt.Sprintf("/login?email=%s", dto.Email))
		return
	}

	c.establishSession(w, sess)
	shared.Redirect(w, r, "/wizkids")
}

func (c *LoginController) PostSignUp(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())
	dto, err := composables.UseForm(&CredentialsDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errorsMap, ok := dto.Ok(r.Context()); !ok {
		shared.SetFlashMap(w, "errorsMap", errorsMap)
		shared.Redirect(w, r, fmt.Sprintf("/signup?email=%s", dto.Email))
		return
	}

	_, sess, err := c.authService.SignUp(r.Context(), dto.Email, dto.Password)
	if err != nil {
		logger.WithError(err).Warn("failed to sign up user")
		shared.SetFlash(w, "error", []byte("Could not create the account, is the email already in use?"))
		shared.Redirect(w, r, fmt.Sprintf("/signup?email=%s", dto.Email))
		return
	}

	c.establishSession(w, sess)
	shared.Redirect(w, r, "/wizkids")
}

// Guest grants read-only access through a client-local cookie; no backend
// session is created.
func (c *LoginController) Guest(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	http.SetCookie(w, &http.Cookie{
		Name:     conf.GuestCookieKey,
		Value:    "1",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   conf.GoAppEnvironment == configuration.Production,
	})
	shared.Redirect(w, r, "/wizkids")
}

func (c *LoginController) Logout(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	if sess, err := composables.UseSession(r.Context()); err == nil {
		if err := c.authService.SignOut(r.Context(), sess.Token); err != nil {
			composables.UseLogger(r.Context()).WithError(err).Error("failed to delete session")
		}
	}
	for _, name := range []string{conf.SidCookieKey, conf.GuestCookieKey} {
		http.SetCookie(w, &http.Cookie{
			Name:    name,
			Value:   "",
			Path:    "/",
			MaxAge:  -1,
			Expires: time.Unix(0, 0),
		})
	}
	shared.Redirect(w, r, "/login")
}

func (c *LoginController) establishSession(w http.ResponseWriter, sess *session.Session) {
	http.SetCookie(w, c.authService.Cookie(sess))
}
