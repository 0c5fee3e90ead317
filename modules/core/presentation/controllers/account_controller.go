package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/owow-nl/wizkid-manager/modules/core/presentation/templates/pages/account"
	"github.com/owow-nl/wizkid-manager/modules/core/services"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/domain/aggregates/wizkid"
	"github.com/owow-nl/wizkid-manager/pkg/application"
	"github.com/owow-nl/wizkid-manager/pkg/composables"
	"github.com/owow-nl/wizkid-manager/pkg/configuration"
	"github.com/owow-nl/wizkid-manager/pkg/constants"
	"github.com/owow-nl/wizkid-manager/pkg/middleware"
	"github.com/owow-nl/wizkid-manager/pkg/shared"
)

type SettingsDTO struct {
	Role  string `form:"Role"`
	Phone string `form:"Phone"`
}

func (d *SettingsDTO) Ok(ctx context.Context) (map[string]string, bool) {
	errorMessages := map[string]string{}
	if err := constants.Validate.Struct(d); err != nil {
		errorMessages["Form"] = "Invalid form data"
	}
	if d.Role != "" && !wizkid.Role(d.Role).IsValid() {
		errorMessages["Role"] = "Unknown role"
	}
	return errorMessages, len(errorMessages) == 0
}

func NewAccountController(app application.Application) application.Controller {
	return &AccountController{
		app:            app,
		profileService: app.Service(services.ProfileService{}).(*services.ProfileService),
		avatarService:  app.Service(services.AvatarService{}).(*services.AvatarService),
	}
}

type AccountController struct {
	app            application.Application
	profileService *services.ProfileService
	avatarService  *services.AvatarService
}

func (c *AccountController) Key() string {
	return "/account"
}

func (c *AccountController) Register(r *mux.Router) {
	router := r.PathPrefix("/account").Subrouter()
	router.Use(
		middleware.RequireUser(),
		middleware.WithTransaction(),
	)
	router.HandleFunc("", c.Get).Methods(http.MethodGet)
	router.HandleFunc("", c.Post).Methods(http.MethodPost)
	router.HandleFunc("/avatar", c.PostAvatar).Methods(http.MethodPost)
}

func settingsFormValues(dto *SettingsDTO) map[string]string {
	return map[string]string{
		"Role":  dto.Role,
		"Phone": dto.Phone,
	}
}

func roleNames() []string {
	roles := wizkid.Roles()
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	return names
}

func (c *AccountController) Get(w http.ResponseWriter, r *http.Request) {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	p, err := c.profileService.GetByUserID(r.Context(), u.ID())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	errorMessage, err := composables.UseFlash(w, r, "error")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	errorsMap, err := composables.UseFlashMap[string, string](w, r, "errorsMap")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	entered, err := composables.UseFlashMap[string, string](w, r, "values")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	role, phone := p.Role(), p.Phone()
	// After a failed save the entered values win over the stored profile.
	if len(entered) > 0 {
		role = entered["Role"]
		phone = entered["Phone"]
	}
	props := &account.SettingsProps{
		Email:        u.Email(),
		Role:         role,
		Phone:        phone,
		AvatarURL:    p.AvatarURL(),
		Roles:        roleNames(),
		ErrorMessage: string(errorMessage),
		ErrorsMap:    errorsMap,
	}
	if err := account.Index(props).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (c *AccountController) Post(w http.ResponseWriter, r *http.Request) {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	dto, err := composables.UseForm(&SettingsDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errorsMap, ok := dto.Ok(r.Context()); !ok {
		shared.SetFlashMap(w, "errorsMap", errorsMap)
		shared.SetFlashMap(w, "values", settingsFormValues(dto))
		shared.Redirect(w, r, "/account")
		return
	}

	p, err := c.profileService.GetByUserID(r.Context(), u.ID())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if _, err := c.profileService.Upsert(r.Context(), p.WithRole(dto.Role).WithPhone(dto.Phone)); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to save profile")
		shared.SetFlash(w, "error", []byte("Could not save your profile, please try again"))
		shared.SetFlashMap(w, "values", settingsFormValues(dto))
	}
	shared.Redirect(w, r, "/account")
}

func (c *AccountController) PostAvatar(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	u, err := composables.UseUser(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	// 1 KiB of slack over the limit covers the multipart framing so an
	// oversized image reaches the service's size check instead of failing
	// mid-parse.
	r.Body = http.MaxBytesReader(w, r.Body, conf.MaxAvatarSize+1024)
	file, _, err := r.FormFile("Avatar")
	if err != nil {
		shared.SetFlash(w, "error", []byte("The selected file is too large or invalid"))
		shared.Redirect(w, r, "/account")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		shared.SetFlash(w, "error", []byte("Could not read the uploaded file"))
		shared.Redirect(w, r, "/account")
		return
	}

	url, err := c.avatarService.Upload(r.Context(), u.ID(), data)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAvatarTooLarge):
			shared.SetFlash(w, "error", []byte("Avatar must be 2 MB or smaller"))
		case errors.Is(err, services.ErrAvatarNotAnImage):
			shared.SetFlash(w, "error", []byte("Avatar must be an image"))
		default:
			composables.UseLogger(r.Context()).WithError(err).Error("failed to upload avatar")
			shared.SetFlash(w, "error", []byte("Could not upload the avatar, please try again"))
		}
		shared.Redirect(w, r, "/account")
		return
	}

	p, err := c.profileService.GetByUserID(r.Context(), u.ID())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if _, err := c.profileService.Upsert(r.Context(), p.WithAvatarURL(url)); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to save avatar url")
		shared.SetFlash(w, "error", []byte("Could not save the avatar, please try again"))
	}
	shared.Redirect(w, r, "/account")
}
