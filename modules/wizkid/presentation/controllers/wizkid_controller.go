package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	coreservices "github.com/owow-nl/wizkid-manager/modules/core/services"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/domain/aggregates/wizkid"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/infrastructure/persistence"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/presentation/mappers"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/presentation/templates/pages/wizkids"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/services"
	"github.com/owow-nl/wizkid-manager/pkg/application"
	"github.com/owow-nl/wizkid-manager/pkg/composables"
	"github.com/owow-nl/wizkid-manager/pkg/middleware"
	"github.com/owow-nl/wizkid-manager/pkg/shared"
)

func NewWizkidController(app application.Application) application.Controller {
	return &WizkidController{
		app:            app,
		wizkidService:  app.Service(services.WizkidService{}).(*services.WizkidService),
		profileService: app.Service(coreservices.ProfileService{}).(*coreservices.ProfileService),
	}
}

type WizkidController struct {
	app            application.Application
	wizkidService  *services.WizkidService
	profileService *coreservices.ProfileService
}

func (c *WizkidController) Key() string {
	return "/wizkids"
}

func (c *WizkidController) Register(r *mux.Router) {
	r.HandleFunc("/", c.Root).Methods(http.MethodGet)

	viewRouter := r.PathPrefix("/wizkids").Subrouter()
	viewRouter.Use(middleware.RedirectNotAuthenticated())
	viewRouter.HandleFunc("", c.List).Methods(http.MethodGet)

	editRouter := r.PathPrefix("/wizkids").Subrouter()
	editRouter.Use(
		middleware.RequireUser(),
		middleware.WithTransaction(),
	)
	editRouter.HandleFunc("/{id:[0-9a-fA-F-]+}/edit", c.GetEdit).Methods(http.MethodGet)
	editRouter.HandleFunc("/{id:[0-9a-fA-F-]+}/edit", c.PostEdit).Methods(http.MethodPost)
	editRouter.HandleFunc("/{id:[0-9a-fA-F-]+}/fire", c.GetFireConfirm).Methods(http.MethodGet)
	editRouter.HandleFunc("/{id:[0-9a-fA-F-]+}/fire", c.PostFire).Methods(http.MethodPost)
}

func (c *WizkidController) Root(w http.ResponseWriter, r *http.Request) {
	shared.Redirect(w, r, "/wizkids")
}

func (c *WizkidController) greeting(r *http.Request) string {
	if u, err := composables.UseUser(r.Context()); err == nil {
		return u.Email()
	}
	return "guest"
}

func (c *WizkidController) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := wizkid.Filter{
		Query: query.Get("q"),
		Role:  wizkid.Role(query.Get("role")),
	}
	view := query.Get("view")
	switch view {
	case wizkids.ViewGrid, wizkids.ViewCards, wizkids.ViewList:
	default:
		view = wizkids.ViewGrid
	}

	props := &wizkids.IndexProps{
		Query:    filter.Query,
		Role:     string(filter.Role),
		View:     view,
		Roles:    roleNames(),
		CanEdit:  composables.UseAuthenticated(r.Context()),
		Greeting: c.greeting(r),
	}

	all, err := c.wizkidService.GetAll(r.Context())
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to load wizkids")
		props.ErrorMessage = "Could not load the wizkid directory."
	} else {
		props.Wizkids = mappers.WizkidsToViewModels(filter.Apply(all), time.Now())
	}

	if err := wizkids.Index(props).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (c *WizkidController) canFire(r *http.Request) bool {
	u, err := composables.UseUser(r.Context())
	if err != nil {
		return false
	}
	p, err := c.profileService.GetByUserID(r.Context(), u.ID())
	if err != nil {
		return false
	}
	return p.Role() == string(wizkid.RoleBoss)
}

func (c *WizkidController) GetEdit(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	wk, err := c.wizkidService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, persistence.ErrWizkidNotFound) {
			http.NotFound(w, r)
			return
		}
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
	vm := mappers.WizkidToViewModel(wk, time.Now())
	// A failed save redirects back here; the values the user entered take
	// precedence over the stored record so their input is not lost.
	if len(entered) > 0 {
		vm.Name = entered["Name"]
		vm.Role = entered["Role"]
		vm.BirthDate = entered["BirthDate"]
		vm.Email = entered["Email"]
		vm.Phone = entered["Phone"]
	}
	props := &wizkids.EditProps{
		Wizkid:       vm,
		Roles:        roleNames(),
		CanFire:      c.canFire(r),
		ErrorMessage: string(errorMessage),
		ErrorsMap:    errorsMap,
	}
	if err := wizkids.Edit(props).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (c *WizkidController) PostEdit(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dto, err := composables.UseForm(&wizkid.UpdateDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errorsMap, ok := dto.Ok(r.Context()); !ok {
		shared.SetFlashMap(w, "errorsMap", errorsMap)
		shared.SetFlashMap(w, "values", editFormValues(dto))
		shared.Redirect(w, r, fmt.Sprintf("/wizkids/%s/edit", id))
		return
	}
	if _, err := c.wizkidService.Update(r.Context(), id, dto); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to update wizkid")
		shared.SetFlash(w, "error", []byte("Could not save the changes, please try again"))
		shared.SetFlashMap(w, "values", editFormValues(dto))
		shared.Redirect(w, r, fmt.Sprintf("/wizkids/%s/edit", id))
		return
	}
	shared.Redirect(w, r, "/wizkids")
}

func editFormValues(dto *wizkid.UpdateDTO) map[string]string {
	return map[string]string{
		"Name":      dto.Name,
		"Role":      dto.Role,
		"BirthDate": dto.BirthDate,
		"Email":     dto.Email,
		"Phone":     dto.Phone,
	}
}

func (c *WizkidController) GetFireConfirm(w http.ResponseWriter, r *http.Request) {
	if !c.canFire(r) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	id, err := shared.ParseUUID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	wk, err := c.wizkidService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, persistence.ErrWizkidNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	props := &wizkids.ConfirmProps{
		Wizkid: mappers.WizkidToViewModel(wk, time.Now()),
	}
	if err := wizkids.Confirm(props).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (c *WizkidController) PostFire(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := c.wizkidService.ToggleFired(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrForbidden) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("failed to toggle fired status")
		shared.SetFlash(w, "error", []byte("Could not change the status, please try again"))
		shared.Redirect(w, r, fmt.Sprintf("/wizkids/%s/edit", id))
		return
	}
	shared.Redirect(w, r, "/wizkids")
}

func roleNames() []string {
	roles := wizkid.Roles()
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	return names
}
