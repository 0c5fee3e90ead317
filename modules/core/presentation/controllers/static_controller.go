package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/owow-nl/wizkid-manager/modules/core/presentation/assets"
	"github.com/owow-nl/wizkid-manager/pkg/application"
)

func NewStaticController() application.Controller {
	return &StaticController{}
}

type StaticController struct{}

func (c *StaticController) Key() string {
	return "/static"
}

func (c *StaticController) Register(r *mux.Router) {
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.FS(assets.FS))),
	)
}
