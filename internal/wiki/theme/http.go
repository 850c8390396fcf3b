// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package theme

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mgoullet/scrib/internal/platform/apperr"
	"github.com/mgoullet/scrib/internal/platform/middleware"
	requestutil "github.com/mgoullet/scrib/internal/platform/request"
	"github.com/mgoullet/scrib/internal/platform/respond"
	"github.com/mgoullet/scrib/internal/platform/validate"
)

// Handler implements the theme HTTP endpoints.
type Handler struct {
	themeService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{themeService: service}
}

// Routes returns a [chi.Router] configured with theme routes. The whole
// surface is admin-only; the role is re-checked against the database on
// every call.
//
// # Endpoints
//   - GET    /     : Lists themes (admin).
//   - GET    /{id} : Theme detail (admin).
//   - POST   /     : Creates a theme (admin).
//   - PUT    /{id} : Renames a theme (admin).
//   - DELETE /{id} : Deletes a theme (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Post("/", handler.create)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

// themeID parses the {id} route parameter.
func themeID(request *http.Request) (int, error) {
	id, err := strconv.Atoi(requestutil.Param(request, "id"))
	if err != nil || id <= 0 {
		return 0, apperr.ValidationError("Theme id must be a positive integer")
	}
	return id, nil
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	themes, err := handler.themeService.List(request.Context(), callerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, themes)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := themeID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	theme, err := handler.themeService.Get(request.Context(), callerID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, theme)
}

// nameRequest carries the single mutable field of a theme.
type nameRequest struct {
	Name string `json:"name"`
}

func decodeName(request *http.Request) (string, error) {
	var input nameRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		return "", err
	}

	validator := validate.New().
		Required("name", input.Name).
		MaxLen("name", input.Name, 64)

	return input.Name, validator.Err()
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	name, err := decodeName(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	theme, err := handler.themeService.Create(request.Context(), callerID, name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, theme)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := themeID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	name, err := decodeName(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	theme, err := handler.themeService.Update(request.Context(), callerID, id, name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, theme)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := themeID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.themeService.Delete(request.Context(), callerID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
