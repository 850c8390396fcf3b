// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package article

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mgoullet/scrib/internal/platform/middleware"
	requestutil "github.com/mgoullet/scrib/internal/platform/request"
	"github.com/mgoullet/scrib/internal/platform/respond"
	"github.com/mgoullet/scrib/internal/platform/validate"
	"github.com/mgoullet/scrib/pkg/pagination"
)

// Handler implements the article HTTP endpoints.
type Handler struct {
	articleService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{articleService: service}
}

// Routes returns a [chi.Router] configured with article routes.
//
// # Endpoints
//   - GET    /          : Lists articles (anonymous).
//   - GET    /{id}      : Article detail with comments (anonymous).
//   - POST   /          : Creates an article (authenticated).
//   - PUT    /{id}      : Updates an article (owner or admin).
//   - DELETE /{id}      : Deletes an article (owner or admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/", handler.create)
		protected.Put("/{id}", handler.update)
		protected.Delete("/{id}", handler.delete)
	})

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	articles, total, err := handler.articleService.List(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, articles, pagination.NewMeta(page.Page, page.Limit, total))
}

// articleID parses and validates the {id} route parameter, so malformed
// identifiers fail fast instead of reaching the database.
func articleID(request *http.Request) (string, error) {
	id := requestutil.Param(request, "id")
	return id, validate.New().UUID("id", id).Err()
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := articleID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.articleService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

// decodeInput parses and validates the mutable article fields.
func decodeInput(request *http.Request) (Input, error) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		return input, err
	}

	validator := validate.New().
		Required("title", input.Title).
		MaxLen("title", input.Title, MaxTitleLength).
		Required("body", input.Body).
		OneOf("priority", input.Priority, PriorityLow, PriorityMedium, PriorityHigh).
		Custom("themeId", input.ThemeID <= 0, "A valid theme is required")

	return input, validator.Err()
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := decodeInput(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.articleService.Create(request.Context(), callerID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, article)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := articleID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := decodeInput(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.articleService.Update(request.Context(), callerID, id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := articleID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.articleService.Delete(request.Context(), callerID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
