// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mgoullet/scrib/internal/platform/middleware"
	requestutil "github.com/mgoullet/scrib/internal/platform/request"
	"github.com/mgoullet/scrib/internal/platform/respond"
	"github.com/mgoullet/scrib/internal/platform/validate"
	"github.com/mgoullet/scrib/pkg/pagination"
)

// Handler implements the comment HTTP endpoints.
type Handler struct {
	commentService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{commentService: service}
}

// ArticleRoutes returns the routes mounted under an article subtree
// (/articles/{articleID}/comments).
//
// # Endpoints
//   - GET  / : Lists the article's comments (anonymous).
//   - POST / : Attaches a comment (authenticated).
func (handler *Handler) ArticleRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listForArticle)
	router.With(middleware.RequireAuth).Post("/", handler.create)

	return router
}

// Routes returns the standalone comment routes (/comments).
//
// # Endpoints
//   - GET    /     : Lists all comments, paginated (anonymous).
//   - GET    /{id} : Comment detail (anonymous).
//   - PUT    /{id} : Updates a comment (owner or admin).
//   - DELETE /{id} : Deletes a comment (owner or admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Put("/{id}", handler.update)
		protected.Delete("/{id}", handler.delete)
	})

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	comments, total, err := handler.commentService.List(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := commentID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) listForArticle(writer http.ResponseWriter, request *http.Request) {
	articleID := requestutil.Param(request, "articleID")
	if err := validate.New().UUID("articleID", articleID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, err := handler.commentService.ListForArticle(request.Context(), articleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comments)
}

// bodyRequest carries the single mutable field of a comment.
type bodyRequest struct {
	Body string `json:"body"`
}

func decodeBody(request *http.Request) (string, error) {
	var input bodyRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		return "", err
	}

	validator := validate.New().
		Required("body", input.Body).
		MaxLen("body", input.Body, MaxBodyLength)

	return input.Body, validator.Err()
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	articleID := requestutil.Param(request, "articleID")
	if err := validate.New().UUID("articleID", articleID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	body, err := decodeBody(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Create(request.Context(), callerID, articleID, body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

// commentID parses and validates the {id} route parameter.
func commentID(request *http.Request) (string, error) {
	id := requestutil.Param(request, "id")
	return id, validate.New().UUID("id", id).Err()
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := commentID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	body, err := decodeBody(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Update(request.Context(), callerID, id, body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := commentID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.commentService.Delete(request.Context(), callerID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
