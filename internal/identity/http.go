// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

// Package handler contains the HTTP delivery layer for identity use cases.
//
// # Architecture
//
// Handlers act as the "gatekeepers" to the system. They are responsible for:
//   - JSON Request parsing and strict input validation.
//   - Mapping HTTP contexts to service layer method calls.
//   - Standardizing JSON response formats.
//
// They contain NO business logic or database queries.
package identity

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mgoullet/scrib/internal/platform/apperr"
	requestutil "github.com/mgoullet/scrib/internal/platform/request"
	"github.com/mgoullet/scrib/internal/platform/respond"
	"github.com/mgoullet/scrib/internal/platform/validate"
)

// AuthResult is the fixed envelope of every authentication endpoint.
//
// Token is null whenever Result is false, so clients can branch on a single
// shape regardless of outcome.
type AuthResult struct {
	Result bool     `json:"result"`
	Token  *string  `json:"token"`
	Errors []string `json:"errors"`
}

// authSuccess wraps a signed token into a successful [AuthResult].
func authSuccess(token string) AuthResult {
	return AuthResult{Result: true, Token: &token, Errors: []string{}}
}

// authFailure maps a domain error into a failed [AuthResult] and its status.
func authFailure(err error) (int, AuthResult) {
	applicationError := apperr.As(err)
	if applicationError == nil {
		applicationError = apperr.Internal(err)
	}
	return applicationError.HTTPStatus, AuthResult{
		Result: false,
		Token:  nil,
		Errors: []string{applicationError.Message},
	}
}

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the user lifecycle entry points
// (Registration, Login, Password Reset).
type Handler struct {
	identityService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{identityService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /register        : Creates a new account and signs it in.
//   - POST /login           : Authenticates and returns a signed token.
//   - POST /forgot-password : Starts an enumeration-safe reset flow.
//   - POST /reset-password  : Redeems a reset token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)

	return router
}

// register handles POST /api/v1/auth/register requests.
//
// # Returns
//   - Writes HTTP 200 with {result:true, token} on success.
//   - Writes HTTP 409 when the email is already registered.
//   - Writes HTTP 422 when the applicant is underage.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input RegisterInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.JSON(writer, http.StatusBadRequest, AuthResult{
			Result: false, Token: nil, Errors: []string{"invalid JSON payload"},
		})
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	validator := validate.New().
		Required("email", input.Email).
		Email("email", input.Email).
		Required("displayName", input.DisplayName).
		Required("birthday", input.Birthday).
		MinLen("password", input.Password, 8)

	if validator.HasErrors() {
		status, body := authFailure(validator.Err())
		respond.JSON(writer, status, body)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	token, err := handler.identityService.Register(request.Context(), input)
	if err != nil {
		status, body := authFailure(err)
		respond.JSON(writer, status, body)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.JSON(writer, http.StatusOK, authSuccess(token))
}

// loginRequest represents the JSON payload expected for authentication.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login handles POST /api/v1/auth/login requests.
//
// # Returns
//   - Writes HTTP 200 with {result:true, token} on success.
//   - Writes HTTP 401 with a generic message for any credential failure.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.JSON(writer, http.StatusBadRequest, AuthResult{
			Result: false, Token: nil, Errors: []string{"invalid JSON payload"},
		})
		return
	}

	validator := validate.New().
		Required("email", input.Email).
		Required("password", input.Password)

	if validator.HasErrors() {
		status, body := authFailure(validator.Err())
		respond.JSON(writer, status, body)
		return
	}

	token, err := handler.identityService.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		status, body := authFailure(err)
		respond.JSON(writer, status, body)
		return
	}

	respond.JSON(writer, http.StatusOK, authSuccess(token))
}

// forgotPasswordRequest carries the email to start a reset for.
type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// forgotPassword handles POST /api/v1/auth/forgot-password requests.
//
// Always answers HTTP 202 for well-formed input, whether or not the account
// exists. The raw token travels out of band (mail delivery is wired at the
// composition root), never in this response.
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := validate.New().Required("email", input.Email).Email("email", input.Email).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.identityService.RequestPasswordReset(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusAccepted, map[string]string{
		"status": "accepted",
	})
}

// resetPasswordRequest carries a reset token and the replacement password.
type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// resetPassword handles POST /api/v1/auth/reset-password requests.
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := validate.New().
		Required("token", input.Token).
		MinLen("newPassword", input.NewPassword, 8)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.identityService.ResetPassword(request.Context(), input.Token, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// ─── Setup endpoints ────────────────────────────────────────────────────────

// SetupHandler exposes the role administration surface used to bootstrap a
// fresh deployment (creating roles and promoting the first administrator).
//
// These routes are deliberately unauthenticated and must be disabled or
// firewalled once bootstrap is done.
type SetupHandler struct {
	identityService *Service
}

// NewSetupHandler constructs a new [SetupHandler].
func NewSetupHandler(service *Service) *SetupHandler {
	return &SetupHandler{identityService: service}
}

// Routes returns a [chi.Router] configured with setup routes.
//
// # Endpoints
//   - GET    /roles                      : Lists defined roles.
//   - POST   /roles                      : Creates a role.
//   - GET    /users                      : Lists accounts.
//   - GET    /users/{email}/roles        : Lists an account's roles.
//   - POST   /users/{email}/roles/{role} : Grants a role.
//   - DELETE /users/{email}/roles/{role} : Revokes a role.
func (handler *SetupHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/roles", handler.listRoles)
	router.Post("/roles", handler.createRole)
	router.Get("/users", handler.listUsers)
	router.Get("/users/{email}/roles", handler.rolesOfUser)
	router.Post("/users/{email}/roles/{role}", handler.assignRole)
	router.Delete("/users/{email}/roles/{role}", handler.removeRole)

	return router
}

func (handler *SetupHandler) listRoles(writer http.ResponseWriter, request *http.Request) {
	roles, err := handler.identityService.ListRoles(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, roles)
}

// createRoleRequest carries the name of the role to define.
type createRoleRequest struct {
	Name string `json:"name"`
}

func (handler *SetupHandler) createRole(writer http.ResponseWriter, request *http.Request) {
	var input createRoleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}
	if err := validate.New().Required("name", input.Name).MaxLen("name", input.Name, 64).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.identityService.CreateRole(request.Context(), input.Name); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, map[string]string{"name": input.Name})
}

func (handler *SetupHandler) listUsers(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.identityService.ListUsers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, users)
}

func (handler *SetupHandler) rolesOfUser(writer http.ResponseWriter, request *http.Request) {
	email := requestutil.Param(request, "email")

	roles, err := handler.identityService.RolesOfEmail(request.Context(), email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, roles)
}

func (handler *SetupHandler) assignRole(writer http.ResponseWriter, request *http.Request) {
	email := requestutil.Param(request, "email")
	role := requestutil.Param(request, "role")

	if err := handler.identityService.AssignRole(request.Context(), email, role); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *SetupHandler) removeRole(writer http.ResponseWriter, request *http.Request) {
	email := requestutil.Param(request, "email")
	role := requestutil.Param(request, "role")

	if err := handler.identityService.RemoveRole(request.Context(), email, role); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
