// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package auth

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/hirefly/hirefly/internal/platform/middleware"
	requestutil "github.com/hirefly/hirefly/internal/platform/request"
	"github.com/hirefly/hirefly/internal/platform/respond"
	"github.com/hirefly/hirefly/internal/platform/validate"
)

// # HTTP Handler

// Handler exposes the authentication endpoints.
type Handler struct {
	service     *Service
	authn       *middleware.Authenticator
	frontendURL string
}

// NewHandler creates the auth HTTP handler.
func NewHandler(service *Service, authn *middleware.Authenticator, frontendURL string) *Handler {
	return &Handler{
		service:     service,
		authn:       authn,
		frontendURL: frontendURL,
	}
}

// Routes returns the router for the /auth subtree.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ── Public ───────────────────────────────────────────────────────
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	// Basic-credential login: the middleware verifies the credentials and
	// injects the identity; the handler only mints the token.
	router.With(middleware.BasicAuth(handler.service)).Post("/login/basic", handler.loginBasic)

	// Federated login round trip.
	router.Get("/google", handler.googleLogin)
	router.Get("/google/callback", handler.googleCallback)

	// ── Authenticated ────────────────────────────────────────────────
	router.Group(func(protected chi.Router) {
		protected.Use(handler.authn.RequireToken)
		protected.Post("/change-password", handler.changePassword)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user,omitempty"`
}

// # Endpoints

// register handles POST /auth/register.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {

	// ── 1. Decode & Validate ─────────────────────────────────────────
	var payload registerRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		Required(FieldFirstName, payload.FirstName).MaxLen(FieldFirstName, payload.FirstName, 100).
		Required(FieldLastName, payload.LastName).MaxLen(FieldLastName, payload.LastName, 100).
		Required(FieldEmail, payload.Email).Email(FieldEmail, payload.Email).
		Required(FieldPassword, payload.Password).MinLen(FieldPassword, payload.Password, 8).MaxLen(FieldPassword, payload.Password, 72).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Create Account ────────────────────────────────────────────
	user, err := handler.service.Register(request.Context(), RegisterInput{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Password:  payload.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

// login handles POST /auth/login.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {

	// ── 1. Decode & Validate ─────────────────────────────────────────
	var payload loginRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		Required(FieldEmail, payload.Email).
		Required(FieldPassword, payload.Password).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Verify & Issue Token ──────────────────────────────────────
	result, err := handler.service.Login(request.Context(), LoginInput{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tokenResponse{
		AccessToken: result.AccessToken,
		User:        result.User,
	})
}

// loginBasic handles POST /auth/login/basic. The BasicAuth middleware has
// already verified the credentials by the time this runs.
func (handler *Handler) loginBasic(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	accessToken, err := handler.service.IssueToken(request.Context(), accountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tokenResponse{AccessToken: accessToken})
}

// changePassword handles POST /auth/change-password.
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {

	// ── 1. Resolve Caller ────────────────────────────────────────────
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Decode & Validate ─────────────────────────────────────────
	var payload changePasswordRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err = validator.
		Required(FieldCurrentPassword, payload.CurrentPassword).
		Required(FieldNewPassword, payload.NewPassword).MinLen(FieldNewPassword, payload.NewPassword, 8).MaxLen(FieldNewPassword, payload.NewPassword, 72).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Rotate ────────────────────────────────────────────────────
	if err := handler.service.ChangePassword(request.Context(), accountID, payload.CurrentPassword, payload.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Federated Login Endpoints

// googleLogin handles GET /auth/google: it mints a single-use state and
// redirects the browser to the provider's consent screen.
func (handler *Handler) googleLogin(writer http.ResponseWriter, request *http.Request) {
	authURL, err := handler.service.BeginFederatedLogin(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.Redirect(writer, request, authURL, http.StatusFound)
}

// googleCallback handles GET /auth/google/callback: it completes the exchange
// and hands the access token to the frontend via a redirect query parameter.
func (handler *Handler) googleCallback(writer http.ResponseWriter, request *http.Request) {
	state := request.URL.Query().Get("state")
	code := request.URL.Query().Get("code")

	result, err := handler.service.CompleteFederatedLogin(request.Context(), state, code)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	redirect := handler.frontendURL + "?accessToken=" + url.QueryEscape(result.AccessToken)
	http.Redirect(writer, request, redirect, http.StatusFound)
}
