// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hirefly/hirefly/internal/platform/middleware"
	requestutil "github.com/hirefly/hirefly/internal/platform/request"
	"github.com/hirefly/hirefly/internal/platform/respond"
	"github.com/hirefly/hirefly/internal/platform/sec"
	"github.com/hirefly/hirefly/internal/platform/validate"
	"github.com/hirefly/hirefly/internal/users/auth"
	"github.com/hirefly/hirefly/pkg/pagination"
)

// Handler exposes the account endpoints.
type Handler struct {
	service *Service
	authn   *middleware.Authenticator
}

// NewHandler creates the account HTTP handler.
func NewHandler(service *Service, authn *middleware.Authenticator) *Handler {
	return &Handler{service: service, authn: authn}
}

// Routes returns the router for the /users subtree.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ── Self-Service ─────────────────────────────────────────────────
	router.Group(func(protected chi.Router) {
		protected.Use(handler.authn.RequireToken)
		protected.Get("/me", handler.getMe)
		protected.Patch("/me", handler.updateMe)
		protected.Delete("/me", handler.deleteMe)
	})

	// ── Admin Console ────────────────────────────────────────────────
	router.Group(func(admin chi.Router) {
		admin.Use(handler.authn.RequireRole(sec.RoleAdmin))
		admin.Get("/", handler.list)
		admin.Get("/{id}", handler.get)
		admin.Delete("/{id}", handler.delete)
	})

	return router
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	ImageURL  *string `json:"image_url"`
	Headline  *string `json:"headline"`
	Location  *string `json:"location"`
	LinkedIn  *string `json:"linkedin"`
}

// getMe handles GET /users/me.
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Get(request.Context(), accountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateMe handles PATCH /users/me.
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload updateProfileRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if payload.FirstName != nil {
		validator.Required(auth.FieldFirstName, *payload.FirstName).MaxLen(auth.FieldFirstName, *payload.FirstName, 100)
	}
	if payload.LastName != nil {
		validator.Required(auth.FieldLastName, *payload.LastName).MaxLen(auth.FieldLastName, *payload.LastName, 100)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateProfile(request.Context(), accountID, UpdateProfileInput{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		ImageURL:  payload.ImageURL,
		Headline:  payload.Headline,
		Location:  payload.Location,
		LinkedIn:  payload.LinkedIn,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// deleteMe handles DELETE /users/me.
func (handler *Handler) deleteMe(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), accountID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// list handles GET /users (admin).
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	users, meta, err := handler.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, meta)
}

// get handles GET /users/{id} (admin).
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// delete handles DELETE /users/{id} (admin).
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
