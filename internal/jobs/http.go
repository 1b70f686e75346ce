// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package jobs

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hirefly/hirefly/internal/platform/middleware"
	requestutil "github.com/hirefly/hirefly/internal/platform/request"
	"github.com/hirefly/hirefly/internal/platform/respond"
	"github.com/hirefly/hirefly/internal/platform/validate"
	"github.com/hirefly/hirefly/pkg/pagination"
)

// Handler exposes the job-posting endpoints.
type Handler struct {
	service *Service
	authn   *middleware.Authenticator
}

// NewHandler creates the jobs HTTP handler.
func NewHandler(service *Service, authn *middleware.Authenticator) *Handler {
	return &Handler{service: service, authn: authn}
}

// Routes returns the router for the /jobs subtree.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ── Public Browsing ──────────────────────────────────────────────
	router.Get("/", handler.list)
	router.Get("/{key}", handler.get)

	// ── Posting Management ───────────────────────────────────────────
	router.Group(func(protected chi.Router) {
		protected.Use(handler.authn.RequireToken)
		protected.Post("/", handler.create)
		protected.Put("/{id}", handler.update)
		protected.Delete("/{id}", handler.delete)

		protected.Post("/{id}/apply", handler.apply)
		protected.Get("/{id}/applications", handler.listApplications)
	})

	return router
}

type jobRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Location     string   `json:"location"`
	Salary       string   `json:"salary"`
	Experience   string   `json:"experience"`
	Type         string   `json:"type"`
	TechStack    []string `json:"tech_stack"`
	Requirements []string `json:"requirements"`
	CompanyName  string   `json:"company_name"`
}

// validateJob applies the shared rules for create and update payloads.
func validateJob(payload jobRequest) error {
	validator := &validate.Validator{}
	return validator.
		Required(FieldTitle, payload.Title).MaxLen(FieldTitle, payload.Title, 200).
		Required(FieldDescription, payload.Description).
		Required(FieldLocation, payload.Location).
		Required(FieldCompanyName, payload.CompanyName).
		OneOf(FieldExperience, payload.Experience, ExperienceJunior, ExperienceMid, ExperienceSenior, ExperiencePrincipal).
		OneOf(FieldType, payload.Type, TypeB2B, TypePermanent).
		Err()
}

func (payload jobRequest) toInput() CreateInput {
	return CreateInput{
		Title:        payload.Title,
		Description:  payload.Description,
		Location:     payload.Location,
		Salary:       payload.Salary,
		Experience:   payload.Experience,
		Type:         payload.Type,
		TechStack:    payload.TechStack,
		Requirements: payload.Requirements,
		CompanyName:  payload.CompanyName,
	}
}

// list handles GET /jobs with optional filter query parameters.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	filter := Filter{
		Search:     query.Get("search"),
		Experience: query.Get("experience"),
		Type:       query.Get("type"),
		Location:   query.Get("location"),
	}

	jobs, meta, err := handler.service.List(request.Context(), filter, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, jobs, meta)
}

// get handles GET /jobs/{key} where key is a slug or an ID.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	job, err := handler.service.Get(request.Context(), requestutil.ID(request, "key"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, job)
}

// create handles POST /jobs.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload jobRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validateJob(payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	job, err := handler.service.Create(request.Context(), accountID, payload.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, job)
}

// update handles PUT /jobs/{id}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload jobRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validateJob(payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	job, err := handler.service.Update(request.Context(), identity, requestutil.ID(request, "id"), payload.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, job)
}

// apply handles POST /jobs/{id}/apply.
func (handler *Handler) apply(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	application, err := handler.service.Apply(request.Context(), identity, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, application)
}

// listApplications handles GET /jobs/{id}/applications (owner or admin).
func (handler *Handler) listApplications(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	applications, meta, err := handler.service.ListApplications(
		request.Context(), identity, requestutil.ID(request, "id"), pagination.FromRequest(request),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, applications, meta)
}

// delete handles DELETE /jobs/{id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), identity, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
