// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package companies

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hirefly/hirefly/internal/platform/middleware"
	requestutil "github.com/hirefly/hirefly/internal/platform/request"
	"github.com/hirefly/hirefly/internal/platform/respond"
	"github.com/hirefly/hirefly/internal/platform/validate"
	"github.com/hirefly/hirefly/pkg/pagination"
)

// Handler exposes the company-page endpoints.
type Handler struct {
	service *Service
	authn   *middleware.Authenticator
}

// NewHandler creates the companies HTTP handler.
func NewHandler(service *Service, authn *middleware.Authenticator) *Handler {
	return &Handler{service: service, authn: authn}
}

// Routes returns the router for the /companies subtree.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ── Public Browsing ──────────────────────────────────────────────
	router.Get("/", handler.list)
	router.Get("/{key}", handler.get)

	// ── Page Management ──────────────────────────────────────────────
	router.Group(func(protected chi.Router) {
		protected.Use(handler.authn.RequireToken)
		protected.Post("/", handler.create)
		protected.Put("/{id}", handler.update)
		protected.Delete("/{id}", handler.delete)
	})

	return router
}

type companyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	CompanySize string `json:"company_size"`
	Established int    `json:"established"`
	Website     string `json:"website"`
	LinkedIn    string `json:"linkedin"`
	Cover       string `json:"cover"`
}

func validateCompany(payload companyRequest) error {
	validator := &validate.Validator{}
	return validator.
		Required(FieldName, payload.Name).MaxLen(FieldName, payload.Name, 200).
		Required(FieldDescription, payload.Description).
		Custom(FieldEstablished, payload.Established != 0 && (payload.Established < 1800 || payload.Established > time.Now().Year()), "Must be a plausible year").
		Err()
}

func (payload companyRequest) toInput() CreateInput {
	return CreateInput{
		Name:        payload.Name,
		Description: payload.Description,
		Location:    payload.Location,
		CompanySize: payload.CompanySize,
		Established: payload.Established,
		Website:     payload.Website,
		LinkedIn:    payload.LinkedIn,
		Cover:       payload.Cover,
	}
}

// list handles GET /companies.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	companies, meta, err := handler.service.List(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, companies, meta)
}

// get handles GET /companies/{key} where key is a slug or an ID.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	company, err := handler.service.Get(request.Context(), requestutil.ID(request, "key"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, company)
}

// create handles POST /companies.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload companyRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validateCompany(payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	company, err := handler.service.Create(request.Context(), accountID, payload.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, company)
}

// update handles PUT /companies/{id}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload companyRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validateCompany(payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	company, err := handler.service.Update(request.Context(), identity, requestutil.ID(request, "id"), payload.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, company)
}

// delete handles DELETE /companies/{id}.
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
