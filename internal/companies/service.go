// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package companies

import (
	"context"

	"github.com/hirefly/hirefly/internal/platform/apperr"
	"github.com/hirefly/hirefly/internal/platform/sec"
	"github.com/hirefly/hirefly/pkg/pagination"
	"github.com/hirefly/hirefly/pkg/slug"
	"github.com/hirefly/hirefly/pkg/uuid"
)

// Service implements company-page use cases.
type Service struct {
	repository Repository
}

// NewService constructs the companies service.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// CreateInput holds the fields for a new company page.
type CreateInput struct {
	Name        string
	Description string
	Location    string
	CompanySize string
	Established int
	Website     string
	LinkedIn    string
	Cover       string
}

// Create publishes a company page owned by the calling account.
func (service *Service) Create(ctx context.Context, ownerID string, input CreateInput) (*Company, error) {
	company := &Company{
		ID:          uuid.New(),
		Slug:        slug.From(input.Name),
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		CompanySize: input.CompanySize,
		Established: input.Established,
		Website:     input.Website,
		LinkedIn:    input.LinkedIn,
		Cover:       input.Cover,
		UserID:      ownerID,
	}

	if err := service.repository.Create(ctx, company); err != nil {
		return nil, err
	}

	return company, nil
}

// Get retrieves a company page by slug, falling back to ID lookup.
func (service *Service) Get(ctx context.Context, key string) (*Company, error) {
	company, err := service.repository.FindBySlug(ctx, key)
	if err == nil {
		return company, nil
	}

	return service.repository.FindByID(ctx, key)
}

// Update applies changes to a company page. Only the owner or an admin may update.
func (service *Service) Update(ctx context.Context, identity *sec.Identity, id string, input CreateInput) (*Company, error) {
	company, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeOwner(identity, company); err != nil {
		return nil, err
	}

	company.Name = input.Name
	company.Description = input.Description
	company.Location = input.Location
	company.CompanySize = input.CompanySize
	company.Established = input.Established
	company.Website = input.Website
	company.LinkedIn = input.LinkedIn
	company.Cover = input.Cover

	if err := service.repository.Update(ctx, company); err != nil {
		return nil, err
	}

	return company, nil
}

// Delete removes a company page. Only the owner or an admin may delete.
func (service *Service) Delete(ctx context.Context, identity *sec.Identity, id string) error {
	company, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authorizeOwner(identity, company); err != nil {
		return err
	}

	return service.repository.Delete(ctx, id)
}

// List returns a page of company pages ordered by name.
func (service *Service) List(ctx context.Context, params pagination.Params) ([]Company, pagination.Meta, error) {
	companies, total, err := service.repository.List(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return companies, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// authorizeOwner admits the page owner and any admin.
func authorizeOwner(identity *sec.Identity, company *Company) error {
	if identity == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if identity.AccountID != company.UserID && !identity.Role.AtLeast(sec.RoleAdmin) {
		return apperr.Forbidden("Insufficient permissions")
	}
	return nil
}
