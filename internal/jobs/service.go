// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package jobs

import (
	"context"

	"github.com/hirefly/hirefly/internal/platform/apperr"
	"github.com/hirefly/hirefly/internal/platform/sec"
	"github.com/hirefly/hirefly/pkg/pagination"
	"github.com/hirefly/hirefly/pkg/slug"
	"github.com/hirefly/hirefly/pkg/uuid"
)

// Service implements job-posting use cases.
type Service struct {
	repository Repository
}

// NewService constructs the jobs service.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// CreateInput holds the fields for a new posting.
type CreateInput struct {
	Title        string
	Description  string
	Location     string
	Salary       string
	Experience   string
	Type         string
	TechStack    []string
	Requirements []string
	CompanyName  string
}

// Create publishes a new posting owned by the calling account. The slug is
// derived from the title plus the tail of the ID so two postings with the
// same title never collide. The tail is the random segment of a UUIDv7; the
// head is a timestamp and repeats across postings created close together.
func (service *Service) Create(ctx context.Context, ownerID string, input CreateInput) (*Job, error) {
	id := uuid.New()

	job := &Job{
		ID:           id,
		Slug:         slug.From(input.Title) + "-" + id[len(id)-8:],
		Title:        input.Title,
		Description:  input.Description,
		Location:     input.Location,
		Salary:       input.Salary,
		Experience:   input.Experience,
		Type:         input.Type,
		TechStack:    input.TechStack,
		Requirements: input.Requirements,
		CompanyName:  input.CompanyName,
		UserID:       ownerID,
	}

	if err := service.repository.Create(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

// Get retrieves a posting by slug, falling back to ID lookup so both URL
// styles resolve.
func (service *Service) Get(ctx context.Context, key string) (*Job, error) {
	job, err := service.repository.FindBySlug(ctx, key)
	if err == nil {
		return job, nil
	}

	return service.repository.FindByID(ctx, key)
}

// Update applies changes to a posting. Only the owner or an admin may update.
func (service *Service) Update(ctx context.Context, identity *sec.Identity, id string, input CreateInput) (*Job, error) {
	job, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeOwner(identity, job); err != nil {
		return nil, err
	}

	job.Title = input.Title
	job.Description = input.Description
	job.Location = input.Location
	job.Salary = input.Salary
	job.Experience = input.Experience
	job.Type = input.Type
	job.TechStack = input.TechStack
	job.Requirements = input.Requirements
	job.CompanyName = input.CompanyName

	if err := service.repository.Update(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

// Delete removes a posting. Only the owner or an admin may delete.
func (service *Service) Delete(ctx context.Context, identity *sec.Identity, id string) error {
	job, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authorizeOwner(identity, job); err != nil {
		return err
	}

	return service.repository.Delete(ctx, id)
}

// Apply records the calling account's application to a posting. Applying
// twice to the same posting is a conflict.
func (service *Service) Apply(ctx context.Context, identity *sec.Identity, jobID string) (*Application, error) {
	if identity == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	job, err := service.repository.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	application := &Application{
		ID:     uuid.New(),
		JobID:  job.ID,
		UserID: identity.AccountID,
	}

	if err := service.repository.Apply(ctx, application); err != nil {
		return nil, err
	}

	return application, nil
}

// ListApplications returns the applicants for a posting. Only the posting
// owner or an admin may see them.
func (service *Service) ListApplications(ctx context.Context, identity *sec.Identity, jobID string, params pagination.Params) ([]Application, pagination.Meta, error) {
	job, err := service.repository.FindByID(ctx, jobID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	if err := authorizeOwner(identity, job); err != nil {
		return nil, pagination.Meta{}, err
	}

	applications, total, err := service.repository.ListApplications(ctx, jobID, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return applications, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// List returns a filtered page of postings.
func (service *Service) List(ctx context.Context, filter Filter, params pagination.Params) ([]Job, pagination.Meta, error) {
	jobs, total, err := service.repository.List(ctx, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return jobs, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// authorizeOwner admits the posting owner and any admin.
func authorizeOwner(identity *sec.Identity, job *Job) error {
	if identity == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if identity.AccountID != job.UserID && !identity.Role.AtLeast(sec.RoleAdmin) {
		return apperr.Forbidden("Insufficient permissions")
	}
	return nil
}
