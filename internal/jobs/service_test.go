// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package jobs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirefly/hirefly/internal/jobs"
	"github.com/hirefly/hirefly/internal/platform/apperr"
	"github.com/hirefly/hirefly/internal/platform/sec"
	"github.com/hirefly/hirefly/pkg/pagination"
)

type memoryJobRepository struct {
	jobs         map[string]*jobs.Job
	applications []jobs.Application
}

func newMemoryJobRepository() *memoryJobRepository {
	return &memoryJobRepository{jobs: map[string]*jobs.Job{}}
}

func (m *memoryJobRepository) Create(ctx context.Context, job *jobs.Job) error {
	copied := *job
	m.jobs[job.ID] = &copied
	return nil
}

func (m *memoryJobRepository) FindByID(ctx context.Context, id string) (*jobs.Job, error) {
	job, found := m.jobs[id]
	if !found {
		return nil, apperr.NotFound("Job")
	}
	copied := *job
	return &copied, nil
}

func (m *memoryJobRepository) FindBySlug(ctx context.Context, slug string) (*jobs.Job, error) {
	for _, job := range m.jobs {
		if job.Slug == slug {
			copied := *job
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Job")
}

func (m *memoryJobRepository) Update(ctx context.Context, job *jobs.Job) error {
	if _, found := m.jobs[job.ID]; !found {
		return apperr.NotFound("Job")
	}
	copied := *job
	m.jobs[job.ID] = &copied
	return nil
}

func (m *memoryJobRepository) Delete(ctx context.Context, id string) error {
	if _, found := m.jobs[id]; !found {
		return apperr.NotFound("Job")
	}
	delete(m.jobs, id)
	return nil
}

func (m *memoryJobRepository) Apply(ctx context.Context, application *jobs.Application) error {
	for _, existing := range m.applications {
		if existing.JobID == application.JobID && existing.UserID == application.UserID {
			return apperr.Conflict("Application already exists")
		}
	}
	m.applications = append(m.applications, *application)
	return nil
}

func (m *memoryJobRepository) ListApplications(ctx context.Context, jobID string, limit, offset int) ([]jobs.Application, int, error) {
	matched := make([]jobs.Application, 0)
	for _, application := range m.applications {
		if application.JobID == jobID {
			matched = append(matched, application)
		}
	}
	return matched, len(matched), nil
}

func (m *memoryJobRepository) List(ctx context.Context, filter jobs.Filter, limit, offset int) ([]jobs.Job, int, error) {
	all := make([]jobs.Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		all = append(all, *job)
	}
	return all, len(all), nil
}

func goEngineerInput() jobs.CreateInput {
	return jobs.CreateInput{
		Title:       "Senior Go Engineer",
		Description: "Build the platform",
		Location:    "Remote",
		Experience:  jobs.ExperienceSenior,
		Type:        jobs.TypePermanent,
		CompanyName: "Hirefly",
	}
}

/*
TestService_Create verifies slug derivation and ownership assignment. The
slug suffix must stay unique even for postings created within the same
millisecond, so it has to come from the random part of the ID.
*/
func TestService_Create(t *testing.T) {
	repo := newMemoryJobRepository()
	service := jobs.NewService(repo)

	job, err := service.Create(context.Background(), "owner-1", goEngineerInput())
	require.NoError(t, err)

	assert.Equal(t, "owner-1", job.UserID)
	assert.Contains(t, job.Slug, "senior-go-engineer-")
	assert.Equal(t, job.ID[len(job.ID)-8:], job.Slug[len(job.Slug)-8:])

	// Same title, created back to back: the slugs must still differ even
	// though the time-ordered heads of both IDs are effectively equal.
	for range 8 {
		second, err := service.Create(context.Background(), "owner-1", goEngineerInput())
		require.NoError(t, err)
		assert.NotEqual(t, job.Slug, second.Slug)
	}
}

/*
TestService_Get verifies lookup by slug with ID fallback.
*/
func TestService_Get(t *testing.T) {
	repo := newMemoryJobRepository()
	service := jobs.NewService(repo)

	job, err := service.Create(context.Background(), "owner-1", goEngineerInput())
	require.NoError(t, err)

	bySlug, err := service.Get(context.Background(), job.Slug)
	require.NoError(t, err)
	assert.Equal(t, job.ID, bySlug.ID)

	byID, err := service.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, byID.ID)

	_, err = service.Get(context.Background(), "missing")
	assert.Error(t, err)
}

/*
TestService_Update_Authorization verifies that only the owner or an admin can
modify a posting.
*/
func TestService_Update_Authorization(t *testing.T) {
	repo := newMemoryJobRepository()
	service := jobs.NewService(repo)

	job, err := service.Create(context.Background(), "owner-1", goEngineerInput())
	require.NoError(t, err)

	changed := goEngineerInput()
	changed.Title = "Staff Go Engineer"

	// 1. A different member is refused with 403
	stranger := &sec.Identity{AccountID: "other", Role: sec.RoleMember}
	_, err = service.Update(context.Background(), stranger, job.ID, changed)
	require.Error(t, err)
	assert.Equal(t, 403, apperr.As(err).HTTPStatus)

	// 2. The owner may update
	owner := &sec.Identity{AccountID: "owner-1", Role: sec.RoleMember}
	updated, err := service.Update(context.Background(), owner, job.ID, changed)
	require.NoError(t, err)
	assert.Equal(t, "Staff Go Engineer", updated.Title)

	// 3. An admin may update someone else's posting
	admin := &sec.Identity{AccountID: "admin-1", Role: sec.RoleAdmin}
	_, err = service.Update(context.Background(), admin, job.ID, goEngineerInput())
	assert.NoError(t, err)
}

/*
TestService_Apply verifies application recording, the one-per-account rule,
and who may read the applicant list.
*/
func TestService_Apply(t *testing.T) {
	repo := newMemoryJobRepository()
	service := jobs.NewService(repo)
	pageOne := pagination.Params{Page: 1, Limit: 20}

	job, err := service.Create(context.Background(), "owner-1", goEngineerInput())
	require.NoError(t, err)

	applicant := &sec.Identity{AccountID: "member-1", Role: sec.RoleMember}

	// 1. First application succeeds
	application, err := service.Apply(context.Background(), applicant, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "member-1", application.UserID)

	// 2. Applying twice is a conflict
	_, err = service.Apply(context.Background(), applicant, job.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperr.As(err).HTTPStatus)

	// 3. Applicants cannot read the list; the owner can
	_, _, err = service.ListApplications(context.Background(), applicant, job.ID, pageOne)
	require.Error(t, err)
	assert.Equal(t, 403, apperr.As(err).HTTPStatus)

	owner := &sec.Identity{AccountID: "owner-1", Role: sec.RoleMember}
	applications, meta, err := service.ListApplications(context.Background(), owner, job.ID, pageOne)
	require.NoError(t, err)
	assert.Len(t, applications, 1)
	assert.Equal(t, 1, meta.Total)
}

/*
TestService_Delete_Authorization verifies delete follows the same owner-or-
admin rule.
*/
func TestService_Delete_Authorization(t *testing.T) {
	repo := newMemoryJobRepository()
	service := jobs.NewService(repo)

	job, err := service.Create(context.Background(), "owner-1", goEngineerInput())
	require.NoError(t, err)

	stranger := &sec.Identity{AccountID: "other", Role: sec.RoleMember}
	err = service.Delete(context.Background(), stranger, job.ID)
	require.Error(t, err)
	assert.Equal(t, 403, apperr.As(err).HTTPStatus)

	admin := &sec.Identity{AccountID: "admin-1", Role: sec.RoleAdmin}
	require.NoError(t, service.Delete(context.Background(), admin, job.ID))

	_, err = service.Get(context.Background(), job.ID)
	assert.Error(t, err)
}
