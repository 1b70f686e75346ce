// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package jobs

import "context"

// Repository defines the data access contract for job postings.
type Repository interface {
	Create(ctx context.Context, job *Job) error
	FindByID(ctx context.Context, id string) (*Job, error)
	FindBySlug(ctx context.Context, slug string) (*Job, error)
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter Filter, limit, offset int) ([]Job, int, error)

	// Apply records an application; a second application by the same account
	// to the same posting fails with a conflict.
	Apply(ctx context.Context, application *Application) error

	// ListApplications returns a page of applications for one posting, newest
	// first, plus the total count.
	ListApplications(ctx context.Context, jobID string, limit, offset int) ([]Application, int, error)
}
