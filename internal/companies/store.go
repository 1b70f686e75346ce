// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package companies

import "context"

// Repository defines the data access contract for company pages.
type Repository interface {
	Create(ctx context.Context, company *Company) error
	FindByID(ctx context.Context, id string) (*Company, error)
	FindBySlug(ctx context.Context, slug string) (*Company, error)
	Update(ctx context.Context, company *Company) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]Company, int, error)
}
