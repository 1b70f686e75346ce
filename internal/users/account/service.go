// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

// Package account implements profile self-service and administrative account
// management on top of the auth domain's account store.
package account

import (
	"context"
	"fmt"

	"github.com/hirefly/hirefly/internal/users/auth"
	"github.com/hirefly/hirefly/pkg/pagination"
)

// Service implements account profile use cases.
type Service struct {
	users auth.UserRepository
}

// NewService constructs the account service.
func NewService(users auth.UserRepository) *Service {
	return &Service{users: users}
}

// UpdateProfileInput holds the mutable profile fields. A nil field is left
// unchanged; an empty string clears the value.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	ImageURL  *string
	Headline  *string
	Location  *string
	LinkedIn  *string
}

// Get returns a single account by ID.
func (service *Service) Get(ctx context.Context, accountID string) (*auth.User, error) {
	return service.users.FindByID(ctx, accountID)
}

// UpdateProfile applies a partial profile update. It never touches the
// password hash, email, or role.
func (service *Service) UpdateProfile(ctx context.Context, accountID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.users.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.ImageURL != nil {
		user.ImageURL = *input.ImageURL
	}
	if input.Headline != nil {
		user.Headline = *input.Headline
	}
	if input.Location != nil {
		user.Location = *input.Location
	}
	if input.LinkedIn != nil {
		user.LinkedIn = *input.LinkedIn
	}

	if err := service.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	return user, nil
}

// Delete removes an account permanently.
func (service *Service) Delete(ctx context.Context, accountID string) error {
	return service.users.Delete(ctx, accountID)
}

// List returns a page of accounts for the admin console.
func (service *Service) List(ctx context.Context, params pagination.Params) ([]auth.User, pagination.Meta, error) {
	users, total, err := service.users.List(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return users, pagination.NewMeta(params.Page, params.Limit, total), nil
}
