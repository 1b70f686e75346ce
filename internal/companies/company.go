// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

// Package companies implements the company-page domain.
package companies

import "time"

// Company represents a public company page.
type Company struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	CompanySize string    `json:"company_size,omitempty"`
	Established int       `json:"established,omitempty"`
	Website     string    `json:"website,omitempty"`
	LinkedIn    string    `json:"linkedin,omitempty"`
	Cover       string    `json:"cover,omitempty"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Field identifiers for validation.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldEstablished = "established"
)
