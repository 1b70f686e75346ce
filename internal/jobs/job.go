// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

// Package jobs implements the job-posting domain: public browsing plus
// authenticated posting management.
package jobs

import "time"

// Experience bands a posting can require.
const (
	ExperienceJunior    = "0-2"
	ExperienceMid       = "2-4"
	ExperienceSenior    = "4-6"
	ExperiencePrincipal = "6+"
)

// Engagement types.
const (
	TypeB2B       = "B2B"
	TypePermanent = "Permanent"
)

// Job represents a published job posting.
type Job struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Salary       string    `json:"salary,omitempty"`
	Experience   string    `json:"experience"`
	Type         string    `json:"type"`
	TechStack    []string  `json:"tech_stack,omitempty"`
	Requirements []string  `json:"requirements,omitempty"`
	CompanyName  string    `json:"company_name"`
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Application records a member applying to a posting. One application per
// account per posting.
type Application struct {
	ID             string    `json:"id"`
	JobID          string    `json:"job_id"`
	UserID         string    `json:"user_id"`
	ApplicantName  string    `json:"applicant_name,omitempty"`
	ApplicantEmail string    `json:"applicant_email,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Filter narrows a job listing query. Zero values mean "any".
type Filter struct {
	Search     string
	Experience string
	Type       string
	Location   string
}

// Field identifiers for validation.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldLocation    = "location"
	FieldExperience  = "experience"
	FieldType        = "type"
	FieldCompanyName = "company_name"
)
