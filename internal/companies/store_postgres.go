// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package companies

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirefly/hirefly/internal/platform/dberr"
)

// PostgresRepository implements Repository against the core.company table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates the PostgreSQL company repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const companyColumns = `
	id, slug, name, description, location, companysize, established,
	website, linkedin, cover, userid, createdat, updatedat`

func scanCompany(row pgx.Row) (*Company, error) {
	company := &Company{}
	err := row.Scan(
		&company.ID,
		&company.Slug,
		&company.Name,
		&company.Description,
		&company.Location,
		&company.CompanySize,
		&company.Established,
		&company.Website,
		&company.LinkedIn,
		&company.Cover,
		&company.UserID,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return company, nil
}

// Create inserts a new company page.
func (repository *PostgresRepository) Create(ctx context.Context, company *Company) error {
	const query = `
		INSERT INTO core.company (
			id, slug, name, description, location, companysize, established,
			website, linkedin, cover, userid, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		company.ID, company.Slug, company.Name, company.Description,
		company.Location, company.CompanySize, company.Established,
		company.Website, company.LinkedIn, company.Cover, company.UserID,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Company")
	}

	return nil
}

// FindByID retrieves a company page by its primary key.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Company, error) {
	query := `SELECT ` + companyColumns + ` FROM core.company WHERE id = $1`

	company, err := scanCompany(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Company")
	}

	return company, nil
}

// FindBySlug retrieves a company page by its URL slug.
func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Company, error) {
	query := `SELECT ` + companyColumns + ` FROM core.company WHERE slug = $1`

	company, err := scanCompany(repository.pool.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "Company")
	}

	return company, nil
}

// Update persists changes to a company page's mutable fields.
func (repository *PostgresRepository) Update(ctx context.Context, company *Company) error {
	const query = `
		UPDATE core.company
		SET name = $2, description = $3, location = $4, companysize = $5,
		    established = $6, website = $7, linkedin = $8, cover = $9,
		    updatedat = $10
		WHERE id = $1`

	company.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		company.ID, company.Name, company.Description, company.Location,
		company.CompanySize, company.Established, company.Website,
		company.LinkedIn, company.Cover, company.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Company")
	}

	return nil
}

// Delete removes a company page permanently.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := repository.pool.Exec(ctx, "DELETE FROM core.company WHERE id = $1", id)
	if err != nil {
		return dberr.Wrap(err, "Company")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Company")
	}

	return nil
}

// List returns a page of company pages plus the total count.
func (repository *PostgresRepository) List(ctx context.Context, limit, offset int) ([]Company, int, error) {
	var total int
	if err := repository.pool.QueryRow(ctx, "SELECT COUNT(*) FROM core.company").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_company_repo_count_failed: %w", err)
	}

	query := `SELECT ` + companyColumns + ` FROM core.company ORDER BY name ASC LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_company_repo_list_failed: %w", err)
	}
	defer rows.Close()

	companies := make([]Company, 0, limit)
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_company_repo_scan_failed: %w", err)
		}
		companies = append(companies, *company)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_company_repo_rows_failed: %w", err)
	}

	return companies, total, nil
}
