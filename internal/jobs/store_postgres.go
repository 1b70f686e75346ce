// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirefly/hirefly/internal/platform/dberr"
)

// PostgresRepository implements Repository against the core.job table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates the PostgreSQL job repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const jobColumns = `
	id, slug, title, description, location, salary, experience, type,
	techstack, requirements, companyname, userid, createdat, updatedat`

func scanJob(row pgx.Row) (*Job, error) {
	job := &Job{}
	err := row.Scan(
		&job.ID,
		&job.Slug,
		&job.Title,
		&job.Description,
		&job.Location,
		&job.Salary,
		&job.Experience,
		&job.Type,
		&job.TechStack,
		&job.Requirements,
		&job.CompanyName,
		&job.UserID,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return job, nil
}

// Create inserts a new posting.
func (repository *PostgresRepository) Create(ctx context.Context, job *Job) error {
	const query = `
		INSERT INTO core.job (
			id, slug, title, description, location, salary, experience, type,
			techstack, requirements, companyname, userid, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		job.ID, job.Slug, job.Title, job.Description, job.Location, job.Salary,
		job.Experience, job.Type, job.TechStack, job.Requirements,
		job.CompanyName, job.UserID, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Job")
	}

	return nil
}

// FindByID retrieves a posting by its primary key.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Job, error) {
	query := `SELECT ` + jobColumns + ` FROM core.job WHERE id = $1`

	job, err := scanJob(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Job")
	}

	return job, nil
}

// FindBySlug retrieves a posting by its URL slug.
func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Job, error) {
	query := `SELECT ` + jobColumns + ` FROM core.job WHERE slug = $1`

	job, err := scanJob(repository.pool.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "Job")
	}

	return job, nil
}

// Update persists changes to a posting's mutable fields.
func (repository *PostgresRepository) Update(ctx context.Context, job *Job) error {
	const query = `
		UPDATE core.job
		SET title = $2, description = $3, location = $4, salary = $5,
		    experience = $6, type = $7, techstack = $8, requirements = $9,
		    companyname = $10, updatedat = $11
		WHERE id = $1`

	job.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Location, job.Salary,
		job.Experience, job.Type, job.TechStack, job.Requirements,
		job.CompanyName, job.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Job")
	}

	return nil
}

// Delete removes a posting permanently.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := repository.pool.Exec(ctx, "DELETE FROM core.job WHERE id = $1", id)
	if err != nil {
		return dberr.Wrap(err, "Job")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "Job")
	}

	return nil
}

// List returns a filtered page of postings plus the total match count.
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]Job, int, error) {
	where, args := buildFilter(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM core.job" + where
	if err := repository.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_job_repo_count_failed: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM core.job%s ORDER BY createdat DESC LIMIT $%d OFFSET $%d`,
		jobColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_job_repo_list_failed: %w", err)
	}
	defer rows.Close()

	jobs := make([]Job, 0, limit)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_job_repo_scan_failed: %w", err)
		}
		jobs = append(jobs, *job)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_job_repo_rows_failed: %w", err)
	}

	return jobs, total, nil
}

// Apply inserts an application row. The (jobid, userid) unique constraint
// turns a repeat application into a conflict.
func (repository *PostgresRepository) Apply(ctx context.Context, application *Application) error {
	const query = `
		INSERT INTO core.jobapplication (id, jobid, userid, createdat)
		VALUES ($1, $2, $3, $4)`

	application.CreatedAt = time.Now()
	_, err := repository.pool.Exec(ctx, query,
		application.ID, application.JobID, application.UserID, application.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Application")
	}

	return nil
}

// ListApplications returns a page of applications for a posting with the
// applicant's name and email joined in.
func (repository *PostgresRepository) ListApplications(ctx context.Context, jobID string, limit, offset int) ([]Application, int, error) {
	var total int
	const countQuery = "SELECT COUNT(*) FROM core.jobapplication WHERE jobid = $1"
	if err := repository.pool.QueryRow(ctx, countQuery, jobID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_job_repo_application_count_failed: %w", err)
	}

	const query = `
		SELECT a.id, a.jobid, a.userid,
		       u.firstname || ' ' || u.lastname, u.email, a.createdat
		FROM core.jobapplication a
		JOIN users.account u ON u.id = a.userid
		WHERE a.jobid = $1
		ORDER BY a.createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(ctx, query, jobID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_job_repo_application_list_failed: %w", err)
	}
	defer rows.Close()

	applications := make([]Application, 0, limit)
	for rows.Next() {
		var application Application
		err := rows.Scan(
			&application.ID,
			&application.JobID,
			&application.UserID,
			&application.ApplicantName,
			&application.ApplicantEmail,
			&application.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_job_repo_application_scan_failed: %w", err)
		}
		applications = append(applications, application)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_job_repo_application_rows_failed: %w", err)
	}

	return applications, total, nil
}

// buildFilter assembles the WHERE clause and positional args for a Filter.
func buildFilter(filter Filter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	next := func() int { return len(args) + 1 }

	if filter.Search != "" {
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR companyname ILIKE $%d)", next(), next()))
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.Experience != "" {
		clauses = append(clauses, fmt.Sprintf("experience = $%d", next()))
		args = append(args, filter.Experience)
	}
	if filter.Type != "" {
		clauses = append(clauses, fmt.Sprintf("type = $%d", next()))
		args = append(args, filter.Type)
	}
	if filter.Location != "" {
		clauses = append(clauses, fmt.Sprintf("location ILIKE $%d", next()))
		args = append(args, "%"+filter.Location+"%")
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}
