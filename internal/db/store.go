package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/david/rfp-finder/internal/models"
	"github.com/david/rfp-finder/internal/store"
)

// PgStore is the Postgres-backed record store. It carries the same
// whole-record upsert semantics as the in-memory store: an upsert replaces
// every column of an existing row.
type PgStore struct {
	pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

var _ store.Store = (*PgStore)(nil)

const selectCols = `id, title, organization, description, technology,
	budget_min, budget_max, deadline, posted_date, location, organization_type,
	contact_email, organization_website, document_url, is_priority, is_active`

func scanRfp(scan func(dest ...any) error) (models.Rfp, error) {
	var r models.Rfp
	var contactEmail, organizationWebsite, documentURL *string

	err := scan(
		&r.ID, &r.Title, &r.Organization, &r.Description, &r.Technology,
		&r.BudgetMin, &r.BudgetMax, &r.Deadline, &r.PostedDate, &r.Location, &r.OrganizationType,
		&contactEmail, &organizationWebsite, &documentURL, &r.IsPriority, &r.IsActive,
	)
	if err != nil {
		return r, err
	}

	if contactEmail != nil {
		r.ContactEmail = *contactEmail
	}
	if organizationWebsite != nil {
		r.OrganizationWebsite = *organizationWebsite
	}
	if documentURL != nil {
		r.DocumentURL = *documentURL
	}

	return r, nil
}

func (s *PgStore) Get(ctx context.Context, id uuid.UUID) (models.Rfp, error) {
	sql := fmt.Sprintf("SELECT %s FROM rfps WHERE id = $1", selectCols)
	row := s.pool.QueryRow(ctx, sql, id)

	r, err := scanRfp(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Rfp{}, store.ErrNotFound
		}
		return models.Rfp{}, fmt.Errorf("get rfp: %w", err)
	}
	return r, nil
}

func (s *PgStore) Upsert(ctx context.Context, rfp models.Rfp) (models.Rfp, error) {
	if rfp.ID == uuid.Nil {
		rfp.ID = uuid.New()
	}
	if rfp.PostedDate.IsZero() {
		rfp.PostedDate = time.Now()
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO rfps (
			id, title, organization, description, technology,
			budget_min, budget_max, deadline, posted_date, location, organization_type,
			contact_email, organization_website, document_url, is_priority, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			organization = EXCLUDED.organization,
			description = EXCLUDED.description,
			technology = EXCLUDED.technology,
			budget_min = EXCLUDED.budget_min,
			budget_max = EXCLUDED.budget_max,
			deadline = EXCLUDED.deadline,
			posted_date = EXCLUDED.posted_date,
			location = EXCLUDED.location,
			organization_type = EXCLUDED.organization_type,
			contact_email = EXCLUDED.contact_email,
			organization_website = EXCLUDED.organization_website,
			document_url = EXCLUDED.document_url,
			is_priority = EXCLUDED.is_priority,
			is_active = EXCLUDED.is_active
	`,
		rfp.ID, rfp.Title, rfp.Organization, rfp.Description, rfp.Technology,
		rfp.BudgetMin, rfp.BudgetMax, rfp.Deadline, rfp.PostedDate, rfp.Location, rfp.OrganizationType,
		nullIfEmpty(rfp.ContactEmail), nullIfEmpty(rfp.OrganizationWebsite), nullIfEmpty(rfp.DocumentURL),
		rfp.IsPriority, rfp.IsActive,
	)
	if err != nil {
		return models.Rfp{}, fmt.Errorf("upsert rfp: %w", err)
	}
	return rfp, nil
}

func (s *PgStore) All(ctx context.Context) ([]models.Rfp, error) {
	sql := fmt.Sprintf("SELECT %s FROM rfps", selectCols)
	rows, err := s.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("list rfps: %w", err)
	}
	defer rows.Close()

	var rfps []models.Rfp
	for rows.Next() {
		r, err := scanRfp(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan rfp: %w", err)
		}
		rfps = append(rfps, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return rfps, nil
}

func (s *PgStore) Count(ctx context.Context) (int, error) {
	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM rfps").Scan(&total); err != nil {
		return 0, fmt.Errorf("count rfps: %w", err)
	}
	return total, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
