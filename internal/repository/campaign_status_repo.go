package repository

import (
	"context"
	"errors"

	"earn_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CampaignStatusRepository persists per-slug activation overrides.
type CampaignStatusRepository struct {
	db *pgxpool.Pool
}

func NewCampaignStatusRepository(db *pgxpool.Pool) *CampaignStatusRepository {
	return &CampaignStatusRepository{db: db}
}

// Get returns the override for slug, or nil when none was ever stored.
func (r *CampaignStatusRepository) Get(ctx context.Context, slug string) (*domain.CampaignStatus, error) {
	var s domain.CampaignStatus
	err := r.db.QueryRow(ctx,
		`SELECT slug, is_active, updated_at FROM campaign_statuses WHERE slug = $1`,
		slug,
	).Scan(&s.Slug, &s.IsActive, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Set upserts the override and returns the stored row.
func (r *CampaignStatusRepository) Set(ctx context.Context, slug string, active bool) (*domain.CampaignStatus, error) {
	s := domain.CampaignStatus{Slug: slug}
	err := r.db.QueryRow(ctx,
		`INSERT INTO campaign_statuses (slug, is_active, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (slug) DO UPDATE SET is_active = EXCLUDED.is_active, updated_at = EXCLUDED.updated_at
		 RETURNING is_active, updated_at`,
		slug, active,
	).Scan(&s.IsActive, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns every stored override.
func (r *CampaignStatusRepository) List(ctx context.Context) ([]domain.CampaignStatus, error) {
	rows, err := r.db.Query(ctx, `SELECT slug, is_active, updated_at FROM campaign_statuses ORDER BY slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.CampaignStatus
	for rows.Next() {
		var s domain.CampaignStatus
		if err := rows.Scan(&s.Slug, &s.IsActive, &s.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}
