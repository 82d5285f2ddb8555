package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aaacapital/site-api/internal/entity"
)

// SettingsRepository manages the single site_settings row.
type SettingsRepository struct {
	DB *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (*entity.SiteSettings, error) {
	query := `
		SELECT id, years_experience, clients_count, aum, claim_settlement, awards_count, show_stats
		FROM site_settings
		LIMIT 1
	`

	var s entity.SiteSettings
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&s.ID, &s.YearsExperience, &s.ClientsCount, &s.AUM,
		&s.ClaimSettlement, &s.AwardsCount, &s.ShowStats,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert updates the existing row if one exists, otherwise inserts.
func (r *SettingsRepository) Upsert(ctx context.Context, s *entity.SiteSettings) error {
	existing, err := r.Get(ctx)
	if err != nil {
		return err
	}

	if existing == nil {
		query := `
			INSERT INTO site_settings (id, years_experience, clients_count, aum, claim_settlement, awards_count, show_stats)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err := r.DB.ExecContext(ctx, query,
			s.ID, s.YearsExperience, s.ClientsCount, s.AUM,
			s.ClaimSettlement, s.AwardsCount, s.ShowStats,
		)
		return err
	}

	s.ID = existing.ID
	query := `
		UPDATE site_settings
		SET years_experience = $2, clients_count = $3, aum = $4,
		    claim_settlement = $5, awards_count = $6, show_stats = $7
		WHERE id = $1
	`
	_, err = r.DB.ExecContext(ctx, query,
		s.ID, s.YearsExperience, s.ClientsCount, s.AUM,
		s.ClaimSettlement, s.AwardsCount, s.ShowStats,
	)
	return err
}
