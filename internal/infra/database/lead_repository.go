package database

import (
	"context"
	"database/sql"

	"github.com/aaacapital/site-api/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, name, email, phone, city, interested_in, message, source, resource_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		lead.ID,
		lead.Name,
		lead.Email,
		nullString(lead.Phone),
		nullString(lead.City),
		nullString(lead.InterestedIn),
		nullString(lead.Message),
		lead.Source,
		nullString(lead.ResourceID),
		lead.CreatedAt,
	)

	return err
}

// List returns newest-first captured leads for the admin panel.
func (r *LeadRepository) List(ctx context.Context, limit int) ([]*entity.Lead, error) {
	if limit <= 0 {
		limit = 200
	}

	query := `
		SELECT id, name, email, phone, city, interested_in, message, source, resource_id, created_at
		FROM leads
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		var lead entity.Lead
		var phone, city, interestedIn, message, resourceID sql.NullString
		if err := rows.Scan(
			&lead.ID, &lead.Name, &lead.Email, &phone, &city,
			&interestedIn, &message, &lead.Source, &resourceID, &lead.CreatedAt,
		); err != nil {
			return nil, err
		}
		lead.Phone = fromNull(phone)
		lead.City = fromNull(city)
		lead.InterestedIn = fromNull(interestedIn)
		lead.Message = fromNull(message)
		lead.ResourceID = fromNull(resourceID)
		leads = append(leads, &lead)
	}

	return leads, rows.Err()
}
