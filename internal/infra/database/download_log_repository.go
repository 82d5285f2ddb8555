package database

import (
	"context"
	"database/sql"

	"github.com/aaacapital/site-api/internal/entity"
)

// DownloadLogRepository is the append-only audit ledger. There is no
// update or delete path on purpose.
type DownloadLogRepository struct {
	DB *sql.DB
}

func NewDownloadLogRepository(db *sql.DB) *DownloadLogRepository {
	return &DownloadLogRepository{DB: db}
}

func (r *DownloadLogRepository) Create(ctx context.Context, dl *entity.ResourceDownload) error {
	query := `
		INSERT INTO resource_downloads (id, resource_id, lead_id, ip, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query,
		dl.ID, dl.ResourceID, dl.LeadID, dl.IP, dl.UserAgent, dl.CreatedAt,
	)
	return err
}

func (r *DownloadLogRepository) ListRecent(ctx context.Context, limit int) ([]*entity.ResourceDownload, error) {
	if limit <= 0 {
		limit = 200
	}

	query := `
		SELECT id, resource_id, lead_id, ip, user_agent, created_at
		FROM resource_downloads
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var downloads []*entity.ResourceDownload
	for rows.Next() {
		var dl entity.ResourceDownload
		if err := rows.Scan(&dl.ID, &dl.ResourceID, &dl.LeadID, &dl.IP, &dl.UserAgent, &dl.CreatedAt); err != nil {
			return nil, err
		}
		downloads = append(downloads, &dl)
	}

	return downloads, rows.Err()
}
