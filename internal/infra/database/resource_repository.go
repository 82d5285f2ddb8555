package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aaacapital/site-api/internal/entity"
)

type ResourceRepository struct {
	DB *sql.DB
}

func NewResourceRepository(db *sql.DB) *ResourceRepository {
	return &ResourceRepository{DB: db}
}

const resourceColumns = `id, title, slug, description, cover_url, pdf_url, pdf_public_id, campaign_tag, published, created_at, updated_at`

func (r *ResourceRepository) scanResource(row *sql.Row) (*entity.Resource, error) {
	var res entity.Resource
	var description, coverURL, campaignTag sql.NullString
	err := row.Scan(
		&res.ID, &res.Title, &res.Slug, &description, &coverURL,
		&res.PDFURL, &res.PDFPublicID, &campaignTag, &res.Published,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	res.Description = fromNull(description)
	res.CoverURL = fromNull(coverURL)
	res.CampaignTag = fromNull(campaignTag)
	return &res, nil
}

func (r *ResourceRepository) FindPublishedBySlug(ctx context.Context, slug string) (*entity.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE slug = $1 AND published = TRUE`
	return r.scanResource(r.DB.QueryRowContext(ctx, query, slug))
}

func (r *ResourceRepository) FindByID(ctx context.Context, id string) (*entity.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`
	return r.scanResource(r.DB.QueryRowContext(ctx, query, id))
}

// ListPublished feeds the public resources page; List feeds the admin one.
func (r *ResourceRepository) ListPublished(ctx context.Context) ([]*entity.Resource, error) {
	return r.list(ctx, true)
}

func (r *ResourceRepository) List(ctx context.Context) ([]*entity.Resource, error) {
	return r.list(ctx, false)
}

func (r *ResourceRepository) list(ctx context.Context, publishedOnly bool) ([]*entity.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources`
	if publishedOnly {
		query += ` WHERE published = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []*entity.Resource
	for rows.Next() {
		var res entity.Resource
		var description, coverURL, campaignTag sql.NullString
		if err := rows.Scan(
			&res.ID, &res.Title, &res.Slug, &description, &coverURL,
			&res.PDFURL, &res.PDFPublicID, &campaignTag, &res.Published,
			&res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, err
		}
		res.Description = fromNull(description)
		res.CoverURL = fromNull(coverURL)
		res.CampaignTag = fromNull(campaignTag)
		resources = append(resources, &res)
	}

	return resources, rows.Err()
}

func (r *ResourceRepository) Create(ctx context.Context, res *entity.Resource) error {
	query := `
		INSERT INTO resources (id, title, slug, description, cover_url, pdf_url, pdf_public_id, campaign_tag, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.DB.ExecContext(ctx, query,
		res.ID, res.Title, res.Slug, nullString(res.Description), nullString(res.CoverURL),
		res.PDFURL, res.PDFPublicID, nullString(res.CampaignTag), res.Published,
		res.CreatedAt, res.UpdatedAt,
	)
	return err
}

func (r *ResourceRepository) Update(ctx context.Context, res *entity.Resource) error {
	query := `
		UPDATE resources
		SET title = $2, slug = $3, description = $4, cover_url = $5,
		    pdf_url = $6, pdf_public_id = $7, campaign_tag = $8, published = $9,
		    updated_at = $10
		WHERE id = $1
	`
	res.UpdatedAt = time.Now()
	result, err := r.DB.ExecContext(ctx, query,
		res.ID, res.Title, res.Slug, nullString(res.Description), nullString(res.CoverURL),
		res.PDFURL, res.PDFPublicID, nullString(res.CampaignTag), res.Published,
		res.UpdatedAt,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ResourceRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM resources WHERE id = $1`, id)
	return err
}
