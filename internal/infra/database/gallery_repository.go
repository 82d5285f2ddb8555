package database

import (
	"context"
	"database/sql"

	"github.com/aaacapital/site-api/internal/entity"
)

type GalleryRepository struct {
	DB *sql.DB
}

func NewGalleryRepository(db *sql.DB) *GalleryRepository {
	return &GalleryRepository{DB: db}
}

const galleryColumns = `id, title, alt, category, event_month, event_year, featured, sort_order, published, url, public_id`

func (r *GalleryRepository) ListPublished(ctx context.Context) ([]*entity.GalleryItem, error) {
	return r.list(ctx, true)
}

func (r *GalleryRepository) List(ctx context.Context) ([]*entity.GalleryItem, error) {
	return r.list(ctx, false)
}

func (r *GalleryRepository) list(ctx context.Context, publishedOnly bool) ([]*entity.GalleryItem, error) {
	query := `SELECT ` + galleryColumns + ` FROM gallery_items`
	if publishedOnly {
		query += ` WHERE published = TRUE`
	}
	query += ` ORDER BY sort_order ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*entity.GalleryItem
	for rows.Next() {
		var item entity.GalleryItem
		var alt, eventMonth, eventYear sql.NullString
		if err := rows.Scan(
			&item.ID, &item.Title, &alt, &item.Category, &eventMonth, &eventYear,
			&item.Featured, &item.SortOrder, &item.Published, &item.URL, &item.PublicID,
		); err != nil {
			return nil, err
		}
		item.Alt = fromNull(alt)
		item.EventMonth = fromNull(eventMonth)
		item.EventYear = fromNull(eventYear)
		items = append(items, &item)
	}

	return items, rows.Err()
}

func (r *GalleryRepository) Create(ctx context.Context, item *entity.GalleryItem) error {
	query := `
		INSERT INTO gallery_items (id, title, alt, category, event_month, event_year, featured, sort_order, published, url, public_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.DB.ExecContext(ctx, query,
		item.ID, item.Title, nullString(item.Alt), item.Category,
		nullString(item.EventMonth), nullString(item.EventYear),
		item.Featured, item.SortOrder, item.Published, item.URL, item.PublicID,
	)
	return err
}

func (r *GalleryRepository) Update(ctx context.Context, item *entity.GalleryItem) error {
	query := `
		UPDATE gallery_items
		SET title = $2, alt = $3, category = $4, event_month = $5, event_year = $6,
		    featured = $7, sort_order = $8, published = $9, url = $10, public_id = $11
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query,
		item.ID, item.Title, nullString(item.Alt), item.Category,
		nullString(item.EventMonth), nullString(item.EventYear),
		item.Featured, item.SortOrder, item.Published, item.URL, item.PublicID,
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

func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM gallery_items WHERE id = $1`, id)
	return err
}
