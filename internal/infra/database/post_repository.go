package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aaacapital/site-api/internal/entity"
)

type PostRepository struct {
	DB *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{DB: db}
}

const postColumns = `id, title, slug, excerpt, markdown_content, cover_url, published, created_at, updated_at`

func (r *PostRepository) FindPublishedBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = $1 AND published = TRUE`

	var post entity.Post
	var excerpt, coverURL sql.NullString
	err := r.DB.QueryRowContext(ctx, query, slug).Scan(
		&post.ID, &post.Title, &post.Slug, &excerpt, &post.MarkdownContent,
		&coverURL, &post.Published, &post.CreatedAt, &post.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	post.Excerpt = fromNull(excerpt)
	post.CoverURL = fromNull(coverURL)
	return &post, nil
}

func (r *PostRepository) ListPublished(ctx context.Context) ([]*entity.Post, error) {
	return r.list(ctx, true)
}

func (r *PostRepository) List(ctx context.Context) ([]*entity.Post, error) {
	return r.list(ctx, false)
}

func (r *PostRepository) list(ctx context.Context, publishedOnly bool) ([]*entity.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts`
	if publishedOnly {
		query += ` WHERE published = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*entity.Post
	for rows.Next() {
		var post entity.Post
		var excerpt, coverURL sql.NullString
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Slug, &excerpt, &post.MarkdownContent,
			&coverURL, &post.Published, &post.CreatedAt, &post.UpdatedAt,
		); err != nil {
			return nil, err
		}
		post.Excerpt = fromNull(excerpt)
		post.CoverURL = fromNull(coverURL)
		posts = append(posts, &post)
	}

	return posts, rows.Err()
}

func (r *PostRepository) Create(ctx context.Context, post *entity.Post) error {
	query := `
		INSERT INTO posts (id, title, slug, excerpt, markdown_content, cover_url, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query,
		post.ID, post.Title, post.Slug, nullString(post.Excerpt), post.MarkdownContent,
		nullString(post.CoverURL), post.Published, post.CreatedAt, post.UpdatedAt,
	)
	return err
}

func (r *PostRepository) Update(ctx context.Context, post *entity.Post) error {
	post.UpdatedAt = time.Now()
	query := `
		UPDATE posts
		SET title = $2, slug = $3, excerpt = $4, markdown_content = $5,
		    cover_url = $6, published = $7, updated_at = $8
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query,
		post.ID, post.Title, post.Slug, nullString(post.Excerpt), post.MarkdownContent,
		nullString(post.CoverURL), post.Published, post.UpdatedAt,
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

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return err
}
