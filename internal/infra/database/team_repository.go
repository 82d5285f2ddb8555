package database

import (
	"context"
	"database/sql"

	"github.com/aaacapital/site-api/internal/entity"
)

type TeamRepository struct {
	DB *sql.DB
}

func NewTeamRepository(db *sql.DB) *TeamRepository {
	return &TeamRepository{DB: db}
}

func (r *TeamRepository) ListPublished(ctx context.Context) ([]*entity.TeamMember, error) {
	return r.list(ctx, true)
}

func (r *TeamRepository) List(ctx context.Context) ([]*entity.TeamMember, error) {
	return r.list(ctx, false)
}

func (r *TeamRepository) list(ctx context.Context, publishedOnly bool) ([]*entity.TeamMember, error) {
	query := `SELECT id, name, role_title, bio, photo_url, sort_order, published FROM team_members`
	if publishedOnly {
		query += ` WHERE published = TRUE`
	}
	query += ` ORDER BY sort_order ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*entity.TeamMember
	for rows.Next() {
		var m entity.TeamMember
		var bio sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &m.RoleTitle, &bio, &m.PhotoURL, &m.SortOrder, &m.Published); err != nil {
			return nil, err
		}
		m.Bio = fromNull(bio)
		members = append(members, &m)
	}

	return members, rows.Err()
}

func (r *TeamRepository) Create(ctx context.Context, m *entity.TeamMember) error {
	query := `
		INSERT INTO team_members (id, name, role_title, bio, photo_url, sort_order, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query,
		m.ID, m.Name, m.RoleTitle, nullString(m.Bio), m.PhotoURL, m.SortOrder, m.Published,
	)
	return err
}

func (r *TeamRepository) Update(ctx context.Context, m *entity.TeamMember) error {
	query := `
		UPDATE team_members
		SET name = $2, role_title = $3, bio = $4, photo_url = $5, sort_order = $6, published = $7
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query,
		m.ID, m.Name, m.RoleTitle, nullString(m.Bio), m.PhotoURL, m.SortOrder, m.Published,
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

func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	return err
}
