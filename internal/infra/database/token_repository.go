package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aaacapital/site-api/internal/entity"
)

type TokenRepository struct {
	DB *sql.DB
}

func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{DB: db}
}

func (r *TokenRepository) Create(ctx context.Context, token *entity.DownloadToken) error {
	query := `
		INSERT INTO download_tokens (id, token_hash, resource_id, lead_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query,
		token.ID, token.TokenHash, token.ResourceID, token.LeadID,
		token.ExpiresAt, token.CreatedAt,
	)
	return err
}

func (r *TokenRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.DownloadToken, error) {
	query := `
		SELECT id, token_hash, resource_id, lead_id, expires_at, used_at, created_at
		FROM download_tokens
		WHERE token_hash = $1
	`

	var token entity.DownloadToken
	var usedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID, &token.TokenHash, &token.ResourceID, &token.LeadID,
		&token.ExpiresAt, &usedAt, &token.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if usedAt.Valid {
		token.UsedAt = &usedAt.Time
	}
	return &token, nil
}

// MarkUsed burns the token with a conditional update. The WHERE clause is
// what closes the double-serve race: of N concurrent callers exactly one
// sees rows-affected == 1.
func (r *TokenRepository) MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) (bool, error) {
	query := `
		UPDATE download_tokens
		SET used_at = $2
		WHERE id = $1 AND used_at IS NULL
	`
	result, err := r.DB.ExecContext(ctx, query, tokenID, usedAt)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// DeleteExpiredBefore clears tokens whose expiry is older than cutoff.
// Called by the sweeper; audit rows are untouched.
func (r *TokenRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM download_tokens WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
