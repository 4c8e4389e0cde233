// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eternize/eternize/internal/platform/apperr"
)

// # Profile Repository

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
FindByUserID retrieves the profile row for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Profile: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByUserID(context context.Context, userID string) (*Profile, error) {
	const query = `
		SELECT id, avatarurl, coverurl, updatedat
		FROM users.profile
		WHERE id = $1`

	profile := &Profile{}
	var avatarURL, coverURL *string

	err := repository.pool.QueryRow(context, query, userID).Scan(
		&profile.UserID,
		&avatarURL,
		&coverURL,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Profile")
		}
		return nil, fmt.Errorf("postgres_profile_repo_find_failed: %w", err)
	}

	if avatarURL != nil {
		profile.AvatarURL = *avatarURL
	}
	if coverURL != nil {
		profile.CoverURL = *coverURL
	}

	return profile, nil
}

/*
Upsert inserts or replaces the profile row for a user.

Parameters:
  - context: context.Context
  - profile: *Profile

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Upsert(context context.Context, profile *Profile) error {
	const query = `
		INSERT INTO users.profile (id, avatarurl, coverurl, updatedat)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4)
		ON CONFLICT (id) DO UPDATE
		SET avatarurl = EXCLUDED.avatarurl,
		    coverurl  = EXCLUDED.coverurl,
		    updatedat = EXCLUDED.updatedat`

	profile.UpdatedAt = time.Now()

	_, err := repository.pool.Exec(context, query,
		profile.UserID,
		profile.AvatarURL,
		profile.CoverURL,
		profile.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_profile_repo_upsert_failed: %w", err)
	}

	return nil
}
