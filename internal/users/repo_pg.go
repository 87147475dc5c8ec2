package users

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, user User) (User, error) {
	const query = `
INSERT INTO users (id, email, name, avatar_url, google_id, created_at, last_login)
VALUES ($1, $2, $3, $4, $5, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  name = EXCLUDED.name,
  avatar_url = EXCLUDED.avatar_url,
  google_id = EXCLUDED.google_id,
  last_login = now()
RETURNING created_at, last_login`
	err := r.DB.QueryRowContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		nullableString(user.AvatarURL),
		nullableString(user.GoogleID),
	).Scan(&user.CreatedAt, &user.LastLogin)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, email, name, avatar_url, google_id, created_at, last_login
FROM users
WHERE id = $1
LIMIT 1`
	var user User
	var avatarURL sql.NullString
	var googleID sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&avatarURL,
		&googleID,
		&user.CreatedAt,
		&user.LastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.AvatarURL = avatarURL.String
	user.GoogleID = googleID.String
	return user, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
