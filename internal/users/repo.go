package users

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

type Repo interface {
	// Upsert creates the user or refreshes profile fields and last login.
	Upsert(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
}

// ResumeCounter reports how many resumes a user owns.
type ResumeCounter interface {
	CountByUser(ctx context.Context, userID string) (int, error)
}
