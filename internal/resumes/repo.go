package resumes

import (
	"context"

	"resume-parser/internal/parser"
)

// Repo persists resumes. Every lookup is scoped to the owning user.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, userID, resumeID string) (Resume, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	UpdateParsed(ctx context.Context, userID, resumeID string, record parser.Record) error
	// Delete removes the resume and returns it so callers can clean up storage.
	Delete(ctx context.Context, userID, resumeID string) (Resume, error)
	// Reassign moves every resume owned by fromUserID to toUserID.
	Reassign(ctx context.Context, fromUserID, toUserID string) (int, error)
}
