// Package account moves guest data onto a signed-in user.
package account

import (
	"context"
	"errors"
	"strings"

	"resume-parser/internal/shared/server/middleware"
	"resume-parser/internal/shared/telemetry"
)

// ErrInvalidClaim is returned when the source is not a guest or the target is.
var ErrInvalidClaim = errors.New("invalid guest claim")

// Reassigner moves owned records between user ids.
type Reassigner interface {
	Reassign(ctx context.Context, fromUserID, toUserID string) (int, error)
}

type Service struct {
	Resumes Reassigner
}

type ClaimResult struct {
	MigratedResumes int `json:"migratedResumes"`
}

func NewService(resumes Reassigner) *Service {
	return &Service{Resumes: resumes}
}

// ClaimGuest moves the guest's resumes to authedUserID.
func (s *Service) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (ClaimResult, error) {
	guestUserID = strings.TrimSpace(guestUserID)
	authedUserID = strings.TrimSpace(authedUserID)
	if !strings.HasPrefix(guestUserID, middleware.GuestPrefix) || authedUserID == "" ||
		strings.HasPrefix(authedUserID, middleware.GuestPrefix) {
		return ClaimResult{}, ErrInvalidClaim
	}

	n, err := s.Resumes.Reassign(ctx, guestUserID, authedUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	telemetry.Info("account.guest_claimed", map[string]any{"user_id": authedUserID, "migrated_resumes": n})
	return ClaimResult{MigratedResumes: n}, nil
}
