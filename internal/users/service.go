package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	Repo    Repo
	Resumes ResumeCounter
}

func NewService(repo Repo, resumes ResumeCounter) *Service {
	return &Service{Repo: repo, Resumes: resumes}
}

// UpsertFromGoogle records a Google sign-in. The user id is "google:<sub>"
// so it matches the subject of the issued session token.
func (s *Service) UpsertFromGoogle(ctx context.Context, googleSub, email, name, avatarURL string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	googleSub = strings.TrimSpace(googleSub)
	email = strings.TrimSpace(email)
	if googleSub == "" || email == "" {
		return User{}, fmt.Errorf("%w: google subject and email are required", ErrInvalidInput)
	}
	if strings.TrimSpace(name) == "" {
		name = email
	}
	return s.Repo.Upsert(ctx, User{
		ID:        SubjectFor(googleSub),
		Email:     email,
		Name:      strings.TrimSpace(name),
		AvatarURL: strings.TrimSpace(avatarURL),
		GoogleID:  googleSub,
	})
}

// SubjectFor maps a Google account id to the local user id.
func SubjectFor(googleSub string) string {
	return "google:" + googleSub
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID)
}

// Profile loads the user together with the number of stored resumes.
func (s *Service) Profile(ctx context.Context, userID string) (Profile, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	profile := Profile{User: user}
	if s.Resumes != nil {
		count, err := s.Resumes.CountByUser(ctx, userID)
		if err != nil {
			return Profile{}, fmt.Errorf("count resumes: %w", err)
		}
		profile.ResumeCount = count
	}
	return profile, nil
}
