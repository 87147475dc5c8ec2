package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/resumes"
	"resume-parser/internal/shared/auth"
	"resume-parser/internal/shared/server/middleware"
)

const guestID = "11111111-1111-1111-1111-111111111111"

func newRouter(t *testing.T, svc *Service) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	signer, err := auth.NewSigner("k", false)
	if err != nil {
		t.Fatalf("signer: %v", err)
	}
	token, err := signer.Sign(auth.Claims{Sub: "google:1"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1", middleware.Auth(signer)))
	return router, token
}

func TestClaimGuestMigratesResumes(t *testing.T) {
	repo := resumes.NewMemoryRepo()
	for _, id := range []string{"r1", "r2"} {
		err := repo.Create(context.Background(), resumes.Resume{ID: id, UserID: "guest:" + guestID, UploadedAt: time.Now().UTC()})
		if err != nil {
			t.Fatalf("create resume: %v", err)
		}
	}
	router, token := newRouter(t, NewService(repo))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/claim-guest", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result ClaimResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.MigratedResumes != 2 {
		t.Fatalf("expected 2 migrated resumes, got %d", result.MigratedResumes)
	}

	owned, err := repo.ListByUser(context.Background(), "google:1", 10, 0)
	if err != nil {
		t.Fatalf("list resumes: %v", err)
	}
	if len(owned) != 2 {
		t.Fatalf("expected 2 resumes for user, got %d", len(owned))
	}
	left, _ := repo.CountByUser(context.Background(), "guest:"+guestID)
	if left != 0 {
		t.Fatalf("expected guest to own nothing, got %d", left)
	}
}

func TestClaimGuestRejectsGuestsAndBadIDs(t *testing.T) {
	router, token := newRouter(t, NewService(resumes.NewMemoryRepo()))

	guestOnly := httptest.NewRequest(http.MethodPost, "/api/v1/account/claim-guest", nil)
	guestOnly.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, guestOnly)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for guest caller, got %d", resp.Code)
	}

	for _, header := range []string{"", "not-a-uuid"} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/account/claim-guest", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		if header != "" {
			req.Header.Set("X-Guest-Id", header)
		}
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", header, resp.Code)
		}
	}
}

type failingReassigner struct{}

func (failingReassigner) Reassign(context.Context, string, string) (int, error) {
	return 0, errors.New("db down")
}

func TestClaimGuestServiceValidation(t *testing.T) {
	svc := NewService(resumes.NewMemoryRepo())
	if _, err := svc.ClaimGuest(context.Background(), "google:2", "google:1"); !errors.Is(err, ErrInvalidClaim) {
		t.Fatalf("expected ErrInvalidClaim, got %v", err)
	}
	if _, err := svc.ClaimGuest(context.Background(), "guest:a", "guest:b"); !errors.Is(err, ErrInvalidClaim) {
		t.Fatalf("expected ErrInvalidClaim, got %v", err)
	}
	if _, err := NewService(failingReassigner{}).ClaimGuest(context.Background(), "guest:a", "google:1"); err == nil {
		t.Fatalf("expected repo error")
	}
}
