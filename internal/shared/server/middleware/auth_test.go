package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/shared/auth"
)

const testGuestID = "0b7c6f1e-2d4a-4c1b-9e8f-1a2b3c4d5e6f"

func newSigner(t *testing.T) *auth.Signer {
	t.Helper()
	signer, err := auth.NewSigner("test-secret", false)
	if err != nil {
		t.Fatalf("signer: %v", err)
	}
	return signer
}

func whoAmI(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"userId": UserIDFromContext(c), "guest": IsGuest(c), "email": UserEmailFromContext(c)})
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(newSigner(t)))
	router.OPTIONS("/api/v1/resumes", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/resumes", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestAuthIdentities(t *testing.T) {
	gin.SetMode(gin.TestMode)
	signer := newSigner(t)
	token, err := signer.Sign(auth.Claims{Sub: "google:7", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	router := gin.New()
	router.Use(Auth(signer))
	router.GET("/me", whoAmI)

	tests := []struct {
		name       string
		header     string
		value      string
		wantStatus int
		wantBody   string
	}{
		{name: "jwt", header: "Authorization", value: "Bearer " + token, wantStatus: http.StatusOK, wantBody: `"userId":"google:7"`},
		{name: "guest", header: "X-Guest-Id", value: testGuestID, wantStatus: http.StatusOK, wantBody: `"userId":"guest:` + testGuestID + `"`},
		{name: "guest not a uuid", header: "X-Guest-Id", value: "abc", wantStatus: http.StatusBadRequest},
		{name: "bad scheme", header: "Authorization", value: "Basic xyz", wantStatus: http.StatusUnauthorized},
		{name: "bad token", header: "Authorization", value: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "missing", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)
			if resp.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", resp.Code, tt.wantStatus, resp.Body.String())
			}
			if tt.wantBody != "" && !strings.Contains(resp.Body.String(), tt.wantBody) {
				t.Fatalf("body %s missing %s", resp.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(OptionalAuth(newSigner(t)))
	router.GET("/me", whoAmI)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/me", nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"userId":""`) {
		t.Fatalf("expected anonymous 200, got %d %s", resp.Code, resp.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer forged")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected forged token to be rejected, got %d", resp.Code)
	}
}
