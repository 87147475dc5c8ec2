package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	telemetry.SetOutput(&buf)
	t.Cleanup(func() { telemetry.SetOutput(os.Stdout) })

	router := gin.New()
	router.Use(RequestID(), Auth(newSigner(t)), Logging())
	router.GET("/api/v1/resumes/:id", func(c *gin.Context) {
		c.Set(ResumeIDKey, c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/r-1", nil)
	req.Header.Set("X-Guest-Id", "0b7c6f1e-2d4a-4c1b-9e8f-1a2b3c4d5e6f")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	last := lines[len(lines)-1]
	var payload map[string]any
	if err := json.Unmarshal([]byte(last), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}

	for _, key := range []string{"request_id", "user_id", "resume_id", "duration_ms", "status", "route"} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["msg"] != "request.complete" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["user_id"] != "guest:0b7c6f1e-2d4a-4c1b-9e8f-1a2b3c4d5e6f" {
		t.Fatalf("unexpected user_id: %v", payload["user_id"])
	}
	if payload["resume_id"] != "r-1" {
		t.Fatalf("unexpected resume_id: %v", payload["resume_id"])
	}
	if payload["route"] != "/api/v1/resumes/:id" {
		t.Fatalf("unexpected route: %v", payload["route"])
	}
	if payload["request_id"] != resp.Header().Get("X-Request-Id") {
		t.Fatalf("request id mismatch: %v vs %s", payload["request_id"], resp.Header().Get("X-Request-Id"))
	}
}
