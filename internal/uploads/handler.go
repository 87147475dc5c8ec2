// Package uploads lets browsers send resumes straight to object storage and
// then asks the resumes service to parse them.
package uploads

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/extract"
	"resume-parser/internal/resumes"
	"resume-parser/internal/shared/server/middleware"
	"resume-parser/internal/shared/server/respond"
	"resume-parser/internal/shared/storage/object"
	"resume-parser/internal/shared/telemetry"
)

const presignExpires = 15 * time.Minute

// Presigner issues direct upload URLs. The S3 object store implements it.
type Presigner interface {
	PresignPut(ctx context.Context, storageKey string, expires time.Duration) (string, error)
}

type Handler struct {
	Presigner Presigner
	Resumes   *resumes.Service
}

func NewHandler(presigner Presigner, svc *resumes.Service) *Handler {
	return &Handler{Presigner: presigner, Resumes: svc}
}

type presignRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

type presignResponse struct {
	UploadURL        string `json:"uploadUrl"`
	StorageKey       string `json:"storageKey"`
	ExpiresInSeconds int64  `json:"expiresInSeconds"`
}

type completeRequest struct {
	StorageKey string `json:"storageKey"`
	FileName   string `json:"fileName"`
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads/presign", h.presign)
	rg.POST("/uploads/complete", h.complete)
}

func (h *Handler) presign(c *gin.Context) {
	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	req.FileName = strings.TrimSpace(req.FileName)
	if req.FileName == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "fileName is required", nil)
		return
	}
	if _, err := extract.FormatFromFileName(req.FileName); err != nil {
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_format", err.Error(),
			gin.H{"allowed": extract.SupportedFormats()})
		return
	}
	if req.SizeBytes <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "sizeBytes is required", nil)
		return
	}
	if limit := h.Resumes.MaxUploadBytes; limit > 0 && req.SizeBytes > limit {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds upload limit", nil)
		return
	}

	key, err := object.NewKey(middleware.UserIDFromContext(c), req.FileName)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid fileName", nil)
		return
	}

	url, err := h.Presigner.PresignPut(c.Request.Context(), key, presignExpires)
	if err != nil {
		telemetry.Error("uploads.presign.failed", map[string]any{
			"err":         err.Error(),
			"key":         key,
			"contentType": req.ContentType,
			"sizeBytes":   req.SizeBytes,
			"request_id":  middleware.RequestIDFromContext(c),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate upload url", nil)
		return
	}

	respond.OK(c, presignResponse{
		UploadURL:        url,
		StorageKey:       key,
		ExpiresInSeconds: int64(presignExpires.Seconds()),
	})
}

func (h *Handler) complete(c *gin.Context) {
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Resumes.Import(c.Request.Context(), middleware.UserIDFromContext(c), req.StorageKey, req.FileName)
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "uploaded file not found", nil)
			return
		}
		resumes.WriteError(c, err)
		return
	}
	c.Set(middleware.ResumeIDKey, result.Resume.ID)
	respond.Created(c, resumes.NewUploadResponse(result))
}
