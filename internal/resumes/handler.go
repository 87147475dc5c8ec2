package resumes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/extract"
	"resume-parser/internal/parser"
	"resume-parser/internal/shared/server/middleware"
	"resume-parser/internal/shared/server/respond"
)

// multipartOverhead leaves room for boundaries and headers around the file.
const multipartOverhead = 1 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches routes that need a caller identity.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.upload)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.DELETE("/resumes/:id", h.delete)
	rg.GET("/resumes/:id/recommendations", h.recommendations)
	rg.POST("/resumes/:id/reparse", h.reparse)
}

// RegisterPublicRoutes attaches routes that work without an identity.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/job-fields", h.jobFields)
	rg.POST("/recommendations", h.recommend)
}

func (h *Handler) upload(c *gin.Context) {
	if h.Svc.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Svc.MaxUploadBytes+multipartOverhead)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(c, ErrTooLarge)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file provided", nil)
		return
	}
	if fileHeader.Filename == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file selected", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	result, err := h.Svc.Upload(c.Request.Context(), middleware.UserIDFromContext(c), fileHeader.Filename, file)
	if err != nil {
		WriteError(c, err)
		return
	}

	c.Set(middleware.ResumeIDKey, result.Resume.ID)
	respond.Created(c, NewUploadResponse(result))
}

func (h *Handler) list(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be an integer", nil)
		return
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "offset must be an integer", nil)
		return
	}

	list, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		WriteError(c, err)
		return
	}
	out := make([]ResumeResponse, 0, len(list))
	for _, res := range list {
		out = append(out, toResponse(res, false))
	}
	respond.OK(c, gin.H{"resumes": out})
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)
	res, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	respond.OK(c, toResponse(res, true))
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		WriteError(c, err)
		return
	}
	respond.OK(c, gin.H{"id": id, "deleted": true})
}

func (h *Handler) recommendations(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)
	recs, err := h.Svc.Recommendations(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	respond.OK(c, gin.H{"recommendations": recs})
}

func (h *Handler) reparse(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)
	if h.Svc.Jobs != nil {
		if err := h.Svc.EnqueueReparse(c.Request.Context(), middleware.UserIDFromContext(c), id, middleware.RequestIDFromContext(c)); err != nil {
			WriteError(c, err)
			return
		}
		respond.Accepted(c, gin.H{"id": id, "queued": true})
		return
	}
	result, err := h.Svc.Reparse(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		WriteError(c, err)
		return
	}
	respond.OK(c, NewUploadResponse(result))
}

func (h *Handler) jobFields(c *gin.Context) {
	respond.OK(c, gin.H{
		"jobFields":       h.Svc.JobFields(),
		"skillCategories": h.Svc.SkillCategories(),
	})
}

func (h *Handler) recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	recs := h.Svc.Recommend(req.Skills, req.Keywords, req.ExperienceText)
	if len(recs) > 0 {
		c.Set(middleware.FieldKey, recs[0].Field)
	}
	respond.OK(c, gin.H{"recommendations": recs})
}

// WriteError maps service errors onto the standard error body.
func WriteError(c *gin.Context, err error) {
	var formatErr *extract.UnsupportedFormatError
	switch {
	case errors.As(err, &formatErr):
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_format", formatErr.Error(),
			gin.H{"allowed": extract.SupportedFormats()})
	case errors.Is(err, parser.ErrEmptyDocument):
		respond.Error(c, http.StatusUnprocessableEntity, "empty_document", "Could not extract text from file", nil)
	case errors.Is(err, ErrTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds upload limit", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Resume not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process resume", nil)
	}
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
