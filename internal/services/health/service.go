// Package health reports readiness of the parser's dependencies.
package health

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/extract"
	"resume-parser/internal/shared/server/respond"
	"resume-parser/internal/shared/storage/db"
	"resume-parser/internal/taxonomy"
)

const pingTimeout = 2 * time.Second

// Service encapsulates health-related checks.
type Service struct {
	DB              *sql.DB
	Taxonomy        *taxonomy.Taxonomy
	StorageProvider string
	OAuthConfigured bool
}

// Report is the health payload.
type Report struct {
	OK               bool     `json:"ok"`
	Database         string   `json:"database"`
	Storage          string   `json:"storage"`
	Skills           int      `json:"skills"`
	JobFields        int      `json:"jobFields"`
	SupportedFormats []string `json:"supportedFormats"`
	GoogleAuth       bool     `json:"googleAuth"`
}

// NewService constructs a new health service.
func NewService(database *sql.DB, tax *taxonomy.Taxonomy, storageProvider string, oauthConfigured bool) *Service {
	return &Service{
		DB:              database,
		Taxonomy:        tax,
		StorageProvider: storageProvider,
		OAuthConfigured: oauthConfigured,
	}
}

// Status checks the database, if any, and summarizes the loaded taxonomy.
func (s *Service) Status(ctx context.Context) Report {
	report := Report{
		OK:               true,
		Database:         "memory",
		Storage:          s.StorageProvider,
		SupportedFormats: extract.SupportedFormats(),
		GoogleAuth:       s.OAuthConfigured,
	}
	if s.DB != nil {
		report.Database = "ok"
		if err := db.Ping(ctx, s.DB, pingTimeout); err != nil {
			report.OK = false
			report.Database = "unreachable"
		}
	}
	if s.Taxonomy != nil {
		report.Skills = len(s.Taxonomy.Skills())
		report.JobFields = len(s.Taxonomy.JobFields())
	} else {
		report.OK = false
	}
	return report
}

// RegisterRoutes attaches GET /health.
func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", func(c *gin.Context) {
		report := s.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})
}
