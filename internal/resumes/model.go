package resumes

import (
	"errors"
	"time"

	"resume-parser/internal/match"
	"resume-parser/internal/parser"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resume not found")
	ErrTooLarge     = errors.New("file too large")
)

// Resume is one uploaded file together with its extraction record.
type Resume struct {
	ID               string
	UserID           string
	FileName         string
	OriginalFileName string
	StorageKey       string
	StorageProvider  string
	MimeType         string
	SizeBytes        int64
	UploadedAt       time.Time
	Parsed           parser.Record
	IsPublic         bool
}

// Analysis is the parse and match outcome for one document.
type Analysis struct {
	Record          parser.Record      `json:"record"`
	Recommendations []match.FieldMatch `json:"recommendations"`
}

// UploadResult is returned by Service.Upload.
type UploadResult struct {
	Resume          Resume
	Recommendations []match.FieldMatch
}
