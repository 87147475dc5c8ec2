package resumes

import (
	"time"

	"resume-parser/internal/match"
	"resume-parser/internal/parser"
)

// ResumeResponse is the outward-facing representation of a resume.
type ResumeResponse struct {
	ID          string                `json:"id"`
	FileName    string                `json:"fileName"`
	MimeType    string                `json:"mimeType"`
	SizeBytes   int64                 `json:"sizeBytes"`
	UploadedAt  time.Time             `json:"uploadedAt"`
	ContactInfo parser.ContactInfo    `json:"contactInfo"`
	Skills      []string              `json:"skills"`
	Experience  []string              `json:"experience"`
	Education   []string              `json:"education"`
	Keywords    []parser.KeywordCount `json:"keywords"`
	RawText     string                `json:"rawText,omitempty"`
	IsPublic    bool                  `json:"isPublic"`
}

// UploadResponse is returned by POST /resumes and the reparse endpoint.
type UploadResponse struct {
	Resume          ResumeResponse     `json:"resume"`
	Recommendations []match.FieldMatch `json:"recommendations"`
}

// RecommendRequest scores ad-hoc input without an upload.
type RecommendRequest struct {
	Skills         []string `json:"skills"`
	Keywords       []string `json:"keywords"`
	ExperienceText string   `json:"experienceText"`
}

func toResponse(res Resume, withText bool) ResumeResponse {
	out := ResumeResponse{
		ID:          res.ID,
		FileName:    res.OriginalFileName,
		MimeType:    res.MimeType,
		SizeBytes:   res.SizeBytes,
		UploadedAt:  res.UploadedAt,
		ContactInfo: res.Parsed.Contact,
		Skills:      orEmpty(res.Parsed.Skills),
		Experience:  orEmpty(res.Parsed.Experience),
		Education:   orEmpty(res.Parsed.Education),
		Keywords:    res.Parsed.Keywords,
		IsPublic:    res.IsPublic,
	}
	if out.Keywords == nil {
		out.Keywords = []parser.KeywordCount{}
	}
	if withText {
		out.RawText = res.Parsed.RawText
	}
	return out
}

// NewUploadResponse shapes an upload result for the API.
func NewUploadResponse(result UploadResult) UploadResponse {
	recs := result.Recommendations
	if recs == nil {
		recs = []match.FieldMatch{}
	}
	return UploadResponse{Resume: toResponse(result.Resume, true), Recommendations: recs}
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
