package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-parser/internal/extract"
	"resume-parser/internal/match"
	"resume-parser/internal/parser"
	"resume-parser/internal/queue"
	"resume-parser/internal/shared/metrics"
	"resume-parser/internal/shared/storage/object"
	"resume-parser/internal/shared/telemetry"
	"resume-parser/internal/taxonomy"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Service coordinates storage, extraction, parsing and field matching.
type Service struct {
	Store           object.ObjectStore
	Repo            Repo
	Parser          *parser.Parser
	Matcher         *match.Matcher
	StorageProvider string
	MaxUploadBytes  int64
	Now             func() time.Time
	// Jobs, when set, receives reparse requests for background workers.
	Jobs queue.Client
}

// Analyze decodes, parses and matches a document without persisting it.
func (s *Service) Analyze(ctx context.Context, fileName, mimeType string, data []byte) (Analysis, error) {
	if _, err := extract.FormatFromFileName(fileName); err != nil {
		metrics.IncUnsupportedFormat()
		return Analysis{}, err
	}
	text, err := extract.DecodeText(ctx, data, mimeType, fileName)
	if err != nil {
		return Analysis{}, err
	}
	return s.analyzeText(text)
}

func (s *Service) analyzeText(text string) (Analysis, error) {
	record, err := s.Parser.Parse(text)
	if err != nil {
		if errors.Is(err, parser.ErrEmptyDocument) {
			metrics.IncEmptyDocument()
		}
		return Analysis{}, err
	}
	return Analysis{Record: record, Recommendations: s.recommend(record)}, nil
}

// Upload stores the original file, parses it and records the result.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (UploadResult, error) {
	start := s.now()
	userID = strings.TrimSpace(userID)
	fileName = strings.TrimSpace(fileName)
	if userID == "" {
		return UploadResult{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if fileName == "" {
		return UploadResult{}, fmt.Errorf("%w: no file selected", ErrInvalidInput)
	}
	if _, err := extract.FormatFromFileName(fileName); err != nil {
		metrics.IncUnsupportedFormat()
		return UploadResult{}, err
	}

	data, err := s.readLimited(r)
	if err != nil {
		return UploadResult{}, err
	}

	key, size, mimeType, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		metrics.IncParseFailed()
		return UploadResult{}, fmt.Errorf("store upload: %w", err)
	}
	return s.ingest(ctx, start, userID, fileName, key, size, mimeType, data)
}

// Import parses a file the client already put into the object store under
// storageKey, typically through a presigned URL.
func (s *Service) Import(ctx context.Context, userID, storageKey, fileName string) (UploadResult, error) {
	start := s.now()
	userID = strings.TrimSpace(userID)
	fileName = strings.TrimSpace(fileName)
	if userID == "" || fileName == "" {
		return UploadResult{}, fmt.Errorf("%w: user id and file name are required", ErrInvalidInput)
	}
	key, err := object.CleanKey(storageKey)
	if err != nil || !object.OwnsKey(userID, key) {
		return UploadResult{}, fmt.Errorf("%w: storage key does not belong to caller", ErrInvalidInput)
	}
	if _, err := extract.FormatFromFileName(fileName); err != nil {
		metrics.IncUnsupportedFormat()
		return UploadResult{}, err
	}

	rc, err := s.Store.Open(ctx, key)
	if err != nil {
		return UploadResult{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	data, err := s.readLimited(rc)
	rc.Close()
	if err != nil {
		if errors.Is(err, ErrTooLarge) {
			s.discard(ctx, key)
		}
		return UploadResult{}, err
	}
	_, mimeType, err := object.Sniff(bytes.NewReader(data))
	if err != nil {
		return UploadResult{}, err
	}
	return s.ingest(ctx, start, userID, fileName, key, int64(len(data)), mimeType, data)
}

// ingest decodes, parses and records a stored upload. Stored files are
// discarded on any failure.
func (s *Service) ingest(ctx context.Context, start time.Time, userID, fileName, key string, size int64, mimeType string, data []byte) (UploadResult, error) {
	text, err := extract.DecodeText(ctx, data, mimeType, fileName)
	if err != nil {
		s.discard(ctx, key)
		metrics.IncParseFailed()
		return UploadResult{}, err
	}
	analysis, err := s.analyzeText(text)
	if err != nil {
		s.discard(ctx, key)
		if !errors.Is(err, parser.ErrEmptyDocument) {
			metrics.IncParseFailed()
		}
		return UploadResult{}, err
	}
	if _, err := s.Store.SaveWithKey(ctx, key+extract.ExtractedSuffix, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		telemetry.Warn("resume.extracted_save_failed", map[string]any{"storage_key": key, "err": err.Error()})
	}

	sanitized := path.Base(key)
	if i := strings.IndexByte(sanitized, '_'); i >= 0 {
		sanitized = sanitized[i+1:]
	}
	res := Resume{
		ID:               uuid.NewString(),
		UserID:           userID,
		FileName:         sanitized,
		OriginalFileName: fileName,
		StorageKey:       key,
		StorageProvider:  s.StorageProvider,
		MimeType:         mimeType,
		SizeBytes:        size,
		UploadedAt:       start.UTC(),
		Parsed:           analysis.Record,
	}
	if err := s.Repo.Create(ctx, res); err != nil {
		s.discard(ctx, key)
		metrics.IncParseFailed()
		return UploadResult{}, fmt.Errorf("save resume: %w", err)
	}

	metrics.IncResumesParsed()
	metrics.ObserveParseDuration(s.now().Sub(start))
	telemetry.Info("resume.parsed", map[string]any{
		"resume_id":  res.ID,
		"user_id":    userID,
		"mime_type":  mimeType,
		"size_bytes": size,
		"skills":     len(res.Parsed.Skills),
		"top_field":  topField(analysis.Recommendations),
	})
	return UploadResult{Resume: res, Recommendations: analysis.Recommendations}, nil
}

// Reparse re-extracts a stored upload and refreshes its record, picking up
// taxonomy changes.
func (s *Service) Reparse(ctx context.Context, userID, resumeID string) (UploadResult, error) {
	res, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return UploadResult{}, err
	}
	text, err := extract.ExtractText(ctx, s.Store, res.StorageKey, res.MimeType, res.OriginalFileName)
	if err != nil {
		metrics.IncParseFailed()
		return UploadResult{}, err
	}
	analysis, err := s.analyzeText(text)
	if err != nil {
		return UploadResult{}, err
	}
	if err := s.Repo.UpdateParsed(ctx, userID, resumeID, analysis.Record); err != nil {
		return UploadResult{}, err
	}
	res.Parsed = analysis.Record
	return UploadResult{Resume: res, Recommendations: analysis.Recommendations}, nil
}

// EnqueueReparse checks ownership and hands the reparse to a worker.
func (s *Service) EnqueueReparse(ctx context.Context, userID, resumeID, requestID string) error {
	if s.Jobs == nil {
		return errors.New("reparse queue not configured")
	}
	if _, err := s.Get(ctx, userID, resumeID); err != nil {
		return err
	}
	if err := s.Jobs.Send(ctx, queue.NewMessage(userID, resumeID, requestID, s.now())); err != nil {
		return fmt.Errorf("enqueue reparse: %w", err)
	}
	metrics.IncReparseJobsEnqueued()
	telemetry.Info("resume.reparse_enqueued", map[string]any{"resume_id": resumeID, "user_id": userID, "request_id": requestID})
	return nil
}

// List returns a user's resumes, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must be >= 0", ErrInvalidInput)
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Get returns one resume owned by userID.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(resumeID) == "" {
		return Resume{}, fmt.Errorf("%w: user id and resume id are required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// Count returns how many resumes userID owns.
func (s *Service) Count(ctx context.Context, userID string) (int, error) {
	return s.Repo.CountByUser(ctx, userID)
}

// Delete removes a resume and its stored files.
func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(resumeID) == "" {
		return fmt.Errorf("%w: user id and resume id are required", ErrInvalidInput)
	}
	res, err := s.Repo.Delete(ctx, userID, resumeID)
	if err != nil {
		return err
	}
	s.discard(ctx, res.StorageKey)
	telemetry.Info("resume.deleted", map[string]any{"resume_id": resumeID, "user_id": userID})
	return nil
}

// Recommendations recomputes field matches for a stored resume.
func (s *Service) Recommendations(ctx context.Context, userID, resumeID string) ([]match.FieldMatch, error) {
	res, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}
	return s.recommend(res.Parsed), nil
}

// Recommend scores ad-hoc skills and keywords against every job field.
func (s *Service) Recommend(skills, keywords []string, experienceText string) []match.FieldMatch {
	metrics.IncRecommendations()
	return s.Matcher.Recommend(skills, keywords, experienceText)
}

// JobFields lists the configured job fields.
func (s *Service) JobFields() []taxonomy.JobField {
	return s.Matcher.Fields()
}

// SkillCategories lists the skill groupings the parser detects from.
func (s *Service) SkillCategories() []taxonomy.SkillCategory {
	return s.Parser.SkillCategories()
}

func (s *Service) recommend(record parser.Record) []match.FieldMatch {
	return s.Recommend(record.Skills, record.KeywordWords(), record.ExperienceText())
}

func (s *Service) readLimited(r io.Reader) ([]byte, error) {
	limit := s.MaxUploadBytes
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}
	return data, nil
}

// discard removes an upload and its extracted copy. Failures are logged only.
func (s *Service) discard(ctx context.Context, key string) {
	for _, k := range []string{key, key + extract.ExtractedSuffix} {
		if err := s.Store.Delete(ctx, k); err != nil {
			telemetry.Warn("resume.storage_cleanup_failed", map[string]any{"storage_key": k, "err": err.Error()})
		}
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func topField(recs []match.FieldMatch) string {
	if len(recs) == 0 {
		return ""
	}
	return recs[0].Field
}
