package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"resume-parser/internal/parser"
)

// PGRepo persists resumes in Postgres. List-valued fields live in JSONB columns.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, file_name, original_file_name, storage_key, storage_provider, mime_type, size_bytes, uploaded_at,
  name, email, phone, linkedin, skills, experience, education, keywords, raw_text, is_public`

func (r *PGRepo) Create(ctx context.Context, res Resume) error {
	lists, err := encodeLists(res.Parsed)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO resumes (` + resumeColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err = r.DB.ExecContext(ctx, query,
		res.ID,
		res.UserID,
		res.FileName,
		res.OriginalFileName,
		res.StorageKey,
		res.StorageProvider,
		res.MimeType,
		res.SizeBytes,
		res.UploadedAt,
		nullableString(res.Parsed.Contact.Name),
		nullableString(res.Parsed.Contact.Email),
		nullableString(res.Parsed.Contact.Phone),
		nullableString(res.Parsed.Contact.LinkedIn),
		lists[0], lists[1], lists[2], lists[3],
		res.Parsed.RawText,
		res.IsPublic,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1 AND id = $2
LIMIT 1`
	res, err := scanResume(r.DB.QueryRowContext(ctx, query, userID, resumeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return res, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1
ORDER BY uploaded_at DESC
LIMIT $2 OFFSET $3`
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}
	rows, err := r.DB.QueryContext(ctx, query, userID, limitArg, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *PGRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM resumes WHERE user_id = $1`
	var n int
	if err := r.DB.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PGRepo) UpdateParsed(ctx context.Context, userID, resumeID string, record parser.Record) error {
	lists, err := encodeLists(record)
	if err != nil {
		return err
	}
	const query = `
UPDATE resumes
SET name = $3, email = $4, phone = $5, linkedin = $6,
    skills = $7, experience = $8, education = $9, keywords = $10, raw_text = $11
WHERE user_id = $1 AND id = $2`
	result, err := r.DB.ExecContext(ctx, query,
		userID,
		resumeID,
		nullableString(record.Contact.Name),
		nullableString(record.Contact.Email),
		nullableString(record.Contact.Phone),
		nullableString(record.Contact.LinkedIn),
		lists[0], lists[1], lists[2], lists[3],
		record.RawText,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *PGRepo) Delete(ctx context.Context, userID, resumeID string) (Resume, error) {
	const query = `
DELETE FROM resumes
WHERE user_id = $1 AND id = $2
RETURNING ` + resumeColumns
	res, err := scanResume(r.DB.QueryRowContext(ctx, query, userID, resumeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return res, nil
}

func (r *PGRepo) Reassign(ctx context.Context, fromUserID, toUserID string) (int, error) {
	if fromUserID == toUserID {
		return 0, nil
	}
	result, err := r.DB.ExecContext(ctx, `UPDATE resumes SET user_id = $1 WHERE user_id = $2`, toUserID, fromUserID)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var res Resume
	var name, email, phone, linkedin sql.NullString
	var skills, experience, education, keywords []byte
	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.FileName,
		&res.OriginalFileName,
		&res.StorageKey,
		&res.StorageProvider,
		&res.MimeType,
		&res.SizeBytes,
		&res.UploadedAt,
		&name,
		&email,
		&phone,
		&linkedin,
		&skills,
		&experience,
		&education,
		&keywords,
		&res.Parsed.RawText,
		&res.IsPublic,
	)
	if err != nil {
		return Resume{}, err
	}
	res.Parsed.Contact = parser.ContactInfo{
		Name:     name.String,
		Email:    email.String,
		Phone:    phone.String,
		LinkedIn: linkedin.String,
	}
	if err := decodeJSON(skills, &res.Parsed.Skills); err != nil {
		return Resume{}, fmt.Errorf("decode skills: %w", err)
	}
	if err := decodeJSON(experience, &res.Parsed.Experience); err != nil {
		return Resume{}, fmt.Errorf("decode experience: %w", err)
	}
	if err := decodeJSON(education, &res.Parsed.Education); err != nil {
		return Resume{}, fmt.Errorf("decode education: %w", err)
	}
	if err := decodeJSON(keywords, &res.Parsed.Keywords); err != nil {
		return Resume{}, fmt.Errorf("decode keywords: %w", err)
	}
	return res, nil
}

// encodeLists marshals skills, experience, education and keywords in that order.
func encodeLists(record parser.Record) ([4][]byte, error) {
	var out [4][]byte
	values := []any{nonNil(record.Skills), nonNil(record.Experience), nonNil(record.Education), record.Keywords}
	for i, v := range values {
		if i == 3 && record.Keywords == nil {
			v = []parser.KeywordCount{}
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return out, fmt.Errorf("encode resume lists: %w", err)
		}
		out[i] = raw
	}
	return out, nil
}

func decodeJSON[T any](raw []byte, dst *[]T) error {
	*dst = []T{}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
