package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-parser/internal/resumes"
)

func TestRunPrintsAnalysis(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe\njane@example.com\n\nSkills\nPython, Go, Docker\n"), 0o600))

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, path, "", false))

	var analysis resumes.Analysis
	require.NoError(t, json.Unmarshal(out.Bytes(), &analysis))
	assert.Equal(t, "jane@example.com", analysis.Record.Contact.Email)
	assert.Contains(t, analysis.Record.Skills, "Docker")
	assert.Empty(t, analysis.Record.RawText)
	assert.NotEmpty(t, analysis.Recommendations)
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(context.Background(), &out, "", "", false))
	assert.Error(t, run(context.Background(), &out, filepath.Join(t.TempDir(), "missing.txt"), "", false))

	path := filepath.Join(t.TempDir(), "cv.rtf")
	require.NoError(t, os.WriteFile(path, []byte("text"), 0o600))
	assert.Error(t, run(context.Background(), &out, path, "", false))
}
