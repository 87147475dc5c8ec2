package bootstrap

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-parser/internal/shared/config"
)

func TestBuildDevDefaults(t *testing.T) {
	app, err := Build(config.Config{LocalStoreDir: t.TempDir(), MaxUploadBytes: 1 << 20})
	require.NoError(t, err)

	assert.Nil(t, app.DB)
	assert.Equal(t, "dev", app.Config.Env)
	assert.Equal(t, "local", app.Config.ObjectStoreType)
	require.NotNil(t, app.Router)
	assert.False(t, app.GoogleAuth.Configured())
	assert.Nil(t, app.UploadHandler)
	assert.NotNil(t, app.AccountHandler)

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "memory", body["database"])

	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/resumes", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	_, err := Build(config.Config{Env: "production", JWTSecret: "s", LocalStoreDir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestBuildRejectsMissingSecretInProduction(t *testing.T) {
	_, err := Build(config.Config{Env: "production", LocalStoreDir: t.TempDir()})
	require.Error(t, err)
}

func TestBuildRejectsUnknownStore(t *testing.T) {
	_, err := Build(config.Config{ObjectStoreType: "ftp"})
	require.Error(t, err)
}

func TestBuildLoadsTaxonomyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	doc := `skill_categories:
  - name: Languages
    skills: [Go]
role_keywords: [engineer]
job_fields:
  - name: Backend
    skills: [Go]
    keywords: [engineer]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	app, err := Build(config.Config{LocalStoreDir: t.TempDir(), TaxonomyFile: path})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, app.Taxonomy.Skills())
	require.Len(t, app.Matcher.Fields(), 1)

	_, err = Build(config.Config{LocalStoreDir: t.TempDir(), TaxonomyFile: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
}
