package local

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-parser/internal/shared/storage/object"
)

func TestSaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())

	key, size, mime, err := store.Save(ctx, "guest:1", "resume.txt", strings.NewReader("Jane Doe\nPython"))
	require.NoError(t, err)
	assert.EqualValues(t, 15, size)
	assert.Contains(t, mime, "text/plain")

	rc, err := store.Open(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nPython", string(body))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Open(ctx, key)
	assert.Error(t, err)
	assert.NoError(t, store.Delete(ctx, key), "deleting twice is a no-op")
}

func TestRejectsEscapingKeys(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.Open(context.Background(), "../outside.txt")
	assert.ErrorIs(t, err, object.ErrInvalidKey)

	_, err = store.SaveWithKey(context.Background(), "/abs.txt", "text/plain", strings.NewReader("x"))
	assert.ErrorIs(t, err, object.ErrInvalidKey)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, _, err := New(t.TempDir()).Save(ctx, "u", "a.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
