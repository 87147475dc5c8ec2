package object

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyLayout(t *testing.T) {
	key, err := NewKey("guest:abc", "My CV.pdf")
	require.NoError(t, err)

	parts := strings.Split(key, "/")
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], 64)
	assert.True(t, strings.HasSuffix(parts[1], "_My_CV.pdf"))

	other, err := NewKey("guest:abc", "My CV.pdf")
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestNewKeyRejectsTraversal(t *testing.T) {
	_, err := NewKey("u", "../etc/passwd")
	assert.Error(t, err)
}

func TestSniffReplaysHead(t *testing.T) {
	payload := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("x"), 2000)...)

	r, mime, err := Sniff(bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mime)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestCleanKey(t *testing.T) {
	ok, err := CleanKey("abc/./file.txt")
	require.NoError(t, err)
	assert.Equal(t, "abc/file.txt", ok)

	for _, bad := range []string{"../x", "/abs/key", "", ".", `..\win`} {
		_, err := CleanKey(bad)
		assert.ErrorIs(t, err, ErrInvalidKey, bad)
	}
}

func TestOwnsKey(t *testing.T) {
	key, err := NewKey("guest:abc", "cv.pdf")
	require.NoError(t, err)

	assert.True(t, OwnsKey("guest:abc", key))
	assert.False(t, OwnsKey("guest:other", key))
	assert.False(t, OwnsKey("guest:abc", "cv.pdf"))
}
