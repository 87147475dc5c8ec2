package workerproc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-parser/internal/queue"
	"resume-parser/internal/resumes"
)

type fakeReparser struct {
	calls []string
	err   error
}

func (f *fakeReparser) Reparse(_ context.Context, userID, resumeID string) (resumes.UploadResult, error) {
	f.calls = append(f.calls, userID+"/"+resumeID)
	return resumes.UploadResult{}, f.err
}

func encode(t *testing.T, msg queue.Message) string {
	t.Helper()
	raw, err := queue.EncodeMessage(msg)
	require.NoError(t, err)
	return string(raw)
}

func TestParseMessage(t *testing.T) {
	_, meta, err := ParseMessage("  ")
	assert.ErrorAs(t, err, &ErrEmptyBody{})
	assert.Equal(t, 2, meta.BodyLen)

	_, meta, err = ParseMessage("{bad")
	var decodeErr ErrDecode
	require.ErrorAs(t, err, &decodeErr)
	assert.Len(t, meta.BodySHA, 64)

	_, _, err = ParseMessage(encode(t, queue.Message{ResumeID: "r1", RequestID: "req"}))
	var missing ErrMissingTarget
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "req", missing.RequestID)

	msg, _, err := ParseMessage(encode(t, queue.Message{ResumeID: "r1", UserID: "guest:a"}))
	require.NoError(t, err)
	assert.Equal(t, "r1", msg.ResumeID)
}

func TestHandleMessage(t *testing.T) {
	r := &fakeReparser{}
	require.NoError(t, HandleMessage(context.Background(), r, encode(t, queue.Message{ResumeID: "r1", UserID: "guest:a"})))
	assert.Equal(t, []string{"guest:a/r1"}, r.calls)

	r.err = errors.New("store down")
	err := HandleMessage(context.Background(), r, encode(t, queue.Message{ResumeID: "r1", UserID: "guest:a"}))
	var procErr ErrProcess
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, "r1", procErr.ResumeID)
	assert.False(t, Unrecoverable(err))

	r.err = resumes.ErrNotFound
	err = HandleMessage(context.Background(), r, encode(t, queue.Message{ResumeID: "r1", UserID: "guest:a"}))
	assert.True(t, Unrecoverable(err))

	assert.Error(t, Process(context.Background(), nil, queue.Message{}))
}

func TestUnrecoverable(t *testing.T) {
	assert.True(t, Unrecoverable(ErrEmptyBody{}))
	assert.True(t, Unrecoverable(ErrDecode{Err: errors.New("x")}))
	assert.True(t, Unrecoverable(ErrMissingTarget{}))
	assert.False(t, Unrecoverable(errors.New("transient")))
}
