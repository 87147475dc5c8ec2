package main

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"resume-parser/internal/queue"
	"resume-parser/internal/resumes"
)

type fakeSQS struct {
	deleted []string
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	return &sqs.ReceiveMessageOutput{}, nil
}

func (f *fakeSQS) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

type fakeReparser struct {
	err   error
	calls int
}

func (f *fakeReparser) Reparse(ctx context.Context, userID, resumeID string) (resumes.UploadResult, error) {
	f.calls++
	return resumes.UploadResult{}, f.err
}

func sqsMessage(id, body string) sqstypes.Message {
	return sqstypes.Message{
		MessageId:     aws.String(id),
		ReceiptHandle: aws.String("receipt-" + id),
		Body:          aws.String(body),
		Attributes:    map[string]string{"ApproximateReceiveCount": "1"},
	}
}

func reparseBody(t *testing.T) string {
	t.Helper()
	raw, err := queue.EncodeMessage(queue.Message{ResumeID: "resume-1", UserID: "guest:a", RequestID: "req-1"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return string(raw)
}

func TestWorkerDeletesMessageOnSuccess(t *testing.T) {
	client := &fakeSQS{}
	r := &fakeReparser{}

	handleMessage(context.Background(), client, "queue", r, sqsMessage("m1", reparseBody(t)))

	if r.calls != 1 {
		t.Fatalf("expected one reparse, got %d", r.calls)
	}
	if len(client.deleted) != 1 || client.deleted[0] != "receipt-m1" {
		t.Fatalf("expected delete, got %v", client.deleted)
	}
}

func TestWorkerDoesNotDeleteOnFailure(t *testing.T) {
	client := &fakeSQS{}
	r := &fakeReparser{err: errors.New("boom")}

	handleMessage(context.Background(), client, "queue", r, sqsMessage("m2", reparseBody(t)))

	if len(client.deleted) != 0 {
		t.Fatalf("expected no delete, got %d", len(client.deleted))
	}
}

func TestWorkerDeletesWhenResumeGone(t *testing.T) {
	client := &fakeSQS{}
	r := &fakeReparser{err: resumes.ErrNotFound}

	handleMessage(context.Background(), client, "queue", r, sqsMessage("m3", reparseBody(t)))

	if len(client.deleted) != 1 {
		t.Fatalf("expected delete, got %d", len(client.deleted))
	}
}

func TestWorkerDeletesOnInvalidJSON(t *testing.T) {
	client := &fakeSQS{}
	r := &fakeReparser{}

	handleMessage(context.Background(), client, "queue", r, sqsMessage("m4", "{bad-json"))

	if r.calls != 0 {
		t.Fatalf("expected no reparse, got %d", r.calls)
	}
	if len(client.deleted) != 1 {
		t.Fatalf("expected delete, got %d", len(client.deleted))
	}
}

func TestReceiveCount(t *testing.T) {
	if got := receiveCount(sqstypes.Message{}); got != 0 {
		t.Fatalf("receiveCount = %d", got)
	}
	msg := sqstypes.Message{Attributes: map[string]string{"ApproximateReceiveCount": "3"}}
	if got := receiveCount(msg); got != 3 {
		t.Fatalf("receiveCount = %d", got)
	}
}
