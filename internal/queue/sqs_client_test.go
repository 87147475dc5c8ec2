package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSender struct {
	inputs []*sqs.SendMessageInput
	err    error
}

func (f *fakeSender) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.inputs = append(f.inputs, params)
	return &sqs.SendMessageOutput{}, f.err
}

func TestSQSClientSend(t *testing.T) {
	sender := &fakeSender{}
	client := &SQSClient{client: sender, queueURL: "https://sqs.local/reparse"}

	if err := client.Send(context.Background(), Message{ResumeID: "r1", UserID: "guest:a"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(sender.inputs) != 1 {
		t.Fatalf("expected one send, got %d", len(sender.inputs))
	}
	if got := aws.ToString(sender.inputs[0].QueueUrl); got != "https://sqs.local/reparse" {
		t.Fatalf("queue url = %q", got)
	}
	msg, err := DecodeMessage([]byte(aws.ToString(sender.inputs[0].MessageBody)))
	if err != nil || msg.ResumeID != "r1" {
		t.Fatalf("unexpected body: %+v %v", msg, err)
	}
}

func TestSQSClientSendError(t *testing.T) {
	client := &SQSClient{client: &fakeSender{err: errors.New("throttled")}, queueURL: "q"}
	if err := client.Send(context.Background(), Message{ResumeID: "r1"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewSQSClientRequiresURL(t *testing.T) {
	if _, err := NewSQSClient(context.Background(), "", " "); err == nil {
		t.Fatalf("expected error for empty queue url")
	}
}
