package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=amd64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-worker

import (
	"context"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"resume-parser/internal/bootstrap"
	"resume-parser/internal/shared/config"
	"resume-parser/internal/shared/metrics"
	"resume-parser/internal/shared/telemetry"
	"resume-parser/internal/workerproc"
)

var (
	initOnce sync.Once
	initErr  error
	reparser workerproc.Reparser
)

func initApp() {
	cfg := config.Load()
	built, err := bootstrap.Build(cfg)
	if err != nil {
		initErr = err
		return
	}
	reparser = built.ResumesService
}

func handler(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	initOnce.Do(initApp)
	if initErr != nil {
		telemetry.Error("bootstrap.failed", map[string]any{"err": initErr.Error()})
		failures := make([]events.SQSBatchItemFailure, 0, len(event.Records))
		for _, record := range event.Records {
			failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
		return events.SQSEventResponse{BatchItemFailures: failures}, initErr
	}
	return processBatch(ctx, reparser, event), nil
}

// processBatch reports only retryable failures so unrecoverable messages are
// removed from the queue.
func processBatch(ctx context.Context, r workerproc.Reparser, event events.SQSEvent) events.SQSEventResponse {
	failures := make([]events.SQSBatchItemFailure, 0)
	for _, record := range event.Records {
		metrics.IncReparseJobsReceived()
		err := workerproc.HandleMessage(ctx, r, record.Body)
		switch {
		case err == nil:
			metrics.IncReparseJobsCompleted()
		case workerproc.Unrecoverable(err):
			telemetry.Error("worker.reparse.unrecoverable", map[string]any{"sqs_message_id": record.MessageId, "error": err.Error()})
			metrics.IncReparseJobsDeletedUnrecoverable()
		default:
			telemetry.Error("worker.reparse.failed", map[string]any{"sqs_message_id": record.MessageId, "error": err.Error()})
			metrics.IncReparseJobsFailed()
			failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
	}
	return events.SQSEventResponse{BatchItemFailures: failures}
}

func main() {
	lambda.Start(handler)
}
