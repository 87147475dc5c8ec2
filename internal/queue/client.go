// Package queue carries background reparse jobs between the API and workers.
package queue

import "context"

// Client sends messages to a queue backend.
type Client interface {
	Send(ctx context.Context, msg Message) error
}
