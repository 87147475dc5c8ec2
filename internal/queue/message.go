package queue

import (
	"encoding/json"
	"time"
)

// MessageVersion is the payload version written by this build.
const MessageVersion = 1

// Message asks a worker to re-extract one stored resume.
type Message struct {
	ResumeID   string `json:"resumeId"`
	UserID     string `json:"userId"`
	RequestID  string `json:"requestId"`
	EnqueuedAt string `json:"enqueuedAt"`
	Version    int    `json:"version"`
}

// NewMessage stamps a reparse job with the current version and time.
func NewMessage(userID, resumeID, requestID string, now time.Time) Message {
	return Message{
		ResumeID:   resumeID,
		UserID:     userID,
		RequestID:  requestID,
		EnqueuedAt: now.UTC().Format(time.RFC3339),
		Version:    MessageVersion,
	}
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
