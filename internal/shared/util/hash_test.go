package util

import (
	"encoding/hex"
	"testing"
)

func TestOwnerDirIsStableHex(t *testing.T) {
	got := OwnerDir("google:12345")
	if got != OwnerDir("google:12345") {
		t.Fatalf("owner dir changed between calls: %s", got)
	}
	if _, err := hex.DecodeString(got); err != nil || len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %q", got)
	}
}

func TestOwnerDirSeparatesGuestsFromUsers(t *testing.T) {
	if OwnerDir("guest:12345") == OwnerDir("google:12345") {
		t.Fatal("guest and google owners share a directory")
	}
}
