package s3

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "owner/resume.pdf", want: "owner/resume.pdf"},
		{name: "normalized prefix", prefix: normalizePrefix(" /resumes/ "), key: "owner/resume.pdf", want: "resumes/owner/resume.pdf"},
		{name: "leading slash key", prefix: "resumes", key: "/owner/resume.pdf", want: "resumes/owner/resume.pdf"},
		{name: "extracted sibling", prefix: "resumes/raw", key: "owner/cv.docx.extracted.txt", want: "resumes/raw/owner/cv.docx.extracted.txt"},
		{name: "empty key", prefix: "resumes", key: "", want: "resumes"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestEncryptChoosesKMSWhenKeyed(t *testing.T) {
	in := &s3.PutObjectInput{}
	(&Store{kmsKeyID: "kms-123"}).encrypt(in)
	if in.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms || in.SSEKMSKeyId == nil || *in.SSEKMSKeyId != "kms-123" {
		t.Fatalf("expected kms encryption, got %+v", in.ServerSideEncryption)
	}

	plain := &s3.PutObjectInput{}
	(&Store{}).encrypt(plain)
	if plain.ServerSideEncryption != s3types.ServerSideEncryptionAes256 || plain.SSEKMSKeyId != nil {
		t.Fatalf("expected AES256, got %+v", plain.ServerSideEncryption)
	}
}

func TestCountingReader(t *testing.T) {
	c := &countingReader{r: strings.NewReader("hello world")}
	buf := make([]byte, 4)
	for {
		if _, err := c.Read(buf); err != nil {
			break
		}
	}
	if c.n != 11 {
		t.Fatalf("counted %d bytes, want 11", c.n)
	}
}

func TestPresignPutSignsHostOnly(t *testing.T) {
	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider("AKID", "SECRET", "")),
	}
	client := s3.NewFromConfig(cfg)
	store := &Store{client: client, presign: s3.NewPresignClient(client), bucket: "bucket", prefix: "resumes"}

	raw, err := store.PresignPut(context.Background(), "owner/abc_cv.pdf", 10*time.Minute)
	if err != nil {
		t.Fatalf("presign: %v", err)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if !strings.Contains(parsed.Path, "resumes/owner/abc_cv.pdf") {
		t.Fatalf("expected prefixed key in path: %s", parsed.Path)
	}
	signed := parsed.Query().Get("X-Amz-SignedHeaders")
	if strings.Contains(signed, "content-length") || strings.Contains(signed, "x-amz-server-side-encryption") {
		t.Fatalf("unexpected signed headers: %s", signed)
	}
	if !strings.Contains(signed, "host") {
		t.Fatalf("expected host in signed headers: %s", signed)
	}
	if got := parsed.Query().Get("X-Amz-Expires"); got != "600" {
		t.Fatalf("X-Amz-Expires = %q", got)
	}
}
