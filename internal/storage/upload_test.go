package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type recordingPutter struct {
	key         string
	body        []byte
	contentType string
	err         error
}

func (p *recordingPutter) Put(ctx context.Context, key string, body []byte, contentType string) error {
	p.key, p.body, p.contentType = key, body, contentType
	return p.err
}

func TestUploadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nova-v2.json")
	if err := os.WriteFile(path, []byte(`{"name":"nova-v2"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	p := &recordingPutter{}
	if err := UploadFile(context.Background(), p, "models/nova-v2.json", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.key != "models/nova-v2.json" || p.contentType != "application/json" {
		t.Fatalf("unexpected upload %s (%s)", p.key, p.contentType)
	}
	if string(p.body) != `{"name":"nova-v2"}` {
		t.Fatalf("unexpected body %s", p.body)
	}
}

func TestUploadFile_Errors(t *testing.T) {
	if err := UploadFile(context.Background(), &recordingPutter{}, "k", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "m.json")
	_ = os.WriteFile(path, []byte("{}"), 0o644)
	boom := errors.New("bucket unavailable")
	if err := UploadFile(context.Background(), &recordingPutter{err: boom}, "k", path); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped bucket error, got %v", err)
	}
}

func TestR2ConfigEnabled(t *testing.T) {
	if (R2Config{}).Enabled() {
		t.Fatal("empty config should be disabled")
	}
	cfg := R2Config{Endpoint: "https://example.r2", AccessKey: "a", SecretKey: "s", Bucket: "b"}
	if !cfg.Enabled() {
		t.Fatal("complete config should be enabled")
	}
}
