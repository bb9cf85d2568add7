package staging

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	return NewHandler(newTestStager(t))
}

func TestHandleUnknownAction(t *testing.T) {
	h := newTestHandler(t)

	resp := h.Handle(context.Background(), Request{Action: "transmogrify"})
	if resp.Success {
		t.Error("unknown action reported success")
	}
	if !strings.Contains(resp.Error, "unknown action") {
		t.Errorf("Error = %q, want unknown action message", resp.Error)
	}
}

func TestHandleEmptyAction(t *testing.T) {
	h := newTestHandler(t)

	resp := h.Handle(context.Background(), Request{})
	if resp.Success {
		t.Error("empty action reported success")
	}
}

func TestHandlePrepareFileFromPayload(t *testing.T) {
	h := newTestHandler(t)
	encoded := base64.StdEncoding.EncodeToString([]byte("hello channel"))

	resp := h.Handle(context.Background(), Request{
		Action:         ActionPrepareFile,
		EncodedPayload: encoded,
		FileName:       "greeting.txt",
	})

	if !resp.Success {
		t.Fatalf("Handle() failed: %s", resp.Error)
	}
	if resp.FileName != "greeting.txt" {
		t.Errorf("FileName = %q", resp.FileName)
	}
	if resp.SizeBytes != int64(len("hello channel")) {
		t.Errorf("SizeBytes = %d", resp.SizeBytes)
	}
	if resp.Error != "" {
		t.Errorf("Error = %q, want empty on success", resp.Error)
	}
}

func TestHandlePrepareFileFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("remote"))
	}))
	defer server.Close()

	h := newTestHandler(t)
	resp := h.Handle(context.Background(), Request{
		Action:  ActionPrepareFile,
		FileURL: server.URL + "/remote.bin",
	})

	if !resp.Success {
		t.Fatalf("Handle() failed: %s", resp.Error)
	}
	if _, err := os.Stat(resp.FilePath); err != nil {
		t.Errorf("staged file missing: %v", err)
	}
}

func TestHandlePrepareFileNoSource(t *testing.T) {
	h := newTestHandler(t)

	resp := h.Handle(context.Background(), Request{Action: ActionPrepareFile})
	if resp.Success {
		t.Error("prepareFile with no source reported success")
	}
	if !strings.Contains(resp.Error, "requires") {
		t.Errorf("Error = %q", resp.Error)
	}
}

func TestHandlePrepareFileBadURLConvertsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer server.Close()

	h := newTestHandler(t)
	resp := h.Handle(context.Background(), Request{
		Action:  ActionPrepareFile,
		FileURL: server.URL + "/secret",
	})

	if resp.Success {
		t.Error("failed download reported success")
	}
	if !strings.Contains(resp.Error, "403") {
		t.Errorf("Error = %q, want status in message", resp.Error)
	}
}

func TestHandleCleanupFile(t *testing.T) {
	stager := newTestStager(t)
	h := NewHandler(stager)

	encoded := base64.StdEncoding.EncodeToString([]byte("temp"))
	prepared := h.Handle(context.Background(), Request{
		Action:         ActionPrepareFile,
		EncodedPayload: encoded,
	})
	if !prepared.Success {
		t.Fatalf("prepare failed: %s", prepared.Error)
	}

	cleaned := h.Handle(context.Background(), Request{
		Action:   ActionCleanupFile,
		FilePath: prepared.FilePath,
	})
	if !cleaned.Success {
		t.Fatalf("cleanup failed: %s", cleaned.Error)
	}
	if _, err := os.Stat(prepared.FilePath); !os.IsNotExist(err) {
		t.Error("file still present after cleanupFile")
	}
}

func TestHandleCleanupFileRefusesEscape(t *testing.T) {
	stager := newTestStager(t)
	h := NewHandler(stager)

	victim := filepath.Join(t.TempDir(), "victim")
	if err := os.WriteFile(victim, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	resp := h.Handle(context.Background(), Request{
		Action:   ActionCleanupFile,
		FilePath: victim,
	})
	if resp.Success {
		t.Error("cleanup outside staging root reported success")
	}
	if _, err := os.Stat(victim); err != nil {
		t.Errorf("victim file deleted: %v", err)
	}
}

func TestHandleCleanupFileMissingPath(t *testing.T) {
	h := newTestHandler(t)

	resp := h.Handle(context.Background(), Request{Action: ActionCleanupFile})
	if resp.Success {
		t.Error("cleanupFile without filePath reported success")
	}
}
