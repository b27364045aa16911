package transfer

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/normsend/normsend-go/types"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file %s: %v", name, err)
	}
	return path
}

// TestBuildBatchBody round-trips the multipart payload through the stdlib
// reader and checks the shared field name, filenames and per-part media type.
func TestBuildBatchBody(t *testing.T) {
	dir := t.TempDir()
	files := []types.PendingFile{
		{Name: "a.mp3", MediaType: "audio/mpeg", Path: writeTempFile(t, dir, "a.mp3", "first")},
		{Name: "b.mp3", MediaType: "", Path: writeTempFile(t, dir, "b.mp3", "second")},
	}

	body, contentType, err := BuildBatchBody(files)
	if err != nil {
		t.Fatalf("BuildBatchBody returned error: %v", err)
	}
	if !strings.HasPrefix(contentType, "multipart/form-data; boundary=") {
		t.Fatalf("unexpected content type %q", contentType)
	}

	boundary := strings.TrimPrefix(contentType, "multipart/form-data; boundary=")
	reader := multipart.NewReader(body, boundary)

	wantTypes := map[string]string{"a.mp3": "audio/mpeg", "b.mp3": "application/octet-stream"}
	wantContent := map[string]string{"a.mp3": "first", "b.mp3": "second"}
	seen := 0
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("NextPart: %v", err)
		}
		seen++
		if part.FormName() != BatchFieldName {
			t.Errorf("part %s has field name %q, want %q", part.FileName(), part.FormName(), BatchFieldName)
		}
		name := part.FileName()
		if got := part.Header.Get("Content-Type"); got != wantTypes[name] {
			t.Errorf("part %s has media type %q, want %q", name, got, wantTypes[name])
		}
		data, err := io.ReadAll(part)
		if err != nil {
			t.Fatalf("reading part %s: %v", name, err)
		}
		if string(data) != wantContent[name] {
			t.Errorf("part %s content %q, want %q", name, data, wantContent[name])
		}
	}
	if seen != 2 {
		t.Errorf("expected 2 parts, got %d", seen)
	}
}

// TestBuildBatchBodyEscapesFilename checks that quotes in filenames survive
// the Content-Disposition header.
func TestBuildBatchBodyEscapesFilename(t *testing.T) {
	dir := t.TempDir()
	name := `tr"ack.mp3`
	files := []types.PendingFile{
		{Name: name, MediaType: "audio/mpeg", Path: writeTempFile(t, dir, "track.mp3", "x")},
	}

	body, contentType, err := BuildBatchBody(files)
	if err != nil {
		t.Fatalf("BuildBatchBody returned error: %v", err)
	}
	boundary := strings.TrimPrefix(contentType, "multipart/form-data; boundary=")
	part, err := multipart.NewReader(body, boundary).NextPart()
	if err != nil {
		t.Fatalf("NextPart: %v", err)
	}
	if part.FileName() != name {
		t.Errorf("filename did not round-trip: %q", part.FileName())
	}
}

// TestBuildBatchBodyMissingFile checks that an unreadable path fails the
// whole build instead of producing a truncated payload.
func TestBuildBatchBodyMissingFile(t *testing.T) {
	files := []types.PendingFile{
		{Name: "gone.mp3", MediaType: "audio/mpeg", Path: filepath.Join(t.TempDir(), "gone.mp3")},
	}
	if _, _, err := BuildBatchBody(files); err == nil {
		t.Error("expected error for missing source file")
	}
}

// TestCountingReader checks the progress callback accumulation and the single
// body-sent signal at EOF.
func TestCountingReader(t *testing.T) {
	payload := strings.Repeat("x", 10)
	var lastSent, lastTotal int64
	bodySentCalls := 0
	reader := &countingReader{
		r:     strings.NewReader(payload),
		total: int64(len(payload)),
		onProgress: func(sent, total int64) {
			lastSent, lastTotal = sent, total
		},
		onBodySent: func() { bodySentCalls++ },
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != payload {
		t.Errorf("payload corrupted: %q", data)
	}
	if lastSent != 10 || lastTotal != 10 {
		t.Errorf("final progress %d/%d, want 10/10", lastSent, lastTotal)
	}
	if bodySentCalls != 1 {
		t.Errorf("onBodySent fired %d times, want exactly once", bodySentCalls)
	}

	// trailing reads after EOF must not refire the signal
	if _, err := reader.Read(make([]byte, 1)); err != io.EOF {
		t.Fatalf("expected EOF on drained reader, got %v", err)
	}
	if bodySentCalls != 1 {
		t.Errorf("onBodySent refired on drained reader: %d calls", bodySentCalls)
	}
}
