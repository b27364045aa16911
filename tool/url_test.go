package tool

import "testing"

func TestBuildUploadURL(t *testing.T) {
	if got := BuildUploadURL("http://localhost:8080"); got != "http://localhost:8080/upload" {
		t.Errorf("unexpected upload URL %q", got)
	}
	if got := BuildUploadURL("http://localhost:8080/"); got != "http://localhost:8080/upload" {
		t.Errorf("trailing slash not handled: %q", got)
	}
}

func TestBuildDownloadURL(t *testing.T) {
	got := BuildDownloadURL("http://localhost:8080", "J1", "a_norm.mp3")
	if got != "http://localhost:8080/download/J1/a_norm.mp3" {
		t.Errorf("unexpected download URL %q", got)
	}

	// processed names can carry spaces and markup; they travel as one segment
	got = BuildDownloadURL("http://localhost:8080", "J1", "a b<i>.mp3")
	if got != "http://localhost:8080/download/J1/a%20b%3Ci%3E.mp3" {
		t.Errorf("name not path-escaped: %q", got)
	}
}

func TestBuildDownloadZipURL(t *testing.T) {
	if got := BuildDownloadZipURL("http://localhost:8080/", "J1"); got != "http://localhost:8080/download_zip/J1" {
		t.Errorf("unexpected zip URL %q", got)
	}
}

func TestServiceHost(t *testing.T) {
	host, err := ServiceHost("http://norm.example.com:8080/base")
	if err != nil {
		t.Fatalf("ServiceHost returned error: %v", err)
	}
	if host != "norm.example.com" {
		t.Errorf("unexpected host %q", host)
	}

	if _, err := ServiceHost("not a url at all"); err == nil {
		t.Error("expected error for URL without host")
	}
}
