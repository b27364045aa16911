package tool

import (
	"net/http"
	"time"
)

var (
	DefaultTimeout = 30 * time.Second
	// UploadTimeout covers the whole upload request including the server-side
	// processing that happens before the response is written.
	UploadTimeout = 600 * time.Second

	ConnectionHttpClient *http.Client
	UploadHttpClient     *http.Client
)

func init() {
	ConnectionHttpClient = NewHTTPClient(DefaultTimeout)
	UploadHttpClient = NewHTTPClient(UploadTimeout)
}

// NewHTTPClient creates an HTTP client with the given total request timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DisableKeepAlives:   false,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// SetUploadTimeout reinitializes the upload client with the configured timeout.
func SetUploadTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	UploadTimeout = timeout
	UploadHttpClient = NewHTTPClient(timeout)
}

func GetHttpClient() *http.Client {
	return ConnectionHttpClient
}

func GetUploadHttpClient() *http.Client {
	return UploadHttpClient
}
