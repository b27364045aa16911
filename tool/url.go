package tool

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildUploadURL builds the service /upload URL.
func BuildUploadURL(serviceURL string) string {
	return strings.TrimRight(serviceURL, "/") + "/upload"
}

// BuildDownloadURL builds the single-file download URL for a processed file.
// The processed name is escaped for use as a path segment.
func BuildDownloadURL(serviceURL, jobID, processedName string) string {
	return fmt.Sprintf("%s/download/%s/%s",
		strings.TrimRight(serviceURL, "/"), url.PathEscape(jobID), url.PathEscape(processedName))
}

// BuildDownloadZipURL builds the batch download URL for a job.
func BuildDownloadZipURL(serviceURL, jobID string) string {
	return fmt.Sprintf("%s/download_zip/%s",
		strings.TrimRight(serviceURL, "/"), url.PathEscape(jobID))
}

// ServiceHost extracts the host name of the service URL for reachability probing.
func ServiceHost(serviceURL string) (string, error) {
	u, err := url.Parse(serviceURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse service URL: %v", err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("service URL has no host: %s", serviceURL)
	}
	return u.Hostname(), nil
}
