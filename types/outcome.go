package types

// Per-file outcome status values reported by the normalization service.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// FileOutcome is the service's per-file result record. Records with an
// unknown or missing status are tolerated and skipped, never fatal.
type FileOutcome struct {
	OriginalName  string `json:"original_name"`
	Status        string `json:"status"`
	ProcessedName string `json:"processed_name,omitempty"`
	Error         string `json:"error,omitempty"`
	Details       string `json:"details,omitempty"`
}

// UploadResponse is the 2xx response body of POST /upload. A body that does
// not carry a job_id and a results array is a protocol error; Results stays
// nil when the field is absent, which is how the orchestrator tells a
// missing list from an empty one.
type UploadResponse struct {
	JobID   string        `json:"job_id"`
	Results []FileOutcome `json:"results"`
}
