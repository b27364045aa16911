package types

// ResultEntry is one successfully processed file in the view model.
type ResultEntry struct {
	ProcessedName string `json:"processedName"`
	DownloadURL   string `json:"downloadUrl"`
}

// ResultViewModel is derived from the service outcomes, recomputed from
// scratch on every response and never patched incrementally.
type ResultViewModel struct {
	JobID           string        `json:"jobId"`
	Successes       []ResultEntry `json:"successes"`
	AnyFailures     bool          `json:"anyFailures"`
	CanDownloadAll  bool          `json:"canDownloadAll"`
	DownloadAllURL  string        `json:"downloadAllUrl,omitempty"`
	InvalidResponse bool          `json:"invalidResponse"`
	NoSuccesses     bool          `json:"noSuccesses"`
}
