package types

// PendingFile is one validated file waiting in the selection ledger.
// Identity is the full, case-sensitive file name; the ledger never holds
// two entries with the same name.
type PendingFile struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"sizeBytes"`
	MediaType string `json:"mediaType"`
	// Path is the local path the file content is read from at submit time.
	Path string `json:"-"`
}

// FileCandidate is a selection request entry before intake validation.
// MediaType is optional; when empty it is derived from the file extension,
// and a wrong or missing media type with a correct extension still passes.
type FileCandidate struct {
	Path      string `json:"path"`
	MediaType string `json:"mediaType,omitempty"`
}

// LedgerView is the render model the ledger publishes to the sink after
// every mutation. All strings are already escaped for markup insertion.
type LedgerView struct {
	Files          []LedgerEntry `json:"files"`
	TotalSizeBytes int64         `json:"totalSizeBytes"`
	TotalFormatted string        `json:"totalFormatted"`
	OverBudget     bool          `json:"overBudget"`
	CanSubmit      bool          `json:"canSubmit"`
}

// LedgerEntry is one row of the pending file list.
type LedgerEntry struct {
	Index         int    `json:"index"`
	Name          string `json:"name"`
	SizeFormatted string `json:"sizeFormatted"`
}
