package types

// Phase is the progress state machine phase for the live batch.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseUploading      Phase = "uploading"
	PhaseAwaitingServer Phase = "awaiting_server"
	PhaseCompleted      Phase = "completed"
	PhaseFailed         Phase = "failed"
)

// Terminal reports whether the phase is a terminal one.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseFailed
}

// Progress display modes. Measured progress comes from transport byte
// counts, estimated progress from the synthetic server-phase clock.
const (
	ProgressModeMeasured  = "measured"
	ProgressModeEstimated = "estimated"
	ProgressModeError     = "error"
)

// ProgressView is the single displayed progress state the estimator
// publishes to the sink.
type ProgressView struct {
	SubmissionID string `json:"submissionId"`
	Percent      int    `json:"percent"`
	Phase        Phase  `json:"phase"`
	Mode         string `json:"mode"`
	Label        string `json:"label"`
}
