package types

// Notification event types pushed to the presentation sink.
const (
	NotifyTypeFileList       = "file_list"
	NotifyTypeIntakeRejected = "intake_rejected"
	NotifyTypeProgress       = "progress"
	NotifyTypeResults        = "results"
	NotifyTypeBatchError     = "batch_error"
	NotifyTypeUIState        = "ui_state"
)

// Notification is one event for the presentation sink.
type Notification struct {
	Type    string         `json:"type"`
	Title   string         `json:"title,omitempty"`
	Message string         `json:"message,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// Sink receives render events from the core. The websocket notify hub is
// the production implementation; tests use a recording sink.
type Sink interface {
	Publish(n *Notification)
}
