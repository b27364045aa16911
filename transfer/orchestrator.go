package transfer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/normsend/normsend-go/ledger"
	"github.com/normsend/normsend-go/progress"
	"github.com/normsend/normsend-go/result"
	"github.com/normsend/normsend-go/share"
	"github.com/normsend/normsend-go/tool"
	"github.com/normsend/normsend-go/types"
)

// ErrBatchInFlight is returned when a submission is attempted while another
// batch is still running. Overlapping batches are refused, not queued.
var ErrBatchInFlight = errors.New("a batch is already in flight")

// Orchestrator drives one batch submission end-to-end: freezes the ledger,
// builds and sends the multipart payload, wires the estimator to the
// transport lifecycle and terminates in exactly one of success,
// partial-success or failure.
type Orchestrator struct {
	mu        sync.Mutex
	inFlight  bool
	cfg       *types.AppConfig
	ledger    *ledger.Ledger
	estimator *progress.Estimator
	sink      types.Sink
}

func NewOrchestrator(cfg *types.AppConfig, led *ledger.Ledger, est *progress.Estimator, sink types.Sink) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg,
		ledger:    led,
		estimator: est,
		sink:      sink,
	}
}

// InFlight reports whether a batch is currently running.
func (o *Orchestrator) InFlight() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight
}

// ResetTransient clears progress state ahead of a new selection event. The
// pending file list itself is kept; a running batch is left untouched.
func (o *Orchestrator) ResetTransient() {
	o.mu.Lock()
	inFlight := o.inFlight
	o.mu.Unlock()
	if inFlight {
		return
	}
	o.estimator.Reset()
}

// Submit runs one batch. Submitting with nothing to submit is a no-op; a
// batch over the size budget never reaches the transport. The ledger and the
// submit affordance are restored on every exit path.
func (o *Orchestrator) Submit(ctx context.Context) (*types.ResultViewModel, error) {
	if !o.ledger.CanSubmit() {
		if o.ledger.OverBudget() {
			tool.DefaultLogger.Warnf("Submit refused: total size %s exceeds the %s limit",
				tool.FormatBytes(o.ledger.TotalSize()), tool.FormatBytes(o.cfg.MaxBatchBytes))
		} else {
			tool.DefaultLogger.Warn("Submit requested with no files to process")
		}
		return nil, nil
	}

	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return nil, ErrBatchInFlight
	}
	o.inFlight = true
	o.mu.Unlock()

	batch := o.ledger.Snapshot()
	submissionID := tool.GenerateRandomUUID()
	o.ledger.SetLocked(true)
	o.publishUIState(false)
	defer func() {
		o.ledger.SetLocked(false)
		o.publishUIState(true)
		o.mu.Lock()
		o.inFlight = false
		o.mu.Unlock()
	}()

	tool.DefaultLogger.Infof("Starting batch %s: %d file(s), %s total",
		submissionID, len(batch), tool.FormatBytes(o.ledger.TotalSize()))

	if o.cfg.PreflightPing {
		if host, err := tool.ServiceHost(o.cfg.ServiceURL); err == nil {
			if perr := tool.ProbeHost(host); perr != nil {
				tool.DefaultLogger.Warnf("Preflight probe: %v", perr)
			}
		}
	}

	o.estimator.Begin(submissionID, len(batch))

	body, contentType, err := BuildBatchBody(batch)
	if err != nil {
		o.estimator.Fail()
		o.failBatch(submissionID, "Failed to prepare the batch payload.", err.Error())
		return nil, err
	}

	status, respBody, err := DoUpload(ctx, tool.BuildUploadURL(o.cfg.ServiceURL), body, contentType,
		o.estimator.OnUploadProgress, o.estimator.BeginServerPhase)
	if err != nil {
		o.estimator.Fail()
		o.failBatch(submissionID, "Network error during upload.", err.Error())
		return nil, err
	}

	// The transport has spoken; cancel the synthetic timer before any
	// response handling so a stale tick cannot overwrite what follows.
	o.estimator.StopSimulation()

	if status < 200 || status >= 300 {
		msg := serverErrorMessage(status, respBody)
		o.estimator.Fail()
		o.failBatch(submissionID, "Upload failed: "+msg, string(respBody))
		return nil, fmt.Errorf("upload failed with status %d: %s", status, msg)
	}

	parsed, err := ParseUploadResponse(respBody)
	if err != nil {
		o.estimator.Fail()
		o.failBatch(submissionID, err.Error(), string(respBody))
		return nil, err
	}

	o.estimator.Complete()
	vm := result.Reconcile(o.cfg.ServiceURL, parsed.JobID, parsed.Results)
	share.SetBatchResult(parsed.JobID, vm)
	tool.DefaultLogger.Infof("Batch %s completed: job %s, %d success(es), failures=%v",
		submissionID, parsed.JobID, len(vm.Successes), vm.AnyFailures)
	return vm, nil
}

// ParseUploadResponse validates the 2xx body against the expected job
// descriptor shape. Anything else is a protocol error.
func ParseUploadResponse(body []byte) (*types.UploadResponse, error) {
	var parsed types.UploadResponse
	if err := sonic.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("invalid server response (malformed JSON): %v", err)
	}
	if parsed.JobID == "" {
		return nil, errors.New("invalid server response (missing job_id)")
	}
	if parsed.Results == nil {
		return nil, errors.New("invalid server response (missing results list)")
	}
	return &parsed, nil
}

// serverErrorMessage extracts the error field from a non-2xx JSON body,
// falling back to the status line.
func serverErrorMessage(status int, body []byte) string {
	var payload map[string]any
	if err := sonic.Unmarshal(body, &payload); err == nil {
		if msg, ok := payload["error"].(string); ok && msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("server returned status %d", status)
}

func (o *Orchestrator) failBatch(submissionID, message, detail string) {
	tool.DefaultLogger.Errorf("Batch %s failed: %s", submissionID, message)
	if o.sink == nil {
		return
	}
	o.sink.Publish(&types.Notification{
		Type:    types.NotifyTypeBatchError,
		Title:   "Operation failed",
		Message: tool.EscapeMarkup(message),
		Data: map[string]any{
			"submissionId": submissionID,
			"detail":       detail,
		},
	})
}

func (o *Orchestrator) publishUIState(enabled bool) {
	if o.sink == nil {
		return
	}
	o.sink.Publish(&types.Notification{
		Type: types.NotifyTypeUIState,
		Data: map[string]any{
			"pickerEnabled": enabled,
			"submitEnabled": enabled && o.ledger.CanSubmit(),
		},
	})
}
