package progress

import (
	"fmt"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/normsend/normsend-go/tool"
	"github.com/normsend/normsend-go/types"
)

// Estimator produces the single displayed percentage across the two batch
// sub-phases: measured network upload progress, then a synthetic time-based
// estimate while the server processes. The transport only reports upload
// bytes; server processing time is unknown and is estimated toward a 95%
// ceiling until the server actually answers.
type Estimator struct {
	mu      sync.Mutex
	sink    types.Sink
	limiter *rate.Limiter
	tick    time.Duration
	perFile time.Duration

	submissionID  string
	phase         types.Phase
	uploadPercent int
	simulated     float64 // fractional so large batches don't stall on tiny per-tick increments
	increment     float64
	stop          chan struct{}
}

func NewEstimator(cfg *types.AppConfig, sink types.Sink) *Estimator {
	perSec := cfg.ProgressRatePerSec
	if perSec <= 0 {
		perSec = 10
	}
	tick := time.Duration(cfg.ProgressTickMs) * time.Millisecond
	if tick <= 0 {
		tick = 100 * time.Millisecond
	}
	perFile := time.Duration(cfg.PerFileEstimateMs) * time.Millisecond
	if perFile <= 0 {
		perFile = 1500 * time.Millisecond
	}
	return &Estimator{
		sink:    sink,
		limiter: rate.NewLimiter(rate.Limit(perSec), perSec),
		tick:    tick,
		perFile: perFile,
		phase:   types.PhaseIdle,
	}
}

// Begin starts tracking a new batch, superseding and discarding any prior
// one including its synthetic timer.
func (e *Estimator) Begin(submissionID string, fileCount int) {
	e.mu.Lock()
	e.stopSimulationLocked()
	e.submissionID = submissionID
	e.phase = types.PhaseUploading
	e.uploadPercent = 0
	e.simulated = 0
	total := e.perFile * time.Duration(fileCount)
	ticks := math.Max(1, float64(total)/float64(e.tick))
	e.increment = 95 / ticks
	view := e.viewLocked()
	e.mu.Unlock()
	e.publish(view, true)
}

// OnUploadProgress handles a transport byte-progress callback. The displayed
// percent only ever moves forward.
func (e *Estimator) OnUploadProgress(sent, total int64) {
	if total <= 0 {
		return
	}
	e.mu.Lock()
	if e.phase != types.PhaseUploading {
		e.mu.Unlock()
		return
	}
	percent := int(math.Round(float64(sent) / float64(total) * 100))
	if percent > 100 {
		percent = 100
	}
	if percent <= e.uploadPercent {
		e.mu.Unlock()
		return
	}
	e.uploadPercent = percent
	view := e.viewLocked()
	e.mu.Unlock()
	e.publish(view, false)
}

// BeginServerPhase switches to the synthetic estimate once the upload body
// is fully sent. The server may take arbitrarily longer than the upload, so
// a timer advances the counter toward 95% and holds there; 100% is only set
// by an actual server response.
func (e *Estimator) BeginServerPhase() {
	e.mu.Lock()
	if e.phase != types.PhaseUploading {
		e.mu.Unlock()
		return
	}
	e.phase = types.PhaseAwaitingServer
	e.simulated = 0
	stop := make(chan struct{})
	e.stop = stop
	view := e.viewLocked()
	e.mu.Unlock()
	e.publish(view, true)
	go e.runSimulation(stop)
}

func (e *Estimator) runSimulation(stop chan struct{}) {
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.advance()
		}
	}
}

// advance applies one synthetic tick. A stale tick racing a terminal event
// finds the phase already changed and does nothing.
func (e *Estimator) advance() {
	e.mu.Lock()
	if e.phase != types.PhaseAwaitingServer {
		e.mu.Unlock()
		return
	}
	before := int(math.Round(math.Min(e.simulated, 95)))
	e.simulated = math.Min(e.simulated+e.increment, 95)
	after := int(math.Round(e.simulated))
	view := e.viewLocked()
	e.mu.Unlock()
	if after != before {
		e.publish(view, false)
	}
}

// Complete marks the batch done after a successful server response. Stopping
// the synthetic timer is the first action, and repeated terminal calls are
// no-ops.
func (e *Estimator) Complete() {
	e.mu.Lock()
	e.stopSimulationLocked()
	if e.phase.Terminal() {
		e.mu.Unlock()
		return
	}
	e.phase = types.PhaseCompleted
	e.uploadPercent = 100
	view := e.viewLocked()
	e.mu.Unlock()
	e.publish(view, true)
}

// Fail marks the batch failed from any non-terminal state.
func (e *Estimator) Fail() {
	e.mu.Lock()
	e.stopSimulationLocked()
	if e.phase.Terminal() {
		e.mu.Unlock()
		return
	}
	e.phase = types.PhaseFailed
	view := e.viewLocked()
	e.mu.Unlock()
	e.publish(view, true)
}

// StopSimulation cancels the synthetic timer without a phase change. The
// orchestrator calls it the moment the transport produces a terminal event,
// before any response parsing.
func (e *Estimator) StopSimulation() {
	e.mu.Lock()
	e.stopSimulationLocked()
	e.mu.Unlock()
}

// Reset returns the estimator to Idle, cancelling any pending timer.
func (e *Estimator) Reset() {
	e.mu.Lock()
	e.stopSimulationLocked()
	e.submissionID = ""
	e.phase = types.PhaseIdle
	e.uploadPercent = 0
	e.simulated = 0
	view := e.viewLocked()
	e.mu.Unlock()
	e.publish(view, true)
}

// Snapshot returns the current displayed progress state.
func (e *Estimator) Snapshot() types.ProgressView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewLocked()
}

// Phase returns the current phase.
func (e *Estimator) Phase() types.Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

func (e *Estimator) stopSimulationLocked() {
	if e.stop != nil {
		close(e.stop)
		e.stop = nil
		tool.DefaultLogger.Debug("Stopped progress simulation")
	}
}

func (e *Estimator) viewLocked() types.ProgressView {
	view := types.ProgressView{
		SubmissionID: e.submissionID,
		Phase:        e.phase,
	}
	switch e.phase {
	case types.PhaseUploading:
		view.Percent = e.uploadPercent
		view.Mode = types.ProgressModeMeasured
		view.Label = fmt.Sprintf("Uploading... %d%%", view.Percent)
	case types.PhaseAwaitingServer:
		view.Percent = int(math.Round(e.simulated))
		view.Mode = types.ProgressModeEstimated
		view.Label = fmt.Sprintf("Estimated processing... %d%%", view.Percent)
	case types.PhaseCompleted:
		view.Percent = 100
		view.Mode = types.ProgressModeMeasured
		view.Label = "Completed"
	case types.PhaseFailed:
		view.Percent = e.uploadPercent
		view.Mode = types.ProgressModeError
		view.Label = "Failed"
	default:
		view.Mode = types.ProgressModeMeasured
		view.Label = "Idle"
	}
	return view
}

// publish pushes a progress event to the sink. Regular ticks are rate
// limited; phase changes and terminal states always go through.
func (e *Estimator) publish(view types.ProgressView, force bool) {
	if e.sink == nil {
		return
	}
	if !force && !e.limiter.Allow() {
		return
	}
	e.sink.Publish(&types.Notification{
		Type: types.NotifyTypeProgress,
		Data: map[string]any{
			"submissionId": view.SubmissionID,
			"percent":      view.Percent,
			"phase":        string(view.Phase),
			"mode":         view.Mode,
			"label":        view.Label,
		},
	})
}
