package ledger

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sync"

	"github.com/normsend/normsend-go/tool"
	"github.com/normsend/normsend-go/types"
)

// ErrLocked is returned by mutating operations while a batch is in flight.
var ErrLocked = errors.New("selection is locked while a batch is in flight")

// Rejection is one candidate the intake refused, reported per file.
type Rejection struct {
	Name   string
	Reason string
}

// Ledger owns the ordered set of pending files for the next batch.
// Insertion order is display order and is the index used for deletion.
type Ledger struct {
	mu     sync.Mutex
	cfg    *types.AppConfig
	intake *Intake
	sink   types.Sink
	files  []types.PendingFile
	locked bool
}

func New(cfg *types.AppConfig, sink types.Sink) *Ledger {
	return &Ledger{
		cfg:    cfg,
		intake: NewIntake(cfg.AllowedMediaTypes, cfg.AllowedExtensions),
		sink:   sink,
	}
}

// AddCandidates runs one selection event: each candidate goes through intake
// validation, accepted ones are appended in input order, rejects are reported
// individually. Existing entries are kept (additive policy); with
// resetOnSelect the whole list is cleared first, restoring the legacy
// behavior. Publishes one file-list render event at the end.
func (l *Ledger) AddCandidates(candidates []types.FileCandidate) (int, []Rejection, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locked {
		return 0, nil, ErrLocked
	}
	if len(candidates) == 0 {
		return 0, nil, nil
	}
	if l.cfg.ResetOnSelect {
		l.files = l.files[:0]
	}

	added := 0
	var rejections []Rejection
	for _, cand := range candidates {
		name := filepath.Base(cand.Path)
		info, err := os.Stat(cand.Path)
		if err != nil {
			rejections = append(rejections, Rejection{Name: name, Reason: fmt.Sprintf("cannot read file: %v", err)})
			continue
		}
		if info.IsDir() {
			rejections = append(rejections, Rejection{Name: name, Reason: "path is a directory, not a file"})
			continue
		}
		mediaType := cand.MediaType
		if mediaType == "" {
			mediaType = mime.TypeByExtension(filepath.Ext(name))
		}
		verdict := l.intake.Validate(name, mediaType, l.hasName)
		if verdict != Accepted {
			rejections = append(rejections, Rejection{Name: name, Reason: verdict.String()})
			continue
		}
		l.files = append(l.files, types.PendingFile{
			Name:      name,
			SizeBytes: info.Size(),
			MediaType: mediaType,
			Path:      cand.Path,
		})
		added++
	}

	for _, rej := range rejections {
		tool.DefaultLogger.Warnf("File skipped: %s (%s)", rej.Name, rej.Reason)
		l.publish(&types.Notification{
			Type:    types.NotifyTypeIntakeRejected,
			Title:   "File skipped",
			Message: fmt.Sprintf("File skipped: %s. Reason: %s", tool.EscapeMarkup(rej.Name), tool.EscapeMarkup(rej.Reason)),
			Data: map[string]any{
				"name":   tool.EscapeMarkup(rej.Name),
				"reason": tool.EscapeMarkup(rej.Reason),
			},
		})
	}
	l.publishListLocked()
	return added, rejections, nil
}

// Remove deletes the entry at the given position. An out-of-range index is a
// deliberate no-op, not a crash.
func (l *Ledger) Remove(index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locked {
		return ErrLocked
	}
	if index < 0 || index >= len(l.files) {
		tool.DefaultLogger.Warnf("Ignoring delete for out-of-range index %d (have %d files)", index, len(l.files))
		return nil
	}
	removed := l.files[index]
	l.files = append(l.files[:index], l.files[index+1:]...)
	tool.DefaultLogger.Infof("Removed file from selection: %s", removed.Name)
	l.publishListLocked()
	return nil
}

// Reset discards all pending files.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.files = l.files[:0]
	l.publishListLocked()
}

// SetLocked blocks or restores ledger mutation; the orchestrator holds the
// lock for the whole in-flight duration of a batch.
func (l *Ledger) SetLocked(locked bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.locked = locked
}

// Snapshot freezes the current contents as the batch to submit.
func (l *Ledger) Snapshot() []types.PendingFile {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]types.PendingFile, len(l.files))
	copy(out, l.files)
	return out
}

func (l *Ledger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.files)
}

func (l *Ledger) TotalSize() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalSizeLocked()
}

func (l *Ledger) OverBudget() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalSizeLocked() > l.cfg.MaxBatchBytes
}

// CanSubmit is true iff the selection is non-empty and within budget.
func (l *Ledger) CanSubmit() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.files) > 0 && l.totalSizeLocked() <= l.cfg.MaxBatchBytes
}

// View returns the current render model with escaped names and formatted sizes.
func (l *Ledger) View() types.LedgerView {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.viewLocked()
}

func (l *Ledger) hasName(name string) bool {
	for _, f := range l.files {
		if f.Name == name {
			return true
		}
	}
	return false
}

func (l *Ledger) totalSizeLocked() int64 {
	var total int64
	for _, f := range l.files {
		total += f.SizeBytes
	}
	return total
}

func (l *Ledger) viewLocked() types.LedgerView {
	total := l.totalSizeLocked()
	view := types.LedgerView{
		Files:          make([]types.LedgerEntry, 0, len(l.files)),
		TotalSizeBytes: total,
		TotalFormatted: tool.FormatBytes(total),
		OverBudget:     total > l.cfg.MaxBatchBytes,
		CanSubmit:      len(l.files) > 0 && total <= l.cfg.MaxBatchBytes,
	}
	for i, f := range l.files {
		view.Files = append(view.Files, types.LedgerEntry{
			Index:         i,
			Name:          tool.EscapeMarkup(f.Name),
			SizeFormatted: tool.FormatBytes(f.SizeBytes),
		})
	}
	return view
}

// publishListLocked pushes the full list render in one event so the sink
// never observes an intermediate frame.
func (l *Ledger) publishListLocked() {
	view := l.viewLocked()
	l.publish(&types.Notification{
		Type: types.NotifyTypeFileList,
		Data: map[string]any{
			"files":          view.Files,
			"totalSizeBytes": view.TotalSizeBytes,
			"totalFormatted": view.TotalFormatted,
			"overBudget":     view.OverBudget,
			"canSubmit":      view.CanSubmit,
		},
	})
}

func (l *Ledger) publish(n *types.Notification) {
	if l.sink != nil {
		l.sink.Publish(n)
	}
}
