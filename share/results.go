package share

import (
	"time"

	ttlworker "github.com/FloatTech/ttl"

	"github.com/normsend/normsend-go/tool"
	"github.com/normsend/normsend-go/types"
)

const (
	DefaultResultTTL = 60 * time.Minute
)

var (
	completedBatches = ttlworker.NewCache[string, *types.ResultViewModel](DefaultResultTTL)
	resultSink       types.Sink
)

// SetResultTTL recreates the cache with the configured retention. Call once
// at startup before any result is stored.
func SetResultTTL(ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	completedBatches = ttlworker.NewCache[string, *types.ResultViewModel](ttl)
}

// SetSink wires the presentation sink used for result notifications.
func SetSink(sink types.Sink) {
	resultSink = sink
}

// SetBatchResult stores the reconciled view model for a completed batch and
// pushes the results render event to the sink.
func SetBatchResult(jobID string, vm *types.ResultViewModel) {
	if vm == nil {
		return
	}
	if jobID != "" {
		completedBatches.Set(jobID, vm)
		tool.DefaultLogger.Debugf("Stored batch result for job %s (%d successes)", jobID, len(vm.Successes))
	}
	if resultSink != nil {
		resultSink.Publish(&types.Notification{
			Type:  types.NotifyTypeResults,
			Title: "Batch completed",
			Data: map[string]any{
				"jobId":           vm.JobID,
				"successes":       vm.Successes,
				"anyFailures":     vm.AnyFailures,
				"canDownloadAll":  vm.CanDownloadAll,
				"downloadAllUrl":  vm.DownloadAllURL,
				"invalidResponse": vm.InvalidResponse,
				"noSuccesses":     vm.NoSuccesses,
			},
		})
	}
}

// GetBatchResult returns the cached view model for a job, if still retained.
func GetBatchResult(jobID string) (*types.ResultViewModel, bool) {
	vm := completedBatches.Get(jobID)
	if vm == nil {
		return nil, false
	}
	return vm, true
}
