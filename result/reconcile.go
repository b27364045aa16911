package result

import (
	"github.com/normsend/normsend-go/tool"
	"github.com/normsend/normsend-go/types"
)

// Reconcile maps the service's per-file outcomes into the result view model.
// The model is rebuilt from scratch on every response. Malformed records are
// skipped and counted as failures, never fatal; a nil outcome list degrades
// to an explicit invalid-response state instead of panicking.
func Reconcile(serviceURL, jobID string, outcomes []types.FileOutcome) *types.ResultViewModel {
	vm := &types.ResultViewModel{
		JobID:     jobID,
		Successes: []types.ResultEntry{},
	}
	if outcomes == nil {
		tool.DefaultLogger.Error("Reconcile called without an outcome list")
		vm.InvalidResponse = true
		return vm
	}

	for _, outcome := range outcomes {
		switch outcome.Status {
		case types.OutcomeSuccess:
			vm.Successes = append(vm.Successes, types.ResultEntry{
				ProcessedName: tool.EscapeMarkup(outcome.ProcessedName),
				DownloadURL:   tool.BuildDownloadURL(serviceURL, jobID, outcome.ProcessedName),
			})
		case types.OutcomeError:
			detail := outcome.Error
			if detail == "" {
				detail = outcome.Details
			}
			tool.DefaultLogger.Warnf("File %s failed processing: %s", orUnknown(outcome.OriginalName), detail)
			vm.AnyFailures = true
		default:
			tool.DefaultLogger.Warnf("Skipping outcome with unknown status %q for file %s", outcome.Status, orUnknown(outcome.OriginalName))
			vm.AnyFailures = true
		}
	}

	vm.CanDownloadAll = len(vm.Successes) > 0 && jobID != ""
	if vm.CanDownloadAll {
		vm.DownloadAllURL = tool.BuildDownloadZipURL(serviceURL, jobID)
	}
	vm.NoSuccesses = len(vm.Successes) == 0
	return vm
}

func orUnknown(name string) string {
	if name == "" {
		return "unknown"
	}
	return name
}
