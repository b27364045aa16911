package controllers

import (
	"github.com/normsend/normsend-go/ledger"
	"github.com/normsend/normsend-go/progress"
	"github.com/normsend/normsend-go/transfer"
	"github.com/normsend/normsend-go/types"
)

var (
	appConfig       *types.AppConfig
	selectionLedger *ledger.Ledger
	estimator       *progress.Estimator
	orchestrator    *transfer.Orchestrator
)

// Setup wires the controller package to the application state. Call once
// from main before the server starts.
func Setup(cfg *types.AppConfig, led *ledger.Ledger, est *progress.Estimator, orch *transfer.Orchestrator) {
	appConfig = cfg
	selectionLedger = led
	estimator = est
	orchestrator = orch
}
