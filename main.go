package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/normsend/normsend-go/api"
	"github.com/normsend/normsend-go/api/controllers"
	"github.com/normsend/normsend-go/api/notifyhub"
	"github.com/normsend/normsend-go/ledger"
	"github.com/normsend/normsend-go/progress"
	"github.com/normsend/normsend-go/share"
	"github.com/normsend/normsend-go/tool"
	"github.com/normsend/normsend-go/transfer"
)

func main() {
	cfg := tool.SetFlags()
	appCfg, err := tool.LoadConfig(cfg.UseConfigPath)
	if err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}
	if cfg.UseServiceURL != "" {
		appCfg.ServiceURL = cfg.UseServiceURL
	}
	if cfg.UsePort > 0 {
		appCfg.Port = cfg.UsePort
	}
	if cfg.UseResetOnSelect {
		appCfg.ResetOnSelect = true
	}
	if cfg.UsePreflightPing {
		appCfg.PreflightPing = true
	}

	tool.InitLogger()
	switch strings.ToLower(cfg.Log) {
	case "", "dev":
		tool.DefaultLogger.SetLevel(log.DebugLevel)
	case "prod":
		tool.DefaultLogger.SetLevel(log.InfoLevel)
	case "none":
		tool.DefaultLogger.SetLevel(log.FatalLevel)
	default:
		tool.DefaultLogger.Warnf("Unknown log mode %q, using debug level", cfg.Log)
		tool.DefaultLogger.SetLevel(log.DebugLevel)
	}

	tool.SetUploadTimeout(time.Duration(appCfg.UploadTimeoutSec) * time.Second)
	share.SetResultTTL(time.Duration(appCfg.ResultTTLMinutes) * time.Minute)

	hub := notifyhub.New()
	share.SetSink(hub)

	led := ledger.New(&appCfg, hub)
	est := progress.NewEstimator(&appCfg, hub)
	orch := transfer.NewOrchestrator(&appCfg, led, est, hub)
	controllers.Setup(&appCfg, led, est, orch)

	tool.DefaultLogger.Infof("Normalization service: %s (batch limit %s)",
		appCfg.ServiceURL, tool.FormatBytes(appCfg.MaxBatchBytes))

	apiServer := api.NewServer(appCfg.Port, hub)
	if err := apiServer.Start(); err != nil {
		tool.DefaultLogger.Fatalf("API server startup failed: %v", err)
	}
}
