package tool

import (
	"flag"

	"github.com/normsend/normsend-go/types"
)

// SetFlags parses CLI flags and returns the override config.
func SetFlags() types.Config {
	var cfg types.Config
	flag.StringVar(&cfg.Log, "log", "", "log mode: dev|prod|none")
	flag.StringVar(&cfg.UseConfigPath, "useConfigPath", "", "override config file path")
	flag.StringVar(&cfg.UseServiceURL, "useServiceUrl", "", "override normalization service base URL")
	flag.IntVar(&cfg.UsePort, "usePort", 0, "override local control API port")
	flag.BoolVar(&cfg.UseResetOnSelect, "useResetOnSelect", false, "clear the pending list on every new selection event (legacy behavior)")
	flag.BoolVar(&cfg.UsePreflightPing, "usePreflightPing", false, "ping the service host before each submit")
	flag.Parse()
	return cfg
}
