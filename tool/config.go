package tool

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/normsend/normsend-go/types"
)

var (
	ConfigPath    = "config.yaml" // be aware that it can be changed, default to ./config.yaml
	CurrentConfig types.AppConfig
)

func defaultConfig() types.AppConfig {
	return types.AppConfig{
		ServiceURL:         "http://localhost:8080",
		Port:               53330,
		MaxBatchBytes:      31 * 1024 * 1024, // keep under the service's own body-size ceiling
		AllowedMediaTypes:  []string{"audio/mpeg", "audio/mp3"},
		AllowedExtensions:  []string{".mp3"},
		PerFileEstimateMs:  1500,
		ProgressTickMs:     100,
		ResetOnSelect:      false,
		PreflightPing:      false,
		ResultTTLMinutes:   60,
		UploadTimeoutSec:   600, // the service normalizes inside the request, allow for it
		ProgressRatePerSec: 10,
	}
}

func LoadConfig(path string) (types.AppConfig, error) {
	if path == "" {
		path = ConfigPath
	}
	ConfigPath = path

	cfg := defaultConfig()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file doesn't exist, create with default values
			if writeErr := writeDefaultConfig(path, cfg); writeErr != nil {
				return cfg, fmt.Errorf("config file not found, and failed to generate default config: %v", writeErr)
			}
			DefaultLogger.Infof("Created new config file at %s", path)
			CurrentConfig = cfg
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("config file path is a directory: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %v", err)
	}

	CurrentConfig = cfg
	return cfg, nil
}

func writeDefaultConfig(path string, cfg types.AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func GetCurrentConfig() *types.AppConfig {
	return &CurrentConfig
}
