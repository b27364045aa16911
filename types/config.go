package types

// AppConfig represents the application configuration loaded from config file
type AppConfig struct {
	ServiceURL         string   `yaml:"serviceUrl"`         // base URL of the normalization service
	Port               int      `yaml:"port"`               // local control API port
	MaxBatchBytes      int64    `yaml:"maxBatchBytes"`      // total-size budget for one batch, must stay under the server body limit
	AllowedMediaTypes  []string `yaml:"allowedMediaTypes"`  // accepted declared media types
	AllowedExtensions  []string `yaml:"allowedExtensions"`  // accepted file name extensions
	PerFileEstimateMs  int      `yaml:"perFileEstimateMs"`  // estimated server processing time per file
	ProgressTickMs     int      `yaml:"progressTickMs"`     // synthetic progress timer period
	ResetOnSelect      bool     `yaml:"resetOnSelect"`      // legacy behavior: clear the whole list on a new selection event
	PreflightPing      bool     `yaml:"preflightPing"`      // probe the service host before submitting
	ResultTTLMinutes   int      `yaml:"resultTtlMinutes"`   // how long completed batch results stay queryable
	UploadTimeoutSec   int      `yaml:"uploadTimeoutSec"`   // upload request timeout, covers server-side processing too
	ProgressRatePerSec int      `yaml:"progressRatePerSec"` // max progress events pushed to the sink per second
}

// Config holds runtime overrides from CLI flags
type Config struct {
	Log              string
	UseConfigPath    string
	UseServiceURL    string
	UsePort          int
	UseResetOnSelect bool // if true, a new selection event clears the pending list first
	UsePreflightPing bool // if true, ping the service host before each submit
}
