package app

import "time"

// Configuration defaults; environment variables and a config file may
// override them, flags override both.
const (
	DefaultMaxFileSizeMB  = 10
	DefaultMaxImageSizeMB = 5
	DefaultRequestTimeout = 10 * time.Second
	DefaultOutputDir      = "componetes"
	DefaultMode           = "readable"

	// UserAgent identifies the processor on outbound image requests.
	UserAgent = "htmlproc/2.0 (HTML Processor Bot)"
)

// Config holds runtime configuration for the application.
type Config struct {
	InputPath string
	OutputDir string

	// Mode selects the serializer: "readable" or "minify".
	Mode string

	// Limits
	MaxFileSizeMB  int
	MaxImageSizeMB int
	RequestTimeout time.Duration

	// Behavior
	ExtractMain bool
	Verbose     bool
}

// Default returns a Config carrying only the built-in defaults.
func Default() Config {
	return Config{
		OutputDir:      DefaultOutputDir,
		Mode:           DefaultMode,
		MaxFileSizeMB:  DefaultMaxFileSizeMB,
		MaxImageSizeMB: DefaultMaxImageSizeMB,
		RequestTimeout: DefaultRequestTimeout,
	}
}
