package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvToConfig overrides cfg fields with environment variables when the
// corresponding variables are set. Callers apply this after file config and
// before flags so that env sits between the two in precedence.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	setInt := func(dst *int, envKey string) {
		if s := strings.TrimSpace(os.Getenv(envKey)); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				*dst = n
			}
		}
	}
	setInt(&cfg.MaxFileSizeMB, "MAX_FILE_SIZE_MB")
	setInt(&cfg.MaxImageSizeMB, "MAX_IMAGE_SIZE_MB")

	// REQUEST_TIMEOUT is whole seconds.
	if s := strings.TrimSpace(os.Getenv("REQUEST_TIMEOUT")); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			cfg.RequestTimeout = time.Duration(n) * time.Second
		}
	}

	if v := strings.TrimSpace(os.Getenv("OUTPUT_DIR")); v != "" {
		cfg.OutputDir = v
	}
}
