package app

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrInputTooLarge aborts the run before any output is written.
var ErrInputTooLarge = errors.New("input file exceeds size limit")

// ValidateInput checks that the input exists and is under the configured size
// cap. Content sniffing is advisory: a suspicious type logs a warning and
// processing continues.
func ValidateInput(cfg Config, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("input file: %w", err)
	}
	maxBytes := int64(cfg.MaxFileSizeMB) * 1024 * 1024
	if info.Size() > maxBytes {
		return fmt.Errorf("%s is %.2fMB (max %dMB): %w",
			path, float64(info.Size())/(1024*1024), cfg.MaxFileSizeMB, ErrInputTooLarge)
	}

	if ct, err := sniffContentType(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("could not sniff content type")
	} else if !isHTMLLike(ct) {
		log.Warn().Str("path", path).Str("contentType", ct).Msg("suspicious content type; processing anyway")
	}

	log.Info().Str("path", path).Int64("bytes", info.Size()).Msg("input validated")
	return nil
}

func sniffContentType(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}

func isHTMLLike(ct string) bool {
	for _, ok := range []string{"text/html", "text/plain", "application/xhtml+xml", "text/xml"} {
		if strings.HasPrefix(ct, ok) {
			return true
		}
	}
	return false
}
