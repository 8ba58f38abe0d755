// Package codec holds the small decoding and naming primitives shared by the
// style and image extraction passes: tolerant base64 decoding and
// content-addressed filename derivation.
package codec

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

var nonAlphabet = regexp.MustCompile(`[^A-Za-z0-9+/=]`)

// DecodeBase64 decodes s after stripping whitespace and any characters outside
// the standard base64 alphabet, restoring missing padding. Payloads embedded
// in HTML attributes and CSS frequently arrive with line breaks or stray
// characters injected by editors; decoding the cleaned canonical form keeps
// those inputs usable.
func DecodeBase64(s string) ([]byte, error) {
	s = nonAlphabet.ReplaceAllString(strings.TrimSpace(s), "")
	if m := len(s) % 4; m != 0 {
		s += strings.Repeat("=", 4-m)
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return b, nil
}

// ContentName derives a filename from the decoded resource bytes themselves,
// so byte-identical images collapse to a single file regardless of how the
// source document referenced them.
func ContentName(prefix string, data []byte, ext string) string {
	sum := sha256.Sum256(data)
	return prefix + "_" + hex.EncodeToString(sum[:])[:12] + "." + ext
}

// StyleClass returns the synthetic class name for an inline style declaration
// block. Identical declaration text always maps to the same class, which is
// what lets duplicate inline styles share one rule in the final sheet.
func StyleClass(style string) string {
	sum := sha256.Sum256([]byte(style))
	return "inline_" + hex.EncodeToString(sum[:])[:8]
}
