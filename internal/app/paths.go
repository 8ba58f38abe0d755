package app

import (
	"os"
	"path/filepath"
)

// Layout is the fixed output shape: <out>/index.html, <out>/styles/styles.css
// and <out>/images/.
type Layout struct {
	Root      string
	StylesDir string
	ImagesDir string
	HTMLFile  string
	CSSFile   string
}

// NewLayout derives the output paths under outputDir.
func NewLayout(outputDir string) Layout {
	styles := filepath.Join(outputDir, "styles")
	return Layout{
		Root:      outputDir,
		StylesDir: styles,
		ImagesDir: filepath.Join(outputDir, "images"),
		HTMLFile:  filepath.Join(outputDir, "index.html"),
		CSSFile:   filepath.Join(styles, "styles.css"),
	}
}

// Ensure creates the directory structure. Called only after input validation
// so a fatal input error never leaves output directories behind.
func (l Layout) Ensure() error {
	for _, dir := range []string{l.Root, l.StylesDir, l.ImagesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
