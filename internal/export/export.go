package export

import (
	"fmt"
	"os"
	"path/filepath"

	"cineprofile/internal/formatter"
	"cineprofile/internal/logger"
	"cineprofile/internal/scraper"
)

// WriteAll writes every non-empty table to dir as <name><ext> and returns the
// written paths. Tables without rows are skipped.
func WriteAll(dir string, tables []scraper.Table, format string) ([]string, error) {
	log := logger.For("export")

	if err := ensureDir(dir); err != nil {
		return nil, err
	}

	var written []string
	for _, t := range tables {
		if len(t.Rows) == 0 {
			log.Debug().Str("table", t.Name).Msg("skipping empty table")
			continue
		}

		path := filepath.Join(dir, t.Name+formatter.Extension(format))
		if err := Write(path, t, format); err != nil {
			return written, err
		}
		log.Info().Str("path", path).Int("rows", len(t.Rows)).Msg("export written")
		written = append(written, path)
	}
	return written, nil
}

// Write serializes one table to path.
func Write(path string, t scraper.Table, format string) error {
	data, err := formatter.Format(t, format)
	if err != nil {
		return fmt.Errorf("failed to format %s: %w", t.Name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
