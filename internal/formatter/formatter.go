package formatter

import (
	"fmt"

	"cineprofile/internal/scraper"
)

func Format(t scraper.Table, format string) ([]byte, error) {
	switch format {
	case "csv":
		return CSV(t), nil
	case "json":
		return JSON(t)
	case "markdown":
		md, err := Markdown(t)
		if err != nil {
			return nil, err
		}
		return []byte(md), nil
	case "html":
		return []byte(HTML(t)), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Extension returns the file extension used for a format.
func Extension(format string) string {
	switch format {
	case "markdown":
		return ".md"
	case "json":
		return ".json"
	case "html":
		return ".html"
	default:
		return ".csv"
	}
}
