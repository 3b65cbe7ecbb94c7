package formatter

import (
	"encoding/json"

	"cineprofile/internal/scraper"
)

// JSON renders rows as an array of objects keyed by column name.
func JSON(t scraper.Table) ([]byte, error) {
	records := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]string, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}
	return json.MarshalIndent(records, "", "  ")
}
