package formatter

import (
	"bytes"
	"strings"

	"cineprofile/internal/scraper"
)

// CSV renders the header and rows with every field quoted, in column order.
// encoding/csv only quotes fields that need it, so records are written here.
func CSV(t scraper.Table) []byte {
	var buf bytes.Buffer
	writeQuoted(&buf, t.Columns)
	for _, row := range t.Rows {
		writeQuoted(&buf, row)
	}
	return buf.Bytes()
}

func writeQuoted(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}
