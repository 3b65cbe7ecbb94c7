package formatter

import (
	"html"
	"strings"

	"cineprofile/internal/scraper"
)

// HTML renders the table as a titled HTML fragment.
func HTML(t scraper.Table) string {
	var sb strings.Builder
	sb.WriteString("<h1>" + html.EscapeString(t.Name) + "</h1>\n<table>\n<thead><tr>")
	for _, col := range t.Columns {
		sb.WriteString("<th>" + html.EscapeString(col) + "</th>")
	}
	sb.WriteString("</tr></thead>\n<tbody>\n")
	for _, row := range t.Rows {
		sb.WriteString("<tr>")
		for _, cell := range row {
			sb.WriteString("<td>" + html.EscapeString(cell) + "</td>")
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</tbody>\n</table>\n")
	return sb.String()
}
