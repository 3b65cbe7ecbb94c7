package formatter

import (
	"fmt"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"

	"cineprofile/internal/scraper"
)

var tableRe = regexp.MustCompile(`(?is)<table\b[^>]*>.*?</table>`)

// Markdown renders the table through its HTML form. Tables are converted with
// goquery into pipe tables; the surrounding markup goes through html-to-markdown.
func Markdown(t scraper.Table) (string, error) {
	var tables []string
	html := tableRe.ReplaceAllStringFunc(HTML(t), func(table string) string {
		tables = append(tables, convertHTMLTableToMarkdown(table))
		return fmt.Sprintf("<p>tableplaceholder%d</p>", len(tables)-1)
	})

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	for i, table := range tables {
		markdown = strings.Replace(markdown, fmt.Sprintf("tableplaceholder%d", i), table, 1)
	}
	return strings.TrimSpace(markdown) + "\n", nil
}

// convertHTMLTableToMarkdown converts the first HTML table to a pipe table.
func convertHTMLTableToMarkdown(tableHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(tableHTML))
	if err != nil {
		return tableHTML
	}

	table := doc.Find("table").First()
	var headers []string
	headerRow := table.Find("thead tr").First()
	if headerRow.Length() == 0 {
		headerRow = table.Find("tr").First()
	}
	headerRow.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		headers = append(headers, cellText(cell))
	})
	if len(headers) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	builder.WriteString("|" + strings.Repeat(" --- |", len(headers)) + "\n")

	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, cellText(cell))
		})
		if len(cells) == 0 {
			return
		}
		builder.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	})

	return strings.TrimRight(builder.String(), "\n")
}

func cellText(cell *goquery.Selection) string {
	text := strings.TrimSpace(cell.Text())
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.ReplaceAll(text, "|", `\|`)
}
