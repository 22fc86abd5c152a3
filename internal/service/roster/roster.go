// Package roster extracts student names from pasted text and HTML pages.
package roster

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseLines returns one name per non-blank line, trimmed.
func ParseLines(text string) []string {
	names := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		name := normalize(line)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}

// ParseHTML takes the first cell of every table row, or every list item
// when the page has no table cells. Header rows are skipped.
func ParseHTML(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	names := make([]string, 0)
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cell := row.Find("td").First()
		if cell.Length() == 0 {
			return
		}
		if name := normalize(cell.Text()); name != "" {
			names = append(names, name)
		}
	})
	if len(names) > 0 {
		return names, nil
	}

	doc.Find("li").Each(func(_ int, item *goquery.Selection) {
		if name := normalize(item.Text()); name != "" {
			names = append(names, name)
		}
	})

	return names, nil
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
