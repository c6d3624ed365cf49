package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const htmlBlockSelector = "h1, h2, h3, h4, h5, h6, p, li, blockquote, pre"

// HTMLStrategy handles Notion HTML exports.
type HTMLStrategy struct{}

// NewHTMLStrategy creates an HTMLStrategy.
func NewHTMLStrategy() *HTMLStrategy {
	return &HTMLStrategy{}
}

// GetExtensions returns the extensions handled by this strategy.
func (s *HTMLStrategy) GetExtensions() []string {
	return []string{".html", ".htm"}
}

// Extract uses the first <h1> as the title and the text of the block elements
// as content, one block per line. The property table is ignored.
func (s *HTMLStrategy) Extract(body []byte) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse html: %w", err)
	}

	doc.Find("head, script, style, table.properties").Remove()

	titleNode := doc.Find("h1").First()
	title := normalizeSpace(titleNode.Text())

	root := doc.Find(".page-body")
	if root.Length() == 0 {
		root = doc.Find("body")
	}

	var lines []string
	root.Find(htmlBlockSelector).Each(func(_ int, sel *goquery.Selection) {
		if titleNode.Length() > 0 && sel.IsSelection(titleNode) {
			return
		}
		// the outer block already carries the text of nested blocks
		if sel.ParentsFiltered(htmlBlockSelector).Length() > 0 {
			return
		}
		for _, line := range strings.Split(sel.Text(), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || isMetadataLine(line) {
				continue
			}
			lines = append(lines, line)
		}
	})

	if len(lines) == 0 {
		titleNode.Remove()
		for _, line := range strings.Split(root.Text(), "\n") {
			line = strings.TrimSpace(line)
			if line != "" && !isMetadataLine(line) {
				lines = append(lines, line)
			}
		}
	}

	return title, strings.Join(lines, "\n"), nil
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
