package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"mood-journal/pkg/common"
	"mood-journal/pkg/utils"
)

// Document is one raw source file.
type Document struct {
	Name string
	Body []byte
}

// ExtractedEntry is a document reduced to date, title and content. Date is
// the unvalidated filename date, empty when the filename carries none.
type ExtractedEntry struct {
	Date    string
	Title   string
	Content string
}

// HasDate reports whether the filename yielded a date.
func (e ExtractedEntry) HasDate() bool {
	return e.Date != ""
}

// BodyExtractionStrategy pulls an in-content title and the cleaned content
// out of one document format.
type BodyExtractionStrategy interface {
	Extract(body []byte) (title, content string, err error)
	GetExtensions() []string
}

// EntryExtractor combines the filename parser with the body strategy
// registered for the document's extension.
type EntryExtractor interface {
	Extract(doc Document) (ExtractedEntry, error)
	Supports(filename string) bool
}

// NewEntryExtractor creates an EntryExtractor from the given strategies. A
// later strategy wins when two claim the same extension.
func NewEntryExtractor(strategies ...BodyExtractionStrategy) EntryExtractor {
	strategyMap := make(map[string]BodyExtractionStrategy)
	for _, s := range strategies {
		for _, ext := range s.GetExtensions() {
			strategyMap[strings.ToLower(ext)] = s
		}
	}
	return &entryExtractor{strategies: strategyMap}
}

// NewDefaultEntryExtractor registers the Markdown/text and HTML strategies.
func NewDefaultEntryExtractor() EntryExtractor {
	return NewEntryExtractor(NewMarkdownStrategy(), NewHTMLStrategy())
}

type entryExtractor struct {
	strategies map[string]BodyExtractionStrategy
}

// Supports reports whether a strategy is registered for the file's extension.
func (e *entryExtractor) Supports(filename string) bool {
	_, ok := e.strategies[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Extract takes the date from the filename only; the title comes from the
// content first, then the filename, then a placeholder.
func (e *entryExtractor) Extract(doc Document) (ExtractedEntry, error) {
	strategy, ok := e.strategies[strings.ToLower(filepath.Ext(doc.Name))]
	if !ok {
		return ExtractedEntry{}, fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, doc.Name)
	}

	parsed := ParseFilename(doc.Name)

	contentTitle, content, err := strategy.Extract(doc.Body)
	if err != nil {
		return ExtractedEntry{}, fmt.Errorf("failed to extract %s: %w", doc.Name, err)
	}

	title := contentTitle
	if title == "" {
		title = parsed.Title
	}
	if title == "" {
		title = common.UntitledEntry
	}

	return ExtractedEntry{
		Date:    parsed.Date,
		Title:   utils.CleanToValidUTF8(title),
		Content: utils.CleanToValidUTF8(content),
	}, nil
}

// isMetadataLine reports whether a line is a Notion Created:/Updated: property.
func isMetadataLine(line string) bool {
	return strings.HasPrefix(line, "Created:") || strings.HasPrefix(line, "Updated:")
}
