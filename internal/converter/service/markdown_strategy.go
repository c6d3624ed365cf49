package service

import (
	"bytes"
	"strings"

	"github.com/adrg/frontmatter"
)

type frontMatter struct {
	Title string `yaml:"title"`
}

// MarkdownStrategy handles Markdown and plain text journal files.
type MarkdownStrategy struct{}

// NewMarkdownStrategy creates a MarkdownStrategy.
func NewMarkdownStrategy() *MarkdownStrategy {
	return &MarkdownStrategy{}
}

// GetExtensions returns the extensions handled by this strategy.
func (s *MarkdownStrategy) GetExtensions() []string {
	return []string{".md", ".markdown", ".txt"}
}

// Extract strips YAML front matter, takes the first "# " heading as the
// title (dropping a blank line right after it), drops Created:/Updated:
// lines anywhere, and keeps everything else in order.
func (s *MarkdownStrategy) Extract(body []byte) (string, string, error) {
	body = bytes.ReplaceAll(body, []byte("\r\n"), []byte("\n"))

	var meta frontMatter
	if bytes.HasPrefix(body, []byte("---\n")) {
		rest, err := frontmatter.Parse(bytes.NewReader(body), &meta)
		if err == nil {
			body = rest
		} else {
			// not front matter after all, e.g. a leading horizontal rule
			meta = frontMatter{}
		}
	}

	lines := strings.Split(string(body), "\n")
	var (
		title     string
		haveTitle bool
		kept      = make([]string, 0, len(lines))
	)
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		switch {
		case !haveTitle && strings.HasPrefix(line, "# "):
			title = strings.TrimSpace(line[2:])
			haveTitle = true
			if i+1 < len(lines) && strings.TrimSpace(lines[i+1]) == "" {
				i++
			}
		case isMetadataLine(line):
		default:
			kept = append(kept, line)
		}
	}

	if title == "" {
		title = strings.TrimSpace(meta.Title)
	}
	return title, strings.TrimSpace(strings.Join(kept, "\n")), nil
}
