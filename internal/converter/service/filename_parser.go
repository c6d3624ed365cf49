package service

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	exportHashRe = regexp.MustCompile(`[\s-][a-f0-9]{32}$`)

	// "Friday 1 10 25 Gratitude"
	weekdayDateRe = regexp.MustCompile(`^[\p{L}\p{N}_]+\s+(\d{1,2})\s+(\d{1,2})\s+(\d{2,4})`)
	// "2 27 2022 Job Grateful List"
	numericDateRe = regexp.MustCompile(`^(\d{1,2})\s+(\d{1,2})\s+(\d{2,4})`)
	// "Colonoscopy Friday August 5th, 2022"
	monthNameDateRe = regexp.MustCompile(`(?i)(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})`)
)

var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// ParsedFilename is what a filename says about its entry. Date is a
// YYYY-MM-DD string that has not been range checked; it is empty when no
// pattern matched.
type ParsedFilename struct {
	Date  string
	Title string
}

// HasDate reports whether a date pattern matched.
func (p ParsedFilename) HasDate() bool {
	return p.Date != ""
}

// CleanFilename drops the extension and a trailing 32 character export hash.
func CleanFilename(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	name = exportHashRe.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// ParseFilename extracts a date and a residual title from a journal filename.
// Patterns are tried in order: weekday-prefixed numeric, bare numeric, then a
// month name anywhere in the name. Only the numeric forms yield a residual
// title; the month-name form keeps the whole cleaned name as the title.
func ParseFilename(filename string) ParsedFilename {
	name := CleanFilename(filename)

	for _, re := range []*regexp.Regexp{weekdayDateRe, numericDateRe} {
		m := re.FindStringSubmatchIndex(name)
		if m == nil {
			continue
		}
		month, day, year := name[m[2]:m[3]], name[m[4]:m[5]], name[m[6]:m[7]]
		return ParsedFilename{
			Date:  formatDate(year, atoi(month), atoi(day)),
			Title: trimSeparators(name[m[1]:]),
		}
	}

	if m := monthNameDateRe.FindStringSubmatch(name); m != nil {
		month := monthNumbers[strings.ToLower(m[1][:3])]
		return ParsedFilename{
			Date:  formatDate(m[3], month, atoi(m[2])),
			Title: name,
		}
	}

	return ParsedFilename{Title: name}
}

func formatDate(year string, month, day int) string {
	if len(year) == 2 {
		year = "20" + year
	}
	return fmt.Sprintf("%s-%02d-%02d", year, month, day)
}

// trimSeparators drops surrounding space and one leading run of hyphens.
func trimSeparators(s string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(s), "-"))
}

// atoi is only called on \d{1,4} matches.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
