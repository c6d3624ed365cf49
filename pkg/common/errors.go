package common

import "errors"

var (
	// ErrSourceNotFound is returned when an input directory or file does not exist.
	ErrSourceNotFound = errors.New("source not found")
	// ErrNoEntries is returned when no entry survives conversion or parsing.
	ErrNoEntries = errors.New("no entries were successfully processed")
	// ErrUnsupportedFormat is returned for a document extension with no extractor.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)
