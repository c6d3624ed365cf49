package service

import (
	"fmt"
	"time"

	"mood-journal/internal/config"
	"mood-journal/pkg/common"
	"mood-journal/pkg/utils"
)

// DateValidator checks that a filename date is a real calendar date inside a
// plausible window around the current year.
type DateValidator struct {
	cfg config.Converter
	now func() time.Time
}

// NewDateValidator creates a DateValidator for the configured window.
func NewDateValidator(cfg config.Converter) *DateValidator {
	return &DateValidator{cfg: cfg, now: utils.TimeNow}
}

// Validate returns nil for a plausible YYYY-MM-DD date, otherwise an error
// describing what is wrong with it.
func (v *DateValidator) Validate(date string) error {
	t, err := time.Parse(common.DateLayout, date)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}

	year := t.Year()
	if year < v.cfg.MinYear || year > v.cfg.MaxYear {
		return fmt.Errorf("year %d is outside reasonable range (%d-%d)", year, v.cfg.MinYear, v.cfg.MaxYear)
	}

	currentYear := v.now().Year()
	if year > currentYear+v.cfg.MaxFutureYears {
		return fmt.Errorf("date %s is more than %d years in the future", date, v.cfg.MaxFutureYears)
	}
	if year < currentYear-v.cfg.MaxPastYears {
		return fmt.Errorf("date %s is more than %d years in the past", date, v.cfg.MaxPastYears)
	}
	return nil
}
