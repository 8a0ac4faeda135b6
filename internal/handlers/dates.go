package handlers

import (
	"errors"
	"time"
)

var (
	errInvalidMemberSince  = errors.New("Invalid date format for memberSince")
	errInvalidFollowUpDate = errors.New("Invalid date format for followUpDate")
)

// Accepted layouts, most specific first. Covers the ISO shapes browsers
// and the frontend date pickers actually send.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDateInput(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format")
}
