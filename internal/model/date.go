package model

import (
	"fmt"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

// ParseDate accepts the date formats the catalog forms may submit,
// ISO 8601 first.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date: %s", s)
}

// FormatLifeDate renders a lifespan date as "January 2006", or "*"
// when the date is unknown.
func FormatLifeDate(t *time.Time) string {
	if t == nil {
		return "*"
	}
	return t.Format("January 2006")
}

// FormatISO renders yyyy-mm-dd for form pre-fill, empty when absent.
func FormatISO(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
