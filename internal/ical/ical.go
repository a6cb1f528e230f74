// Package ical renders holiday sets as iCalendar documents.
package ical

import (
	"sort"
	"strings"
	"time"

	"github.com/breezko/feiertage-api/internal/feiertage"
)

const (
	// ProductID identifies generated calendars
	ProductID = "-//feiertage-wrapper//DE"

	dateLayout    = "2006-01-02"
	compactLayout = "20060102"
	stampLayout   = "20060102T150405Z"
)

type event struct {
	name string
	date time.Time
}

// Render converts a holiday mapping into an iCalendar document. Entries
// whose date does not parse as YYYY-MM-DD are dropped; they never fail
// the whole conversion. scope namespaces the event UIDs (a Bundesland
// code or NATIONAL). now is injected so one document carries a single
// DTSTAMP value and the output is deterministic under test.
//
// The returned document uses CRLF line endings with a trailing CRLF, per
// RFC 5545.
func Render(entries map[string]feiertage.Entry, scope string, now time.Time) string {
	events := make([]event, 0, len(entries))
	for name, entry := range entries {
		date, err := time.Parse(dateLayout, entry.Datum)
		if err != nil {
			continue
		}
		events = append(events, event{name: name, date: date})
	}

	// Map iteration order is randomized, so sort by name first to make
	// the date-tie order reproducible, then stable-sort by date.
	sort.Slice(events, func(i, j int) bool {
		return events[i].name < events[j].name
	})
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].date.Before(events[j].date)
	})

	stamp := now.UTC().Format(stampLayout)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + ProductID,
	}

	for _, ev := range events {
		compact := ev.date.Format(compactLayout)
		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:"+compact+"-"+scope+"@feiertage-wrapper",
			"DTSTAMP:"+stamp,
			"DTSTART;VALUE=DATE:"+compact,
			"SUMMARY:"+ev.name,
			"END:VEVENT",
		)
	}

	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n") + "\r\n"
}
