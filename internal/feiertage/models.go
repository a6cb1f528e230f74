package feiertage

import (
	"encoding/json"
	"fmt"
)

// Entry handles both response shapes of feiertage-api.de:
// - Full shape:     {"datum": "2024-01-01", "hinweis": "..."}
// - nur_daten mode: "2024-01-01"
// Both are resolved into the same struct at parse time so the rest of
// the code never has to branch on the upstream response mode.
type Entry struct {
	Datum   string `json:"datum"`
	Hinweis string `json:"hinweis,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler for Entry
func (e *Entry) UnmarshalJSON(b []byte) error {
	// Try bare date string first (nur_daten=1 mode)
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		e.Datum = s
		e.Hinweis = ""
		return nil
	}

	// Full object shape
	type plain Entry
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("Entry: cannot unmarshal %s", string(b))
	}
	*e = Entry(p)
	return nil
}

// HolidaySet is one upstream response: the verbatim body (served
// unmodified in JSON passthrough mode) plus the parsed entries keyed by
// holiday name.
type HolidaySet struct {
	Raw     []byte
	Entries map[string]Entry
}
