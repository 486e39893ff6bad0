package model

import "strings"

// RisingQuery is one row of the "rising" related-queries table for a seed.
type RisingQuery struct {
	Query          string `json:"query"`
	Value          int    `json:"value"`
	FormattedValue string `json:"formattedValue"` // e.g. "+250%" or "Breakout"
	Link           string `json:"link"`
}

// FirstQuery returns the first row's query text as is. A missing or blank
// first row yields false.
func FirstQuery(rows []RisingQuery) (string, bool) {
	if len(rows) == 0 {
		return "", false
	}
	if strings.TrimSpace(rows[0].Query) == "" {
		return "", false
	}
	return rows[0].Query, true
}
