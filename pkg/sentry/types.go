// Package sentry exposes a typed issue API on top of the core client.
package sentry

import (
	"time"
)

// Project identifies the project an issue belongs to.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Issue is one grouped error as returned by the Sentry issue endpoints.
// Count is a string on the wire.
type Issue struct {
	ID        string    `json:"id"`
	ShortID   string    `json:"shortId"`
	Title     string    `json:"title"`
	Culprit   string    `json:"culprit"`
	Level     string    `json:"level"`
	Status    string    `json:"status"`
	Count     string    `json:"count"`
	UserCount int       `json:"userCount"`
	FirstSeen time.Time `json:"firstSeen"`
	LastSeen  time.Time `json:"lastSeen"`
	Permalink string    `json:"permalink"`
	Project   Project   `json:"project"`
}

// IssueQuery describes one logical issue listing.
type IssueQuery struct {
	// Query is the free-text Sentry search filter, e.g. "is:unresolved".
	Query string

	// StatsPeriod restricts event stats to a window, e.g. "24h" or "14d".
	StatsPeriod string

	// Environment filters by environment name.
	Environment string

	// Project scopes the listing to one project slug. Empty lists
	// across the whole organization.
	Project string

	// Max caps the number of returned issues. Zero applies the client's
	// default bound.
	Max int
}
