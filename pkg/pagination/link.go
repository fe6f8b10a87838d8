package pagination

import (
	"strings"
)

// Link relations recognized in the link header. Anything else is ignored.
const (
	relNext     = "next"
	relPrevious = "previous"
)

// Cursor is one usable pagination direction decoded from the link header.
type Cursor struct {
	// Value is the opaque token to pass back as the cursor query parameter.
	Value string

	// HasMore reports whether following this cursor is expected to yield
	// further results (the non-standard results attribute).
	HasMore bool
}

// Links holds the decoded next/previous cursors of one response.
// A nil field means the response carried no usable link for that relation.
type Links struct {
	Next     *Cursor
	Previous *Cursor
}

// ParseLinkHeader decodes a link header value into pagination cursors.
// Segments missing any of rel, results, or cursor, or whose rel is neither
// next nor previous, are dropped. An empty header yields zero links.
func ParseLinkHeader(header string) Links {
	var links Links

	for _, segment := range strings.Split(header, ",") {
		rel, cursor, ok := parseSegment(segment)
		if !ok {
			continue
		}
		switch rel {
		case relNext:
			links.Next = cursor
		case relPrevious:
			links.Previous = cursor
		}
	}

	return links
}

// parseSegment decodes one link segment of the form
//
//	<url>; rel="next"; results="true"; cursor="abc"
//
// The URL is opaque and ignored; only the attributes matter.
func parseSegment(segment string) (string, *Cursor, bool) {
	attrs := make(map[string]string)

	for _, part := range strings.Split(segment, ";") {
		part = strings.TrimSpace(part)
		if part == "" || strings.HasPrefix(part, "<") {
			continue
		}

		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"`)
		attrs[key] = value
	}

	rel := attrs["rel"]
	if rel != relNext && rel != relPrevious {
		return "", nil, false
	}
	results, ok := attrs["results"]
	if !ok {
		return "", nil, false
	}
	cursor, ok := attrs["cursor"]
	if !ok || cursor == "" {
		return "", nil, false
	}

	return rel, &Cursor{Value: cursor, HasMore: results == "true"}, true
}
