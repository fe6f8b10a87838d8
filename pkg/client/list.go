package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// DefaultListLimit bounds ListAll when the caller supplies no cap.
// Unbounded accumulation is not permitted.
const DefaultListLimit = 100

// ListAll drives cursor pagination over a list endpoint, accumulating
// records in server order until max records have been gathered or the
// server reports no further pages. Over-fetch from the final page is
// truncated away. Any request or decode failure discards everything
// accumulated so far; there are no partial results.
func ListAll[T any](ctx context.Context, c *Client, path string, query url.Values, max int) ([]T, error) {
	if max <= 0 {
		max = DefaultListLimit
	}

	records := make([]T, 0, max)
	cursor := ""

	for {
		q := cloneQuery(query)
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		resp, err := c.Do(ctx, http.MethodGet, path, q, nil)
		if err != nil {
			return nil, err
		}

		var page []T
		if err := json.Unmarshal(resp.Body, &page); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}

		records = append(records, page...)
		if len(records) >= max {
			return records[:max], nil
		}

		next := resp.Links.Next
		if next == nil || !next.HasMore {
			return records, nil
		}
		cursor = next.Value
	}
}

// GetOne executes a single-item fetch and decodes the JSON body into T.
// It bypasses the pagination driver entirely.
func GetOne[T any](ctx context.Context, c *Client, path string, query url.Values) (*T, error) {
	resp, err := c.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}

	var record T
	if err := json.Unmarshal(resp.Body, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &record, nil
}

func cloneQuery(query url.Values) url.Values {
	q := url.Values{}
	for key, values := range query {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	return q
}
