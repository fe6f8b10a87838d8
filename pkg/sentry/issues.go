package sentry

import (
	"context"
	"fmt"
	"net/url"

	"github.com/issuegaze/issuegaze/pkg/client"
)

// Service wraps one API connection with an organization scope.
// All listings issued through one Service share the connection's quota
// accounting.
type Service struct {
	client *client.Client
	org    string
}

// NewService creates an issue service for one organization.
func NewService(c *client.Client, org string) (*Service, error) {
	if c == nil {
		return nil, fmt.Errorf("client is required")
	}
	if org == "" {
		return nil, fmt.Errorf("organization is required")
	}
	return &Service{client: c, org: org}, nil
}

// ListIssues fetches up to q.Max issues matching the query, in the order
// the server returns them. Pagination, quota waits and 429 retries are
// handled by the underlying client.
func (s *Service) ListIssues(ctx context.Context, q IssueQuery) ([]Issue, error) {
	path := fmt.Sprintf("/api/0/organizations/%s/issues/", url.PathEscape(s.org))
	if q.Project != "" {
		path = fmt.Sprintf("/api/0/projects/%s/%s/issues/",
			url.PathEscape(s.org), url.PathEscape(q.Project))
	}

	params := url.Values{}
	if q.Query != "" {
		params.Set("query", q.Query)
	}
	if q.StatsPeriod != "" {
		params.Set("statsPeriod", q.StatsPeriod)
	}
	if q.Environment != "" {
		params.Set("environment", q.Environment)
	}

	return client.ListAll[Issue](ctx, s.client, path, params, q.Max)
}

// GetIssue fetches a single issue by its numeric ID, bypassing pagination.
func (s *Service) GetIssue(ctx context.Context, issueID string) (*Issue, error) {
	if issueID == "" {
		return nil, fmt.Errorf("issue ID is required")
	}
	path := fmt.Sprintf("/api/0/organizations/%s/issues/%s/",
		url.PathEscape(s.org), url.PathEscape(issueID))
	return client.GetOne[Issue](ctx, s.client, path, nil)
}
