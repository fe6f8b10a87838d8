package sentry

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/issuegaze/issuegaze/internal/testutil"
	"github.com/issuegaze/issuegaze/pkg/client"
)

const issuePage = `[
	{
		"id": "1001",
		"shortId": "APP-1",
		"title": "TypeError: cannot read properties of undefined",
		"culprit": "app/checkout in submitOrder",
		"level": "error",
		"status": "unresolved",
		"count": "412",
		"userCount": 37,
		"firstSeen": "2026-08-01T09:15:00Z",
		"lastSeen": "2026-08-22T18:42:11Z",
		"permalink": "https://sentry.io/organizations/acme/issues/1001/",
		"project": {"id": "7", "name": "Checkout", "slug": "checkout"}
	}
]`

func newTestService(t *testing.T, mock *testutil.MockSentry) *Service {
	t.Helper()

	c, err := client.New(client.Config{
		BaseURL: mock.URL(),
		Token:   "tok",
		Timeout: 5 * time.Second,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("client.New() failed: %v", err)
	}

	svc, err := NewService(c, "acme")
	if err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}
	return svc
}

func TestNewService_Validation(t *testing.T) {
	c, err := client.New(client.Config{BaseURL: "https://sentry.io", Token: "tok"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("client.New() failed: %v", err)
	}

	if _, err := NewService(nil, "acme"); err == nil {
		t.Error("NewService(nil client) succeeded, want error")
	}
	if _, err := NewService(c, ""); err == nil {
		t.Error("NewService(empty org) succeeded, want error")
	}
	if _, err := NewService(c, "acme"); err != nil {
		t.Errorf("NewService() failed: %v", err)
	}
}

func TestListIssues_OrganizationScope(t *testing.T) {
	mock := testutil.NewMockSentry()
	defer mock.Close()

	var gotPath string
	var gotQuery map[string]string
	mock.SetHandler("/api/0/organizations/acme/issues/", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"query":       r.URL.Query().Get("query"),
			"statsPeriod": r.URL.Query().Get("statsPeriod"),
			"environment": r.URL.Query().Get("environment"),
		}
		w.Write([]byte(issuePage))
	})

	svc := newTestService(t, mock)
	issues, err := svc.ListIssues(context.Background(), IssueQuery{
		Query:       "is:unresolved checkout",
		StatsPeriod: "24h",
		Environment: "production",
		Max:         10,
	})
	if err != nil {
		t.Fatalf("ListIssues() failed: %v", err)
	}

	if gotPath != "/api/0/organizations/acme/issues/" {
		t.Errorf("path = %q, want organization issues path", gotPath)
	}
	if gotQuery["query"] != "is:unresolved checkout" {
		t.Errorf("query param = %q", gotQuery["query"])
	}
	if gotQuery["statsPeriod"] != "24h" {
		t.Errorf("statsPeriod param = %q", gotQuery["statsPeriod"])
	}
	if gotQuery["environment"] != "production" {
		t.Errorf("environment param = %q", gotQuery["environment"])
	}

	if len(issues) != 1 {
		t.Fatalf("len(issues) = %d, want 1", len(issues))
	}
	issue := issues[0]
	if issue.ShortID != "APP-1" {
		t.Errorf("ShortID = %q, want APP-1", issue.ShortID)
	}
	if issue.Count != "412" {
		t.Errorf("Count = %q, want the wire string 412", issue.Count)
	}
	if issue.UserCount != 37 {
		t.Errorf("UserCount = %d, want 37", issue.UserCount)
	}
	if issue.Project.Slug != "checkout" {
		t.Errorf("Project.Slug = %q, want checkout", issue.Project.Slug)
	}
	if issue.LastSeen.IsZero() {
		t.Error("LastSeen not parsed")
	}
}

func TestListIssues_ProjectScope(t *testing.T) {
	mock := testutil.NewMockSentry()
	defer mock.Close()

	mock.SetResponse("/api/0/projects/acme/checkout/issues/", testutil.MockResponse{
		Body: issuePage,
	})

	svc := newTestService(t, mock)
	issues, err := svc.ListIssues(context.Background(), IssueQuery{Project: "checkout", Max: 5})
	if err != nil {
		t.Fatalf("ListIssues() failed: %v", err)
	}
	if len(issues) != 1 {
		t.Errorf("len(issues) = %d, want 1", len(issues))
	}
}

func TestGetIssue(t *testing.T) {
	mock := testutil.NewMockSentry()
	defer mock.Close()

	mock.SetResponse("/api/0/organizations/acme/issues/1001/", testutil.MockResponse{
		Body: `{"id":"1001","shortId":"APP-1","title":"boom"}`,
	})

	svc := newTestService(t, mock)
	issue, err := svc.GetIssue(context.Background(), "1001")
	if err != nil {
		t.Fatalf("GetIssue() failed: %v", err)
	}
	if issue.ID != "1001" || issue.Title != "boom" {
		t.Errorf("issue = %+v", issue)
	}

	if _, err := svc.GetIssue(context.Background(), ""); err == nil {
		t.Error("GetIssue(\"\") succeeded, want error")
	}
}

func TestGetIssue_NotFound(t *testing.T) {
	mock := testutil.NewMockSentry()
	defer mock.Close()

	svc := newTestService(t, mock)
	_, err := svc.GetIssue(context.Background(), "9999")
	if !client.IsNotFound(err) {
		t.Errorf("IsNotFound(err) = false, err = %v", err)
	}
}
