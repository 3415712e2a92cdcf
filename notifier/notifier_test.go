package notifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		serverKey:  "test-key",
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestSend_CountsFromProviderResponse(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/fcm/send" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":2,"failure":1,"results":[{"message_id":"a"},{"error":"NotRegistered"},{"message_id":"b"}]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	res, err := c.Send(context.Background(), Message{
		Title:  "t",
		Body:   "b",
		Tokens: []string{"tok1", "tok2", "tok3"},
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if res.SuccessCount != 2 || res.FailureCount != 1 {
		t.Fatalf("counts = %d/%d, want 2/1", res.SuccessCount, res.FailureCount)
	}
	if gotAuth != "key=test-key" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
}

func TestSend_EmptyTokensIsNoop(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	res, err := c.Send(context.Background(), Message{Title: "t", Body: "b"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if called {
		t.Fatal("provider called with no target tokens")
	}
	if res.SuccessCount != 0 || res.FailureCount != 0 {
		t.Fatalf("counts = %+v, want zero", res)
	}
}

func TestSend_ProviderErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Send(context.Background(), Message{Title: "t", Body: "b", Tokens: []string{"tok"}})
	if err == nil {
		t.Fatal("expected error on 401")
	}
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("want *Error, got %T", err)
	}
	if perr.HTTPCode != http.StatusUnauthorized {
		t.Fatalf("HTTPCode = %d", perr.HTTPCode)
	}
}

func TestParseReviewerIDs(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"1", 1},
		{"1,2,3", 3},
		{" 4 , 5 ", 2},
		{"abc,6,", 1},
	}
	for _, tc := range cases {
		if got := parseReviewerIDs(tc.raw); len(got) != tc.want {
			t.Fatalf("parseReviewerIDs(%q) = %v, want %d ids", tc.raw, got, tc.want)
		}
	}
}

func TestReviewerTokens_UnsetEnvIsEmpty(t *testing.T) {
	t.Setenv("ADMIN_NOTIFY_USER_IDS", "")
	c := New(nil)
	if got := c.ReviewerTokens(); len(got) != 0 {
		t.Fatalf("ReviewerTokens = %v, want none", got)
	}
}

func TestTemplates_EveryCategoryComposes(t *testing.T) {
	for _, cat := range []Category{CategoryPanic, CategoryComeback, CategoryReview, CategoryGeneric} {
		title, body := Compose(cat, "read 20 pages")
		if title == "" || body == "" {
			t.Fatalf("category %s composed an empty message", cat)
		}
		if cat != CategoryGeneric && !strings.Contains(body, "read 20 pages") {
			t.Fatalf("category %s body does not mention the objective: %q", cat, body)
		}
	}
}
