package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ashitoshh01/do-or-due-sub000/notifier"
)

func TestNotifyAdmin_MethodNotAllowed(t *testing.T) {
	h := NotifyAdmin(notifier.New(nil))
	req := httptest.NewRequest(http.MethodGet, "/v1/notify-admin", nil)
	rec := httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestNotifyAdmin_MissingFields(t *testing.T) {
	h := NotifyAdmin(notifier.New(nil))
	req := httptest.NewRequest(http.MethodPost, "/v1/notify-admin", strings.NewReader(`{"title":"only a title"}`))
	rec := httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestNotifyAdmin_Preflight(t *testing.T) {
	h := NotifyAdmin(notifier.New(nil))
	req := httptest.NewRequest(http.MethodOptions, "/v1/notify-admin", nil)
	rec := httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected open CORS, got %q", got)
	}
}

func TestNotifyAdmin_NoReviewerTokens(t *testing.T) {
	// Without ADMIN_NOTIFY_USER_IDS there are no targets; the relay still
	// answers with zero counts rather than an error.
	t.Setenv("ADMIN_NOTIFY_USER_IDS", "")
	h := NotifyAdmin(notifier.New(nil))
	req := httptest.NewRequest(http.MethodPost, "/v1/notify-admin", strings.NewReader(`{"title":"Proof submitted","body":"Task 42 has a new proof"}`))
	rec := httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result notifier.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if result.SuccessCount != 0 || result.FailureCount != 0 {
		t.Fatalf("expected zero counts, got %+v", result)
	}
}
