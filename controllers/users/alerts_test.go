package users

import (
	"strings"
	"testing"

	"github.com/ashitoshh01/do-or-due-sub000/notifier"
)

func TestReviewAlert(t *testing.T) {
	msg := reviewAlert("run 5k")
	if !strings.Contains(msg.Body, "run 5k") {
		t.Fatalf("body does not mention the objective: %q", msg.Body)
	}
	if msg.Data["category"] != "review" {
		t.Fatalf("category = %q, want review", msg.Data["category"])
	}
	if len(msg.Tokens) != 0 {
		t.Fatal("tokens must be filled in by the dispatcher, not the template")
	}
}

func TestComebackAlert(t *testing.T) {
	msg := comebackAlert("run 5k")
	if !strings.Contains(msg.Body, "run 5k") {
		t.Fatalf("body does not mention the objective: %q", msg.Body)
	}
	if msg.Data["category"] != "comeback" {
		t.Fatalf("category = %q, want comeback", msg.Data["category"])
	}
}

func TestStakedAlert(t *testing.T) {
	msg := stakedAlert("run 5k", 25)
	if !strings.Contains(msg.Body, "run 5k") || !strings.Contains(msg.Body, "25") {
		t.Fatalf("body missing objective or stake: %q", msg.Body)
	}
}

func TestNotifyReviewers_NoReviewersConfigured(t *testing.T) {
	// Without ADMIN_NOTIFY_USER_IDS the dispatch is a silent no-op; nothing
	// must reach the provider and nothing must panic.
	t.Setenv("ADMIN_NOTIFY_USER_IDS", "")
	c := NewController(nil, notifier.New(nil))
	c.notifyReviewers(reviewAlert("run 5k"))
}
