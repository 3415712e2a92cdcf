package notifier

import (
	"fmt"
	"math/rand"
)

// Category is the closed set of notification kinds. Composition goes through
// the template table below; there is no fallback category, so adding a
// Category without templates is caught by the exhaustiveness test.
type Category int

const (
	CategoryPanic Category = iota
	CategoryComeback
	CategoryReview
	CategoryGeneric
)

func (c Category) String() string {
	switch c {
	case CategoryPanic:
		return "panic"
	case CategoryComeback:
		return "comeback"
	case CategoryReview:
		return "review"
	case CategoryGeneric:
		return "generic"
	}
	return "unknown"
}

type template struct {
	title string
	body  string // fmt string taking the task objective
}

var templates = map[Category][]template{
	CategoryPanic: {
		{"Clock is ticking!", "Less than 2 hours left on \"%s\". Your stake is on the line."},
		{"Deadline alert", "\"%s\" is due very soon. Submit your proof before it's too late."},
		{"Don't lose your coins", "Time is almost up for \"%s\". Finish it now!"},
		{"Final stretch", "\"%s\" closes in under 2 hours. You've got this."},
	},
	CategoryComeback: {
		{"Tomorrow is a new day", "\"%s\" didn't work out, but your next task can start a new streak."},
		{"Get back up", "You lost a stake on \"%s\". Stake again and win it back."},
	},
	CategoryReview: {
		{"Proof submitted", "A proof for \"%s\" is waiting for review."},
	},
	CategoryGeneric: {
		{"DoOrDue", "%s"},
	},
}

// Compose picks a template for the category (pseudo-randomly when the
// category has several) and fills in the objective.
func Compose(cat Category, objective string) (string, string) {
	set := templates[cat]
	if len(set) == 0 {
		// unreachable for the defined categories; keep the message explicit
		return "DoOrDue", objective
	}
	t := set[rand.Intn(len(set))]
	return t.title, fmt.Sprintf(t.body, objective)
}
