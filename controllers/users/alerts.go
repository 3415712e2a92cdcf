package users

import (
	"fmt"

	"github.com/ashitoshh01/do-or-due-sub000/notifier"
)

// reviewAlert builds the push sent to reviewers when a proof lands in the
// queue. Tokens are filled in by notifyReviewers.
func reviewAlert(objective string) notifier.Message {
	title, body := notifier.Compose(notifier.CategoryReview, objective)
	return notifier.Message{
		Title: title,
		Body:  body,
		Data:  map[string]string{"category": notifier.CategoryReview.String()},
	}
}

// comebackAlert builds the push sent to the owner when a task settles failed.
func comebackAlert(objective string) notifier.Message {
	title, body := notifier.Compose(notifier.CategoryComeback, objective)
	return notifier.Message{
		Title: title,
		Body:  body,
		Data:  map[string]string{"category": notifier.CategoryComeback.String()},
	}
}

// stakedAlert tells reviewers a new stake is live.
func stakedAlert(objective string, stake int64) notifier.Message {
	return notifier.Message{
		Title: "New stake",
		Body:  fmt.Sprintf("\"%s\" was just staked for %d coins.", objective, stake),
		Data:  map[string]string{"category": notifier.CategoryGeneric.String()},
	}
}

// notifyReviewers fans a message out to the reviewer devices, fire and
// forget. Silently a no-op when no reviewers are configured.
func (c *Controller) notifyReviewers(msg notifier.Message) {
	tokens := c.Push.ReviewerTokens()
	if len(tokens) == 0 {
		return
	}
	msg.Tokens = tokens
	c.Push.SendAsync(msg)
}
