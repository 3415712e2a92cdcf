// Package notifier wraps the push-messaging provider. Delivery is best
// effort: no retry, no backoff. Failures are logged, and tokens the provider
// reports as dead are pruned from the device table.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ashitoshh01/do-or-due-sub000/models"

	"gorm.io/gorm"
)

const DefaultBaseURL = "https://fcm.googleapis.com"

// Error represents a push-provider API error.
type Error struct {
	Message  string
	HTTPCode int
}

func (e *Error) Error() string {
	return fmt.Sprintf("push provider error [%d]: %s", e.HTTPCode, e.Message)
}

type Client struct {
	BaseURL    string
	serverKey  string
	httpClient *http.Client
	db         *gorm.DB
}

// New builds a client. db may be nil, which disables dead-token pruning.
func New(db *gorm.DB) *Client {
	base := os.Getenv("FCM_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		BaseURL:    base,
		serverKey:  os.Getenv("FCM_SERVER_KEY"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		db:         db,
	}
}

type Message struct {
	Title  string
	Body   string
	Tokens []string
	Data   map[string]string
}

type Result struct {
	SuccessCount int `json:"successCount"`
	FailureCount int `json:"failureCount"`
}

type sendRequest struct {
	RegistrationIDs []string          `json:"registration_ids"`
	Notification    notificationBody  `json:"notification"`
	Data            map[string]string `json:"data,omitempty"`
}

type notificationBody struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type sendResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
	Results []struct {
		MessageID string `json:"message_id"`
		Error     string `json:"error"`
	} `json:"results"`
}

// Send multicasts a message to all target tokens and returns delivery counts.
func (c *Client) Send(ctx context.Context, msg Message) (*Result, error) {
	if len(msg.Tokens) == 0 {
		return &Result{}, nil
	}
	if c.serverKey == "" {
		return nil, &Error{Message: "FCM_SERVER_KEY is not set", HTTPCode: 0}
	}

	payload, err := json.Marshal(sendRequest{
		RegistrationIDs: msg.Tokens,
		Notification:    notificationBody{Title: msg.Title, Body: msg.Body},
		Data:            msg.Data,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/fcm/send", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.serverKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Message: string(body), HTTPCode: resp.StatusCode}
	}

	var parsed sendResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode push response: %w", err)
	}

	c.pruneDeadTokens(msg.Tokens, parsed)

	return &Result{SuccessCount: parsed.Success, FailureCount: parsed.Failure}, nil
}

// SendAsync dispatches in a goroutine; used on paths where a push failure
// must not block the caller (task creation, settlement).
func (c *Client) SendAsync(msg Message) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if _, err := c.Send(ctx, msg); err != nil {
			log.Printf("[notifier] async send failed: %v", err)
		}
	}()
}

// pruneDeadTokens deletes registrations the provider reports as gone.
func (c *Client) pruneDeadTokens(tokens []string, resp sendResponse) {
	if c.db == nil {
		return
	}
	var dead []string
	for i, res := range resp.Results {
		if i >= len(tokens) {
			break
		}
		switch res.Error {
		case "NotRegistered", "InvalidRegistration", "MismatchSenderId":
			dead = append(dead, tokens[i])
			log.Printf("[notifier] pruning dead token: %s (%s)", tokens[i], res.Error)
		case "":
		default:
			log.Printf("[notifier] delivery failed for token %s: %s", tokens[i], res.Error)
		}
	}
	if len(dead) == 0 {
		return
	}
	if err := c.db.Where("token IN ?", dead).Delete(&models.DeviceToken{}).Error; err != nil {
		log.Printf("[notifier] failed to prune tokens: %v", err)
	}
}

// parseReviewerIDs parses the comma-separated ADMIN_NOTIFY_USER_IDS value
// into profile ids, skipping blanks and malformed entries.
func parseReviewerIDs(raw string) []uint {
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

// ReviewerTokens loads the push tokens of the reviewer accounts listed in
// ADMIN_NOTIFY_USER_IDS. Empty when the variable is unset or no reviewer has
// a registered device.
func (c *Client) ReviewerTokens() []string {
	ids := parseReviewerIDs(os.Getenv("ADMIN_NOTIFY_USER_IDS"))
	if len(ids) == 0 || c.db == nil {
		return nil
	}
	var rows []models.DeviceToken
	if err := c.db.Where("user_id IN ?", ids).Find(&rows).Error; err != nil {
		log.Printf("[notifier] failed to load reviewer tokens: %v", err)
		return nil
	}
	tokens := make([]string, 0, len(rows))
	for _, row := range rows {
		tokens = append(tokens, row.Token)
	}
	return tokens
}

// UserTokens loads the push tokens registered for a user.
func (c *Client) UserTokens(userID uint) []string {
	if c.db == nil {
		return nil
	}
	var rows []models.DeviceToken
	if err := c.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		log.Printf("[notifier] failed to load tokens for user %d: %v", userID, err)
		return nil
	}
	tokens := make([]string, 0, len(rows))
	for _, row := range rows {
		tokens = append(tokens, row.Token)
	}
	return tokens
}
