// Package notify delivers notifications to users through an outbound
// webhook and Redis pub/sub channels.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"aurex/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Message is the payload delivered to the webhook and published to Redis.
type Message struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Sender delivers a notification to a user. Implemented by Notifier and
// by test stubs.
type Sender interface {
	Send(ctx context.Context, userID uint, msg Message) error
}

// Notifier fans a notification out to the configured webhook and to the
// user's Redis channel.
type Notifier struct {
	webhookURL string
	rdb        *redis.Client
	httpClient *http.Client
}

// NewNotifier creates a Notifier. Either destination may be absent; a
// nil Redis client or empty webhook URL makes that leg a no-op.
func NewNotifier(webhookURL string, rdb *redis.Client) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		rdb:        rdb,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// UserChannel returns the Redis pub/sub channel for a user.
func UserChannel(userID uint) string {
	return fmt.Sprintf("notifications:user:%d", userID)
}

// Send posts the message to the webhook and publishes it to the user's
// channel. The Redis publish is best-effort; only webhook failures are
// returned.
func (n *Notifier) Send(ctx context.Context, userID uint, msg Message) error {
	if err := n.publish(ctx, userID, msg); err != nil {
		middleware.Logger.WarnContext(ctx, "Notification publish failed",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("error", err.Error()),
		)
	}

	if n.webhookURL == "" {
		return nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func (n *Notifier) publish(ctx context.Context, userID uint, msg Message) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}
