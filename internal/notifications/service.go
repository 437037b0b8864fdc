package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"zenfeeds/internal/config"
)

const userAgent = "zenfeeds/0.1.0"

// Event identifies what happened.
type Event string

const (
	// EventRunCompleted is published after a run finished without a fatal error.
	EventRunCompleted Event = "run_completed"
	// EventRunFailed is published when a run aborted.
	EventRunFailed Event = "run_failed"
	// EventTest is published by `zenfeeds doctor --notify`.
	EventTest Event = "test"
)

// Payload carries event details. Recognized keys: mode, added, failed,
// failedIDs, duration, dryRun, error.
type Payload map[string]any

// Service defines the notification surface exposed to workflow components.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type message struct {
	title    string
	body     string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	msg, ok := format(event, payload)
	if !ok {
		return nil
	}
	return n.send(ctx, msg)
}

func format(event Event, payload Payload) (message, bool) {
	mode := payload.stringValue("mode")
	if mode == "" {
		mode = "sync"
	}
	switch event {
	case EventRunCompleted:
		if payload.boolValue("dryRun") {
			return message{}, false
		}
		added := payload.intValue("added")
		failed := payload.intValue("failed")
		failedIDs := strings.Join(payload.stringsValue("failedIDs"), ", ")
		took := formatDuration(payload.durationValue("duration"))
		switch {
		case added == 0 && failed == 0:
			return message{}, false
		case added == 0:
			return message{
				title: "zenfeeds - Items Failed",
				body:  fmt.Sprintf("⚠️ %d items could not be described: %s", failed, failedIDs),
				tags:  []string{"zenfeeds", "feed", "failed"},
			}, true
		case failed == 0:
			return message{
				title: "zenfeeds - Feed Updated",
				body:  fmt.Sprintf("🧘 %s added %d entries in %s", mode, added, took),
				tags:  []string{"zenfeeds", "feed", "updated"},
			}, true
		default:
			return message{
				title: "zenfeeds - Feed Updated (with errors)",
				body:  fmt.Sprintf("🧘 %s added %d entries, %d failed (%s) in %s", mode, added, failed, failedIDs, took),
				tags:  []string{"zenfeeds", "feed", "partial"},
			}, true
		}
	case EventRunFailed:
		detail := payload.stringValue("error")
		if detail == "" {
			detail = "unknown"
		}
		return message{
			title:    "zenfeeds - Run Failed",
			body:     fmt.Sprintf("❌ %s run failed: %s", mode, detail),
			tags:     []string{"zenfeeds", "error", "alert"},
			priority: "high",
		}, true
	case EventTest:
		return message{
			title:    "zenfeeds - Test",
			body:     "🧪 Notification system test",
			tags:     []string{"zenfeeds", "test"},
			priority: "low",
		}, true
	default:
		return message{}, false
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d <= 0 {
		return "0s"
	}
	return d.String()
}

func (n *ntfyService) send(ctx context.Context, msg message) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if msg.title != "" {
		req.Header.Set("Title", msg.title)
	}
	if len(msg.tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.tags, ","))
	}
	if msg.priority != "" && msg.priority != "default" {
		req.Header.Set("Priority", msg.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (p Payload) stringValue(key string) string {
	if v, ok := p[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func (p Payload) intValue(key string) int {
	if v, ok := p[key].(int); ok {
		return v
	}
	return 0
}

func (p Payload) boolValue(key string) bool {
	v, _ := p[key].(bool)
	return v
}

func (p Payload) stringsValue(key string) []string {
	v, _ := p[key].([]string)
	return v
}

func (p Payload) durationValue(key string) time.Duration {
	v, _ := p[key].(time.Duration)
	return v
}

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }
