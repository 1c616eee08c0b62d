package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"marquee/internal/config"
	"marquee/internal/services"
)

const userAgent = "marquee-notify/1"

// ntfy priorities on its 1..5 scale. Zero leaves the server default.
const (
	priorityLow  = 2
	priorityHigh = 4
)

// Service delivers upload results to the operator.
type Service interface {
	NotifyUploaded(ctx context.Context, tracker, name, torrentURL string) error
	NotifyUploadFailed(ctx context.Context, tracker, name string, err error) error
	TestNotification(ctx context.Context) error
}

// NewService returns an ntfy publisher for the configured topic, or a
// service that drops everything when no topic is set.
func NewService(cfg *config.Config) Service {
	if cfg == nil || cfg.Notifications.NtfyTopic == "" {
		return discard{}
	}
	server, topic := splitTopic(cfg.Notifications.NtfyTopic)
	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfy{
		server: server,
		topic:  topic,
		client: &http.Client{Timeout: timeout},
	}
}

// splitTopic turns https://host/prefix/topic into the publish endpoint
// https://host/prefix/ and the topic name.
func splitTopic(raw string) (server, topic string) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw, ""
	}
	path := strings.Trim(u.Path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		topic = path[i+1:]
		u.Path = "/" + path[:i+1]
	} else {
		topic = path
		u.Path = "/"
	}
	u.RawQuery, u.Fragment = "", ""
	return u.String(), topic
}

// message is the body of an ntfy JSON publish request.
type message struct {
	Topic    string   `json:"topic"`
	Title    string   `json:"title,omitempty"`
	Message  string   `json:"message"`
	Tags     []string `json:"tags,omitempty"`
	Priority int      `json:"priority,omitempty"`
	Click    string   `json:"click,omitempty"`
}

type ntfy struct {
	server string
	topic  string
	client *http.Client
}

func (n *ntfy) NotifyUploaded(ctx context.Context, tracker, name, torrentURL string) error {
	body := fmt.Sprintf("Uploaded to %s: %s", tracker, name)
	if torrentURL != "" {
		body += "\n" + torrentURL
	}
	return n.publish(ctx, message{
		Title:   "marquee - Uploaded",
		Message: body,
		Tags:    []string{"marquee", "upload", strings.ToLower(tracker)},
		Click:   torrentURL,
	})
}

func (n *ntfy) NotifyUploadFailed(ctx context.Context, tracker, name string, err error) error {
	body := fmt.Sprintf("%s upload %s: %s", tracker, services.Outcome(err), name)
	if err != nil {
		body += "\n" + err.Error()
	}
	return n.publish(ctx, message{
		Title:    "marquee - Upload Failed",
		Message:  body,
		Tags:     []string{"marquee", "upload", "error"},
		Priority: priorityHigh,
	})
}

func (n *ntfy) TestNotification(ctx context.Context) error {
	return n.publish(ctx, message{
		Title:    "marquee - Test",
		Message:  "Notification system test",
		Tags:     []string{"marquee", "test"},
		Priority: priorityLow,
	})
}

func (n *ntfy) publish(ctx context.Context, msg message) error {
	msg.Topic = n.topic
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode ntfy message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.server, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("publish to ntfy: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy %s: %s", resp.Status, bytes.TrimSpace(detail))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type discard struct{}

func (discard) NotifyUploaded(context.Context, string, string, string) error     { return nil }
func (discard) NotifyUploadFailed(context.Context, string, string, error) error { return nil }
func (discard) TestNotification(context.Context) error                          { return nil }
