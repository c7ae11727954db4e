// Package announce publishes a build-completed event to NATS when
// configured. Publishing is opt-in and failures never affect the build
// outcome; callers log and move on.
package announce

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/hypersite/hypersite/internal/config"
)

// Event is the payload published after a build completes.
type Event struct {
	BuildID    string    `json:"build_id"`
	Outcome    string    `json:"outcome"`
	Pages      int       `json:"pages"`
	Warnings   int       `json:"warnings"`
	DurationMS int64     `json:"duration_ms"`
	BaseURL    string    `json:"base_url,omitempty"`
	Generator  string    `json:"generator"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher holds a NATS connection scoped to one build invocation.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

const connectTimeout = 5 * time.Second

// NewPublisher connects to the configured NATS server. The config must be
// enabled; the connection is closed via Close after publishing.
func NewPublisher(cfg *config.AnnounceConfig) (*Publisher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("announce config is required")
	}
	if !cfg.Enabled {
		return nil, fmt.Errorf("announce is disabled")
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Name("hypersite"),
		nats.Timeout(connectTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	slog.Debug("connected to NATS for build announcements",
		slog.String("url", cfg.URL),
		slog.String("subject", cfg.Subject))

	return &Publisher{conn: conn, subject: cfg.Subject}, nil
}

// Publish emits the event and flushes the connection so the message is on
// the wire before the process exits.
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal build event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish build event: %w", err)
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush build event: %w", err)
	}

	slog.Debug("published build event",
		slog.String("subject", p.subject),
		slog.String("build_id", event.BuildID),
		slog.String("outcome", event.Outcome))
	return nil
}

// Close drains and closes the connection.
func (p *Publisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
