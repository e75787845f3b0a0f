package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Consumer reads QueueName and appends one line per event to
// <LogDir>/complaints.log.
type Consumer struct {
	URL    string
	LogDir string
	Logger zerolog.Logger
}

// Run connects to the broker, declares the durable queue and consumes until
// ctx is cancelled.  Connection failures are retried with a doubling backoff
// capped at 30s; the only returned error is ctx.Err().
func (c *Consumer) Run(ctx context.Context) error {
	url := ResolveURL(c.URL)
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			c.Logger.Warn().Err(err).Dur("retry_in", backoff).Msg("failed to dial broker")
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.Logger.Warn().Err(err).Msg("consume loop ended; reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.Logger.Warn().Err(err).Msg("set QoS failed")
	}
	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(QueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	c.Logger.Info().Str("queue", QueueName).Msg("consuming audit events")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.HandleMessage(d.Body); err != nil {
				c.Logger.Error().Err(err).Msg("handle message failed")
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// HandleMessage decodes one delivery body and appends its audit line.
func (c *Consumer) HandleMessage(body []byte) error {
	var ev ComplaintEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Type == "" {
		return errors.New("event without type")
	}
	dir := c.LogDir
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "complaints.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLine renders ev as a single newline-terminated audit line.
func FormatLine(ev ComplaintEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s | event_id=%s | id_complaint=%d",
		ev.OccurredAt.UTC().Format(time.RFC3339), ev.Type, ev.ID, ev.ComplaintID)
	if ev.PublicEntityID != 0 {
		fmt.Fprintf(&b, " | id_public_entity=%d", ev.PublicEntityID)
	}
	if ev.Status != "" {
		fmt.Fprintf(&b, " | complaint_status=%s", ev.Status)
	}
	if ev.CommentID != 0 {
		fmt.Fprintf(&b, " | id_comment=%d", ev.CommentID)
	}
	if ev.Username != "" {
		fmt.Fprintf(&b, " | username=%q", ev.Username)
	}
	b.WriteByte('\n')
	return b.String()
}
