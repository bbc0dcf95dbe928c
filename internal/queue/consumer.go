package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/palm-beach-resort/internal/logging"
)

// Consumer reads booking events and appends one line per event to LogPath.
type Consumer struct {
	URL     string
	Queue   string
	LogPath string

	mu sync.Mutex // serializes writes to LogPath
}

func NewConsumer(url, logPath string) *Consumer {
	return &Consumer{URL: url, Queue: BookingCreatedQueue, LogPath: logPath}
}

// Run keeps a consumer attached to the broker, reconnecting with backoff,
// until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	log := logging.FromContext(ctx).With().Str("component", "booking-consumer").Logger()
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			log.Warn().Err(err).Dur("retry_in", backoff).Msg("dial broker failed")
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn().Err(err).Msg("consume loop ended; reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	log := logging.FromContext(ctx)
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warn().Err(err).Msg("set QoS failed")
	}
	if _, err := ch.QueueDeclare(c.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(c.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.Handle(d.Body); err != nil {
				log.Error().Err(err).Str("message_id", d.MessageId).Msg("handle booking event failed")
				_ = d.Nack(false, false) // no requeue: a bad payload would loop forever
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Handle decodes one message body and appends it to the booking log.
func (c *Consumer) Handle(body []byte) error {
	var ev BookingCreatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return AppendBookingLog(c.LogPath, ev)
}

// AppendBookingLog writes the event line to path, creating the directory.
func AppendBookingLog(path string, ev BookingCreatedEvent) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(FormatLogLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLogLine renders an event as a single newline-terminated line.
func FormatLogLine(ev BookingCreatedEvent) string {
	room := ev.RoomNumber
	if room == "" {
		room = fmt.Sprint(ev.RoomID)
	}
	return fmt.Sprintf("[%s] Booking created | booking_id=%d | room=%s | guest=%q | email=%s | stay=%s..%s | nights=%d | guests=%d | status=%s | total=%s | event_id=%s\n",
		ev.CreatedAt, ev.BookingID, room, ev.GuestName, ev.GuestEmail, ev.CheckIn, ev.CheckOut, ev.Nights, ev.Guests, ev.Status, ev.TotalPrice.StringFixed(2), ev.EventID)
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
