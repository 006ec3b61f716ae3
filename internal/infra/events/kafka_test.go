//go:build unit

package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"resource-booking/internal/pkg/config"
	"resource-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	ctxErr error
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.ctxErr = ctx.Err()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisherPublishBookingEvent(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	event := shared.BookingEvent{
		Type:       shared.BookingCreated,
		BookingID:  uuid.New(),
		ResourceID: uuid.New(),
		StartTime:  &start,
		EndTime:    &end,
		BookedBy:   "alice",
		OccurredAt: start.Add(-time.Hour),
	}

	t.Run("message is keyed by resource and tagged with the event type", func(t *testing.T) {
		w := &recordingWriter{}
		p := newKafkaPublisher(w, time.Second)

		require.NoError(t, p.PublishBookingEvent(context.Background(), event))
		require.Len(t, w.msgs, 1)

		msg := w.msgs[0]
		assert.Equal(t, event.ResourceID.String(), string(msg.Key))
		require.Len(t, msg.Headers, 1)
		assert.Equal(t, headerEventType, msg.Headers[0].Key)
		assert.Equal(t, "booking.created", string(msg.Headers[0].Value))

		var decoded shared.BookingEvent
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		assert.Equal(t, event.BookingID, decoded.BookingID)
		assert.True(t, start.Equal(*decoded.StartTime))
		assert.Equal(t, "alice", decoded.BookedBy)
	})

	t.Run("writer errors are returned", func(t *testing.T) {
		w := &recordingWriter{err: errors.New("broker down")}
		p := newKafkaPublisher(w, 0)

		err := p.PublishBookingEvent(context.Background(), event)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broker down")
	})

	t.Run("finished request does not cancel the write", func(t *testing.T) {
		w := &recordingWriter{}
		p := newKafkaPublisher(w, time.Second)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.NoError(t, p.PublishBookingEvent(ctx, event))
		require.Len(t, w.msgs, 1)
		assert.NoError(t, w.ctxErr)
	})

	t.Run("close closes the writer", func(t *testing.T) {
		w := &recordingWriter{}
		require.NoError(t, newKafkaPublisher(w, 0).Close())
		assert.True(t, w.closed)
	})
}

func TestNewKafkaPublisherWritesAsync(t *testing.T) {
	p := NewKafkaPublisher(config.KafkaConfig{
		Brokers:      []string{"localhost:9092"},
		BookingTopic: "booking-events",
		WriteTimeout: 5 * time.Second,
	})
	t.Cleanup(func() { _ = p.Close() })

	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.True(t, w.Async)
	assert.NotNil(t, w.Completion)
}

func TestLogDeliveryFailure(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	msg := kafka.Message{
		Key:     []byte("resource-1"),
		Headers: []kafka.Header{{Key: headerEventType, Value: []byte("booking.deleted")}},
	}

	logDeliveryFailure([]kafka.Message{msg}, nil)
	assert.Empty(t, buf.String())

	logDeliveryFailure([]kafka.Message{msg}, errors.New("broker down"))
	out := buf.String()
	assert.Contains(t, out, "booking event delivery failed")
	assert.Contains(t, out, "event_type=booking.deleted")
	assert.Contains(t, out, "key=resource-1")
	assert.Contains(t, out, "broker down")
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.PublishBookingEvent(context.Background(), shared.BookingEvent{}))
}
