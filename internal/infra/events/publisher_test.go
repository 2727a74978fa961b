package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestPublisher_PublishBookingsCreated(t *testing.T) {
	w := &recordingWriter{}
	p := newPublisher(w, "petcare-booking", time.Second)

	cadence := domain.CadenceMonthly
	end := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	bookings := []domain.Booking{
		{ID: 1, BookingDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), BookingTime: "10:00", IsRecurring: true, RecurringType: &cadence, RecurringEndDate: &end},
		{ID: 2, BookingDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), BookingTime: "10:00", IsRecurring: true, RecurringType: &cadence, RecurringEndDate: &end},
	}

	require.NoError(t, p.PublishBookingsCreated(context.Background(), bookings))
	require.Len(t, w.msgs, 2)

	msg := w.msgs[0]
	assert.Equal(t, "1", string(msg.Key))
	assert.Equal(t, TypeBookingCreated, header(msg, HeaderEventType))
	assert.Equal(t, "petcare-booking", header(msg, HeaderSource))
	assert.NotEmpty(t, header(msg, HeaderEventID))
	assert.NotEqual(t, header(w.msgs[0], HeaderEventID), header(w.msgs[1], HeaderEventID))

	var payload BookingCreated
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, "2024-03-01", payload.BookingDate)
	require.NotNil(t, payload.RecurringType)
	assert.Equal(t, "monthly", *payload.RecurringType)
	require.NotNil(t, payload.RecurringEndDate)
	assert.Equal(t, "2024-05-01", *payload.RecurringEndDate)
}

func TestPublisher_WriteError(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker down")}
	p := newPublisher(w, "petcare-booking", 0)

	err := p.PublishWaitlistJoined(context.Background(), &domain.WaitlistEntry{ID: 9})
	assert.ErrorIs(t, err, ErrPublish)
}

func TestNewPublisher_Validation(t *testing.T) {
	_, err := NewPublisher(Config{Topic: "bookings"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewPublisher(Config{Brokers: []string{"localhost:9092"}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
