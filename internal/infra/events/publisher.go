package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

// messageWriter часть kafka.Writer, нужная издателю
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Config параметры подключения к kafka
type Config struct {
	Brokers      []string
	Topic        string
	Source       string
	WriteTimeout time.Duration
}

// Publisher отправляет доменные события в kafka
type Publisher struct {
	writer  messageWriter
	source  string
	timeout time.Duration
}

// NewPublisher создает издателя поверх kafka.Writer
func NewPublisher(cfg Config) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("%w: at least one broker is required", ErrInvalidConfig)
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("%w: topic cannot be empty", ErrInvalidConfig)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: 50 * time.Millisecond,
	}

	return newPublisher(writer, cfg.Source, cfg.WriteTimeout), nil
}

func newPublisher(writer messageWriter, source string, timeout time.Duration) *Publisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Publisher{writer: writer, source: source, timeout: timeout}
}

// PublishBookingsCreated отправляет по событию на каждую созданную запись одним батчем
func (p *Publisher) PublishBookingsCreated(ctx context.Context, bookings []domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(bookings))
	for i := range bookings {
		msg, err := p.message(TypeBookingCreated, bookings[i].ID, bookingCreated(&bookings[i]))
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	return p.write(ctx, msgs)
}

// PublishWaitlistJoined отправляет событие о записи в лист ожидания
func (p *Publisher) PublishWaitlistJoined(ctx context.Context, entry *domain.WaitlistEntry) error {
	msg, err := p.message(TypeWaitlistJoined, entry.ID, waitlistJoined(entry))
	if err != nil {
		return err
	}
	return p.write(ctx, []kafka.Message{msg})
}

// Close закрывает writer, дожидаясь отправки буфера
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func (p *Publisher) message(eventType string, key int64, payload interface{}) (kafka.Message, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("%w: marshal %s: %v", ErrPublish, eventType, err)
	}

	return kafka.Message{
		Key:   []byte(strconv.FormatInt(key, 10)),
		Value: value,
		Time:  time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(uuid.NewString())},
			{Key: HeaderEventType, Value: []byte(eventType)},
			{Key: HeaderSource, Value: []byte(p.source)},
		},
	}, nil
}

func (p *Publisher) write(ctx context.Context, msgs []kafka.Message) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}

func bookingCreated(b *domain.Booking) BookingCreated {
	e := BookingCreated{
		BookingID:       b.ID,
		UserID:          b.UserID,
		ProviderID:      b.ProviderID,
		ServiceID:       b.ServiceID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		BookingTime:     b.BookingTime.String(),
		DurationMinutes: b.DurationMinutes,
		TotalPrice:      b.TotalPrice,
		PetName:         b.PetName,
		PetType:         string(b.PetType),
		IsRecurring:     b.IsRecurring,
		PackageID:       b.PackageID,
		CreatedAt:       b.CreatedAt,
	}
	if b.RecurringType != nil {
		cadence := string(*b.RecurringType)
		e.RecurringType = &cadence
	}
	if b.RecurringEndDate != nil {
		end := b.RecurringEndDate.Format(domain.DateFormat)
		e.RecurringEndDate = &end
	}
	return e
}

func waitlistJoined(w *domain.WaitlistEntry) WaitlistJoined {
	e := WaitlistJoined{
		EntryID:    w.ID,
		UserID:     w.UserID,
		ProviderID: w.ProviderID,
		ServiceID:  w.ServiceID,
		CreatedAt:  w.CreatedAt,
	}
	if w.PreferredDate != nil {
		d := w.PreferredDate.Format(domain.DateFormat)
		e.PreferredDate = &d
	}
	if w.PreferredTime != nil {
		t := w.PreferredTime.String()
		e.PreferredTime = &t
	}
	return e
}
