package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/SscSPs/invoice_wizard/internal/core/ports"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes invoice events to a Kafka topic, keyed by invoice number.
type KafkaPublisher struct {
	l     *slog.Logger
	w     messageWriter
	topic string
}

var _ ports.EventPublisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(l *slog.Logger, brokers []string, topic string) *KafkaPublisher {
	l = l.WithGroup("kafka").With("topic", topic)

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireOne,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}

	return newKafkaPublisher(l, w, topic)
}

func newKafkaPublisher(l *slog.Logger, w messageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{l: l, w: w, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.InvoiceEvent) error {
	msg, err := encode(p.topic, event)
	if err != nil {
		return err
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() {
	if err := p.w.Close(); err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}

func encode(topic string, event domain.InvoiceEvent) (kafka.Message, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal event: %w", err)
	}
	return kafka.Message{
		Topic: topic,
		Key:   []byte(event.InvoiceNumber),
		Value: b,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}, nil
}

type infoLogger struct {
	l *slog.Logger
}

func (l *infoLogger) Printf(format string, args ...any) {
	l.l.Debug(fmt.Sprintf(format, args...))
}

type errorLogger struct {
	l *slog.Logger
}

func (l *errorLogger) Printf(format string, args ...any) {
	l.l.Error(fmt.Sprintf(format, args...))
}
