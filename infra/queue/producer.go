package queue

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"go.uber.org/zap"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(broker, topic, username, password string) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		WriteTimeout: 10 * time.Second,
	}

	if username != "" {
		w.Transport = &kafka.Transport{
			SASL: plain.Mechanism{
				Username: username,
				Password: password,
			},
			TLS: &tls.Config{},
		}
	}

	return &Producer{writer: w}
}

func (p *Producer) PublishMessage(key, value []byte) error {
	// If kafka is down we skip rather than fail the request; mail dispatch
	// is best-effort.
	if p == nil || p.writer == nil {
		zap.S().Warn("kafka producer not ready - skip publish")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
		Time:  time.Now(),
	})
}
