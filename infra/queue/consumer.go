package queue

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/cinematik/backend/internal/interfaces"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"go.uber.org/zap"
)

type KafkaConsumer struct {
	Reader      *kafka.Reader
	Handler     interfaces.ConsumerHandler
	ServiceName string
}

func NewKafkaConsumer(broker, topic, groupID, username, password string, handler interfaces.ConsumerHandler) *KafkaConsumer {
	cfg := kafka.ReaderConfig{
		Brokers:  []string{broker},
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	}

	if username != "" {
		cfg.Dialer = &kafka.Dialer{
			Timeout:   10 * time.Second,
			DualStack: true,
			TLS:       &tls.Config{},
			SASLMechanism: plain.Mechanism{
				Username: username,
				Password: password,
			},
		}
	}

	return &KafkaConsumer{
		Reader:      kafka.NewReader(cfg),
		Handler:     handler,
		ServiceName: "Mail Consumer",
	}
}

func (kc *KafkaConsumer) Listen(ctx context.Context) {
	for {
		msg, err := kc.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			zap.S().Errorw("kafka read error", "service", kc.ServiceName, "err", err)
			continue
		}

		if err := kc.Handler.HandleMessage(string(msg.Value)); err != nil {
			zap.S().Errorw("kafka handler error", "service", kc.ServiceName, "err", err)
		}
	}
}
