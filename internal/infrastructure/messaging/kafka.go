package messaging

import (
	"context"
	"time"

	"clinic-booking-service/config"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Message is a keyed record with string headers.
type Message struct {
	Key     string
	Value   []byte
	Headers map[string]string
}

// KafkaProducer writes messages to a single topic.
type KafkaProducer struct {
	writer *kafka.Writer
	log    *logrus.Logger
}

// NewKafkaProducer returns nil when no brokers are configured; callers treat a
// nil producer as "publishing disabled".
func NewKafkaProducer(cfg config.KafkaConfig, log *logrus.Logger) *KafkaProducer {
	if len(cfg.Brokers) == 0 {
		log.Warn("Kafka publishing disabled (no brokers configured)")
		return nil
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
	}

	log.Infof("Kafka producer ready: topic=%s brokers=%v", cfg.Topic, cfg.Brokers)
	return &KafkaProducer{writer: writer, log: log}
}

func (p *KafkaProducer) Write(ctx context.Context, messages ...Message) error {
	records := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		headers := make([]kafka.Header, 0, len(m.Headers))
		for k, v := range m.Headers {
			headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
		}
		records = append(records, kafka.Message{
			Key:     []byte(m.Key),
			Value:   m.Value,
			Headers: headers,
		})
	}
	if err := p.writer.WriteMessages(ctx, records...); err != nil {
		p.log.Warnf("Failed to write %d message(s) to %s: %+v", len(records), p.writer.Topic, err)
		return err
	}
	p.log.Debugf("Wrote %d message(s) to %s", len(records), p.writer.Topic)
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
