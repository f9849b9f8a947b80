// README: Kafka writer construction from a broker list.
package infra

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// ParseBrokers splits a comma-separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// writerBatchTimeout bounds how long a synchronous single-message write
// waits for a batch to fill; kafka-go defaults to one second.
const writerBatchTimeout = 10 * time.Millisecond

// NewKafkaWriter returns a writer tuned for one message per request.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchSize:              1,
		BatchTimeout:           writerBatchTimeout,
		AllowAutoTopicCreation: true,
	}
}
