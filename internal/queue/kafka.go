package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/sirupsen/logrus"

	"github.com/composersite/catalog/internal/model"
)

const flushTimeoutMs = 15 * 1000

// KafkaPublisher writes one message per document, keyed by document id.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaPublisher(brokers, topic string) (*KafkaPublisher, error) {
	if topic == "" {
		topic = DefaultTopic
	}

	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"acks":              "all",
	})
	if err != nil {
		return nil, err
	}

	return &KafkaPublisher{producer: producer, topic: topic}, nil
}

func (k *KafkaPublisher) Publish(ctx context.Context, docs []model.Document) error {
	deliveries := make(chan kafka.Event, len(docs))

	for _, doc := range docs {
		value, err := json.Marshal(doc)
		if err != nil {
			return err
		}

		err = k.producer.Produce(&kafka.Message{
			TopicPartition: kafka.TopicPartition{Topic: &k.topic, Partition: kafka.PartitionAny},
			Key:            []byte(doc.DocumentID()),
			Value:          value,
			Headers:        []kafka.Header{{Key: "_type", Value: []byte(doc.DocumentType())}},
		}, deliveries)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDelivery, err)
		}
	}

	for range docs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-deliveries:
			msg, ok := ev.(*kafka.Message)
			if !ok {
				continue
			}
			if msg.TopicPartition.Error != nil {
				return fmt.Errorf("%w: %s: %v", ErrDelivery, msg.Key, msg.TopicPartition.Error)
			}
		}
	}

	logrus.Infof("published %d documents to %s", len(docs), k.topic)
	return nil
}

func (k *KafkaPublisher) Close() {
	if remaining := k.producer.Flush(flushTimeoutMs); remaining > 0 {
		logrus.Warnf("%d messages were not delivered before close", remaining)
	}
	k.producer.Close()
}
