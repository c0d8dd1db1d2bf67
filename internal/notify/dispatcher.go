package notify

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"

	"github.com/bookhive/library-service/pkg/kafka"
)

// Dispatcher hands workflow events to the outbound queue. Dispatch is
// fire-and-forget relative to the state transition: callers log failures and
// never roll back the committed write.
type Dispatcher interface {
	Dispatch(ctx context.Context, event Event) error
}

type queueDispatcher struct {
	producer sarama.SyncProducer
}

func NewQueueDispatcher(producer sarama.SyncProducer) Dispatcher {
	return &queueDispatcher{producer: producer}
}

func (d *queueDispatcher) Dispatch(_ context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: kafka.NotificationsTopic,
		Key:   sarama.StringEncoder(event.Kind),
		Value: sarama.ByteEncoder(data),
	}
	if _, _, err = d.producer.SendMessage(msg); err != nil {
		return err
	}
	return nil
}

// NopDispatcher drops events; used when the queue is disabled.
type NopDispatcher struct{}

func (NopDispatcher) Dispatch(context.Context, Event) error { return nil }
