package worker

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/avelune/storefront/internal/model"
)

const (
	fulfillmentQueue = "orders.fulfillment"
	dlxExchange      = "orders.dlx"
	dlqQueueName     = "orders.dlq"
)

// SetupBroker declares the fulfillment queue with its dead-letter wiring.
func SetupBroker(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(dlxExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare DLX: %w", err)
	}
	if _, err := ch.QueueDeclare(dlqQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare DLQ: %w", err)
	}
	if err := ch.QueueBind(dlqQueueName, fulfillmentQueue, dlxExchange, false, nil); err != nil {
		return fmt.Errorf("bind DLQ: %w", err)
	}
	if _, err := ch.QueueDeclare(fulfillmentQueue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    dlxExchange,
		"x-dead-letter-routing-key": fulfillmentQueue,
	}); err != nil {
		return fmt.Errorf("declare fulfillment queue: %w", err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set QoS: %w", err)
	}
	return nil
}

// Publisher announces created orders to the fulfillment queue. A nil
// Publisher (no broker configured) publishes nothing.
type Publisher struct {
	channel *amqp.Channel
}

func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{channel: ch}
}

// OrderCreated is fire-and-forget: checkout never fails because the broker
// is down.
func (p *Publisher) OrderCreated(ctx context.Context, order model.Order) {
	if p == nil || p.channel == nil {
		return
	}
	msg, _ := json.Marshal(model.OrderCreatedMessage{OrderID: order.OrderID})
	_ = p.channel.PublishWithContext(ctx, "", fulfillmentQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         msg,
		DeliveryMode: amqp.Persistent,
	})
}
