package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/avelune/storefront/internal/model"
	"github.com/avelune/storefront/internal/store"
)

const idempotencyTTL = 24 * time.Hour

// FulfillmentWorker consumes order-created events and advances the order out
// of pending. The store does no background work of its own; this is an
// ordinary consumer calling its operations.
type FulfillmentWorker struct {
	channel     *amqp.Channel
	store       *store.Store
	redisClient *redis.Client
	log         *slog.Logger
	done        chan struct{}
}

func NewFulfillmentWorker(ch *amqp.Channel, st *store.Store, redisClient *redis.Client, log *slog.Logger) *FulfillmentWorker {
	return &FulfillmentWorker{
		channel:     ch,
		store:       st,
		redisClient: redisClient,
		log:         log,
		done:        make(chan struct{}),
	}
}

func (w *FulfillmentWorker) Start(ctx context.Context) error {
	msgs, err := w.channel.Consume(fulfillmentQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				w.processMessage(ctx, msg)
			case <-w.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	w.log.Info("fulfillment worker started")
	return nil
}

func (w *FulfillmentWorker) Stop() { close(w.done) }

func (w *FulfillmentWorker) processMessage(ctx context.Context, msg amqp.Delivery) {
	var event model.OrderCreatedMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		w.log.Error("unmarshal order event", "error", err)
		_ = msg.Nack(false, false)
		return
	}

	log := w.log.With("order_id", event.OrderID)

	// Idempotency check via Redis; skipped when no client is configured.
	idempotencyKey := "order_fulfilled:" + event.OrderID
	if w.redisClient != nil {
		exists, err := w.redisClient.Exists(ctx, idempotencyKey).Result()
		if err != nil {
			log.Error("check idempotency key", "error", err)
			_ = msg.Nack(false, true)
			return
		}
		if exists > 0 {
			log.Info("order already picked up, skipping")
			_ = msg.Ack(false)
			return
		}
	}

	order, ok := w.store.GetOrder(event.OrderID)
	if !ok {
		log.Error("order not found")
		_ = msg.Nack(false, false) // to DLQ
		return
	}

	if order.Status == model.OrderStatusPending {
		w.store.UpdateOrderStatus(order.OrderID, model.OrderStatusProcessing)
		log.Info("order moved to processing")
	}

	if w.redisClient != nil {
		if err := w.redisClient.Set(ctx, idempotencyKey, "1", idempotencyTTL).Err(); err != nil {
			log.Error("set idempotency key", "error", err)
		}
	}

	_ = msg.Ack(false)
}
