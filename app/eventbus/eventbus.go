// Package eventbus wires the in-process watermill pub/sub and router used to
// fan score events out to subscribers.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Black-And-White-Club/citl/internal/attr"
)

// EventBus publishes and subscribes watermill messages.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

// Publisher is the narrow view services depend on.
type Publisher interface {
	Publish(topic string, messages ...*message.Message) error
}

// NewGoChannel returns an in-memory bus. Messages are lost on restart; stored
// scores stay the source of truth and every subscriber recomputes from them.
func NewGoChannel(logger *slog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
}

// NewRouter builds a router with correlation, panic recovery and retries.
// Router metrics are added when registry is non-nil.
func NewRouter(logger *slog.Logger, registry *prometheus.Registry) (*message.Router, error) {
	wmLogger := watermill.NewSlogLogger(logger)
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 10 * time.Second}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create message router: %w", err)
	}

	if registry != nil {
		metrics.NewPrometheusMetricsBuilder(registry, "citl", "eventbus").AddPrometheusRouterMetrics(router)
	}

	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 100 * time.Millisecond,
			Logger:          wmLogger,
		}.Middleware,
	)
	return router, nil
}

// NewMessage marshals payload to JSON and stamps the correlation id carried
// by ctx, or a fresh one.
func NewMessage(ctx context.Context, payload any) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)

	cid := attr.CorrelationID(ctx)
	if cid == "" {
		cid = watermill.NewUUID()
	}
	middleware.SetCorrelationID(cid, msg)
	return msg, nil
}

// Publish marshals payload and publishes it on topic.
func Publish(ctx context.Context, pub Publisher, topic string, payload any) error {
	msg, err := NewMessage(ctx, payload)
	if err != nil {
		return err
	}
	if err := pub.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// AddConsumer registers a typed handler for topic. Payloads that do not
// decode are logged and acked so they are not retried forever.
func AddConsumer[T any](
	router *message.Router,
	name, topic string,
	sub message.Subscriber,
	logger *slog.Logger,
	handle func(ctx context.Context, payload *T) error,
) {
	router.AddNoPublisherHandler(name, topic, sub, func(msg *message.Message) error {
		ctx := attr.WithCorrelationID(msg.Context(), middleware.MessageCorrelationID(msg))

		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			logger.ErrorContext(ctx, "Dropping undecodable message",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", name),
				attr.String("message_id", msg.UUID),
				attr.Error(err),
			)
			return nil
		}
		return handle(ctx, &payload)
	})
}
