package eventbus

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Black-And-White-Club/citl/internal/attr"
)

type ping struct {
	Week int `json:"week"`
}

func TestNewMessage_CorrelationID(t *testing.T) {
	ctx := attr.WithCorrelationID(context.Background(), "req-7")
	msg, err := NewMessage(ctx, ping{Week: 3})
	require.NoError(t, err)
	assert.Equal(t, "req-7", middleware.MessageCorrelationID(msg))
	assert.JSONEq(t, `{"week":3}`, string(msg.Payload))

	msg, err = NewMessage(context.Background(), ping{})
	require.NoError(t, err)
	assert.NotEmpty(t, middleware.MessageCorrelationID(msg))
}

func TestNewMessage_Unmarshalable(t *testing.T) {
	_, err := NewMessage(context.Background(), make(chan int))
	assert.Error(t, err)
}

func TestAddConsumer_RoundTrip(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := NewGoChannel(logger)
	defer bus.Close()

	router, err := NewRouter(logger, nil)
	require.NoError(t, err)

	type received struct {
		week int
		cid  string
	}
	got := make(chan received, 1)
	AddConsumer(router, "test.ping", "ping.v1", bus, logger, func(ctx context.Context, p *ping) error {
		got <- received{week: p.Week, cid: attr.CorrelationID(ctx)}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = router.Run(ctx) }()
	<-router.Running()

	// A payload that cannot decode is dropped, not retried.
	require.NoError(t, bus.Publish("ping.v1", message.NewMessage("bad", []byte("not json"))))

	pubCtx := attr.WithCorrelationID(context.Background(), "corr-1")
	require.NoError(t, Publish(pubCtx, bus, "ping.v1", ping{Week: 9}))

	select {
	case r := <-got:
		assert.Equal(t, 9, r.week)
		assert.Equal(t, "corr-1", r.cid)
	case <-time.After(5 * time.Second):
		t.Fatal("message was not consumed")
	}

	require.NoError(t, router.Close())
}
