// Package redis carries delivery wake-up signals between the API and the
// delivery worker over Redis pub/sub.
package redis

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/ireporter-backend/internal/config"
)

const wakeMessage = "wake"

// Notifier publishes and receives wake-up signals on one channel.
type Notifier struct {
	log     *slog.Logger
	client  *goredis.Client
	channel string
}

// New creates a Notifier. The connection is lazy; call Ping to verify it.
func New(log *slog.Logger, cfg config.RedisConfig) *Notifier {
	return &Notifier{
		log: log.With("adapter", "redis"),
		client: goredis.NewClient(&goredis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		channel: cfg.Channel,
	}
}

// Ping checks connectivity.
func (n *Notifier) Ping(ctx context.Context) error {
	if err := n.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: ping: %w", err)
	}
	return nil
}

// Wake publishes a wake-up signal.
func (n *Notifier) Wake(ctx context.Context) error {
	if err := n.client.Publish(ctx, n.channel, wakeMessage).Err(); err != nil {
		return fmt.Errorf("redis: publish wake: %w", err)
	}
	return nil
}

// Listen subscribes to the channel and returns a signal stream. Signals
// arriving faster than they are consumed are coalesced into one. The
// returned channel is closed when ctx is done or the subscription ends.
func (n *Notifier) Listen(ctx context.Context) <-chan struct{} {
	out := make(chan struct{}, 1)

	sub := n.client.Subscribe(ctx, n.channel)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					n.log.Warn("wake subscription closed")
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()

	return out
}

// Close releases the underlying client.
func (n *Notifier) Close() error {
	return n.client.Close()
}
