package notifications

import (
	"context"
	"encoding/json"
	"log"
	"runtime/debug"

	"trenai/internal/appstate"
	"trenai/internal/cache"

	"github.com/redis/go-redis/v9"
)

// Notifier publishes toast events into per-user Redis channels.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a Notifier. A nil client makes every publish a no-op;
// the dashboard then simply polls instead of receiving pushes.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishToast sends a raw payload to a user's toast channel.
func (n *Notifier) PublishToast(ctx context.Context, userID uint, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, cache.ToastChannel(userID), payload).Err()
}

// PublishEvent marshals a queue change event and publishes it to the owning
// user's channel.
func (n *Notifier) PublishEvent(ctx context.Context, ev appstate.ToastEvent) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, cache.ToastChannel(ev.UserID), payload).Err()
}

// StartToastSubscriber subscribes to the toasts:user:* pattern and calls
// onMessage for each incoming message until ctx is canceled.
func (n *Notifier) StartToastSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "toasts:user:*")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in ToastSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
