package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	// StateSnapshotPrefix keys the persisted slice of a user's session state.
	StateSnapshotPrefix = "state:%d"
	// ToastChannelPrefix is the pub/sub channel for a user's toast feed.
	ToastChannelPrefix = "toasts:user:%d"
)

const (
	// StateSnapshotTTL bounds how long a dormant session state survives.
	StateSnapshotTTL = 30 * 24 * time.Hour
)

func StateSnapshotKey(userID uint) string {
	return fmt.Sprintf(StateSnapshotPrefix, userID)
}

func ToastChannel(userID uint) string {
	return fmt.Sprintf(ToastChannelPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateState(ctx context.Context, userID uint) {
	Invalidate(ctx, StateSnapshotKey(userID))
}
