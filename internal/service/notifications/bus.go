package notifications

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aruizdev/tablero/internal/domain/models"
)

// historyCap bounds the retained notification history to the most recent
// entries shown by the notification center.
const historyCap = 50

// HistoryStore persists published notifications beyond the process lifetime.
type HistoryStore interface {
	SaveNotification(ctx context.Context, notification models.Notification) error
	RecentNotifications(ctx context.Context, limit int) ([]models.Notification, error)
}

// Bus is an injected publish/subscribe channel with bounded history. It
// replaces a process-global mutable store so tests never reset shared state.
type Bus struct {
	store  HistoryStore
	logger *zap.Logger

	mu          sync.Mutex
	history     []models.Notification
	subscribers map[int]chan models.Notification
	nextSubID   int
}

// NewBus builds a notification bus. The history store is optional; without
// it the bus is purely in-memory.
func NewBus(store HistoryStore, logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		store:       store,
		logger:      logger,
		subscribers: make(map[int]chan models.Notification),
	}
}

// Restore preloads the in-memory history from the persistent store.
func (b *Bus) Restore(ctx context.Context) error {
	if b.store == nil {
		return nil
	}

	recent, err := b.store.RecentNotifications(ctx, historyCap)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.history = recent
	b.trimLocked()
	b.mu.Unlock()

	b.logger.Info("notification history restored", zap.Int("count", len(recent)))
	return nil
}

// Publish appends the notification to the bounded history and fans it out
// to every subscriber. Slow subscribers are skipped, never blocked on.
func (b *Bus) Publish(notification models.Notification) {
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}

	b.mu.Lock()
	b.history = append(b.history, notification)
	b.trimLocked()
	for _, ch := range b.subscribers {
		select {
		case ch <- notification:
		default:
		}
	}
	b.mu.Unlock()

	if b.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := b.store.SaveNotification(ctx, notification); err != nil {
			b.logger.Warn("failed persisting notification", zap.Error(err))
		}
	}
}

// Subscribe registers a listener. The returned cancel func must be called
// to release the subscription.
func (b *Bus) Subscribe() (<-chan models.Notification, func()) {
	ch := make(chan models.Notification, historyCap)

	b.mu.Lock()
	id := b.nextSubID
	b.nextSubID++
	b.subscribers[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(ch)
		}
		b.mu.Unlock()
	}

	return ch, cancel
}

// Recent returns a copy of the retained history, newest last.
func (b *Bus) Recent() []models.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]models.Notification, len(b.history))
	copy(out, b.history)
	return out
}

func (b *Bus) trimLocked() {
	if len(b.history) > historyCap {
		b.history = b.history[len(b.history)-historyCap:]
	}
}
