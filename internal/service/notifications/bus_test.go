package notifications

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aruizdev/tablero/internal/domain/models"
)

type fakeStore struct {
	mu     sync.Mutex
	saved  []models.Notification
	recent []models.Notification
}

func (f *fakeStore) SaveNotification(_ context.Context, notification models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, notification)
	return nil
}

func (f *fakeStore) RecentNotifications(_ context.Context, _ int) ([]models.Notification, error) {
	return f.recent, nil
}

func notif(i int) models.Notification {
	return models.Notification{
		Kind:      "test",
		Severity:  models.SeverityInfo,
		Title:     fmt.Sprintf("n-%d", i),
		CreatedAt: time.Date(2025, 3, 1, 0, 0, i, 0, time.UTC),
	}
}

func TestBus_PublishAndRecent(t *testing.T) {
	bus := NewBus(nil, nil)

	bus.Publish(notif(1))
	bus.Publish(notif(2))

	recent := bus.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, "n-1", recent[0].Title)
	assert.Equal(t, "n-2", recent[1].Title)
}

func TestBus_HistoryCappedAtFifty(t *testing.T) {
	bus := NewBus(nil, nil)

	for i := 0; i < 120; i++ {
		bus.Publish(notif(i))
	}

	recent := bus.Recent()
	require.Len(t, recent, 50)
	assert.Equal(t, "n-70", recent[0].Title)
	assert.Equal(t, "n-119", recent[49].Title)
}

func TestBus_Subscribe(t *testing.T) {
	bus := NewBus(nil, nil)

	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.Publish(notif(7))

	select {
	case got := <-ch:
		assert.Equal(t, "n-7", got.Title)
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive notification")
	}
}

func TestBus_CancelledSubscriberNotDelivered(t *testing.T) {
	bus := NewBus(nil, nil)

	ch, cancel := bus.Subscribe()
	cancel()
	cancel() // double cancel is safe

	bus.Publish(notif(1))

	_, open := <-ch
	assert.False(t, open)
}

func TestBus_PublishPersists(t *testing.T) {
	store := &fakeStore{}
	bus := NewBus(store, nil)

	bus.Publish(notif(3))

	store.mu.Lock()
	defer store.mu.Unlock()
	require.Len(t, store.saved, 1)
	assert.Equal(t, "n-3", store.saved[0].Title)
}

func TestBus_Restore(t *testing.T) {
	store := &fakeStore{recent: []models.Notification{notif(1), notif(2), notif(3)}}
	bus := NewBus(store, nil)

	require.NoError(t, bus.Restore(context.Background()))

	recent := bus.Recent()
	require.Len(t, recent, 3)
	assert.Equal(t, "n-1", recent[0].Title)
}

func TestBus_PublishStampsCreatedAt(t *testing.T) {
	bus := NewBus(nil, nil)

	bus.Publish(models.Notification{Kind: "test", Title: "no timestamp"})

	recent := bus.Recent()
	require.Len(t, recent, 1)
	assert.False(t, recent[0].CreatedAt.IsZero())
}
