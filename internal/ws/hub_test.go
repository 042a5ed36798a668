package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"skill-match/internal/domain/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errClosed = errors.New("closed")

type fakeConn struct {
	mu      sync.Mutex
	written [][]byte
	closed  chan struct{}
	once    sync.Once
}

func newFakeConn() *fakeConn { return &fakeConn{closed: make(chan struct{})} }

func (f *fakeConn) SetReadLimit(int64) {}
func (f *fakeConn) SetReadDeadline(time.Time) error { return nil }
func (f *fakeConn) SetWriteDeadline(time.Time) error { return nil }
func (f *fakeConn) SetPongHandler(func(string) error) {}
func (f *fakeConn) ReadMessage() (int, []byte, error) {
	<-f.closed
	return 0, nil, errClosed
}
func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.written = append(f.written, data)
	return nil
}
func (f *fakeConn) Close() error {
	f.once.Do(func() { close(f.closed) })
	return nil
}

func TestHub_PushReachesOnlyTargetStudent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	alice := newClient(hub, newFakeConn(), "alice")
	bob := newClient(hub, newFakeConn(), "bob")
	hub.Register(alice)
	hub.Register(bob)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	hub.PushToStudent("alice", notification.Notification{
		ID:            "n1",
		Type:          notification.TypeOpportunityMatch,
		OpportunityID: "o1",
		Message:       notification.OpportunityMatchMessage("Data intern"),
		CreatedAt:     time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	})

	select {
	case msg := <-alice.send:
		var evt NotificationEvent
		require.NoError(t, json.Unmarshal(msg, &evt))
		assert.Equal(t, EventNotificationCreated, evt.Type)
		assert.Equal(t, "n1", evt.Notification.ID)
		assert.Equal(t, "o1", evt.Notification.OpportunityID)
		assert.Equal(t, "2024-05-01T10:00:00Z", evt.Notification.CreatedAt)
	case <-time.After(time.Second):
		t.Fatal("alice did not receive the notification")
	}

	select {
	case <-bob.send:
		t.Fatal("bob must not receive alice's notification")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	c := newClient(hub, newFakeConn(), "alice")
	hub.Register(c)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Unregister(c)
	hub.Unregister(c)
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-c.send
	assert.False(t, ok)
}

func TestClient_WritePumpForwardsFrames(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	fc := newFakeConn()
	c := newClient(hub, fc, "alice")
	hub.Register(c)
	go c.WritePump()
	go c.ReadPump()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.PushToStudent("alice", notification.Notification{ID: "n1"})
	require.Eventually(t, func() bool {
		fc.mu.Lock()
		defer fc.mu.Unlock()
		return len(fc.written) == 1
	}, time.Second, 5*time.Millisecond)

	_ = fc.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_NilIsSafe(t *testing.T) {
	var hub *Hub
	hub.PushToStudent("alice", notification.Notification{})
	hub.Register(nil)
	assert.Zero(t, hub.ClientCount())
}
