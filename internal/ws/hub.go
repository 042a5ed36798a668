package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"skill-match/internal/domain/notification"

	"go.uber.org/zap"
)

const EventNotificationCreated = "notification_created"

// NotificationEvent is the frame pushed to a student's open sockets.
type NotificationEvent struct {
	Type         string              `json:"type"`
	Notification NotificationPayload `json:"notification"`
	Timestamp    string              `json:"timestamp"`
}

type NotificationPayload struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	OpportunityID string `json:"opportunity_id"`
	Message       string `json:"message"`
	CreatedAt     string `json:"created_at"`
	Read          bool   `json:"read"`
}

type delivery struct {
	studentID string
	payload   []byte
}

// Hub tracks open sockets per student. All map mutations happen on the Run
// goroutine.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	deliver    chan delivery
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *zap.Logger
	now        func() time.Time
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		deliver:    make(chan delivery, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
		now:        time.Now,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.studentID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.studentID] = set
			}
			set[client] = struct{}{}
			total := h.countLocked()
			h.mutex.Unlock()
			h.logger.Debug("ws connected", zap.String("student_id", client.studentID), zap.Int("total_clients", total))

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.removeLocked(client)
			total := h.countLocked()
			h.mutex.Unlock()
			h.logger.Debug("ws disconnected", zap.String("student_id", client.studentID), zap.Int("total_clients", total))

		case d := <-h.deliver:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients[d.studentID]))
			for c := range h.clients[d.studentID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- d.payload:
				default:
					h.mutex.Lock()
					h.removeLocked(client)
					h.mutex.Unlock()
				}
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// PushToStudent never blocks; the frame is dropped when the hub is saturated.
func (h *Hub) PushToStudent(studentID string, n notification.Notification) {
	if h == nil || studentID == "" {
		return
	}

	evt := NotificationEvent{
		Type: EventNotificationCreated,
		Notification: NotificationPayload{
			ID:            n.ID,
			Type:          n.Type,
			OpportunityID: n.OpportunityID,
			Message:       n.Message,
			CreatedAt:     n.CreatedAt.UTC().Format(time.RFC3339Nano),
			Read:          n.Read,
		},
		Timestamp: h.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	select {
	case h.deliver <- delivery{studentID: studentID, payload: b}:
	default:
		h.logger.Warn("ws push dropped", zap.String("student_id", studentID), zap.String("reason", "buffer_full"))
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.countLocked()
}

func (h *Hub) countLocked() int {
	total := 0
	for _, set := range h.clients {
		total += len(set)
	}
	return total
}

func (h *Hub) removeLocked(client *Client) {
	set, ok := h.clients[client.studentID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.studentID)
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for _, set := range h.clients {
		for c := range set {
			h.removeLocked(c)
		}
	}
}
