package repository

import (
	"context"
	"fmt"
	"time"

	"skill-match/internal/docstore"
	"skill-match/internal/domain/notification"
	"skill-match/internal/domain/opportunity"

	"go.uber.org/zap"
)

type NotificationRepository interface {
	Create(ctx context.Context, n notification.Notification) error
	ListByStudentID(ctx context.Context, studentID string) ([]notification.Notification, error)
}

type notificationDoc struct {
	ID            text                  `json:"id"`
	StudentID     text                  `json:"student_id"`
	Type          text                  `json:"type"`
	OpportunityID text                  `json:"opportunity_id"`
	Message       text                  `json:"message"`
	CreatedAt     opportunity.Timestamp `json:"created_at"`
	Read          bool                  `json:"read"`
}

type DocNotificationRepository struct {
	store  docstore.Store
	logger *zap.Logger
}

func NewDocNotificationRepository(store docstore.Store, logger *zap.Logger) *DocNotificationRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocNotificationRepository{store: store, logger: logger}
}

func (r *DocNotificationRepository) Create(ctx context.Context, n notification.Notification) error {
	doc := notificationDoc{
		ID:            text(n.ID),
		StudentID:     text(n.StudentID),
		Type:          text(n.Type),
		OpportunityID: text(n.OpportunityID),
		Message:       text(n.Message),
		CreatedAt:     opportunity.NewTimestamp(n.CreatedAt),
		Read:          n.Read,
	}
	if err := r.store.Set(ctx, docstore.CollectionNotifications, n.ID, doc); err != nil {
		return fmt.Errorf("write notification %s: %w", n.ID, err)
	}
	return nil
}

// ListByStudentID scans the whole collection; the store has no secondary
// indexes.
func (r *DocNotificationRepository) ListByStudentID(ctx context.Context, studentID string) ([]notification.Notification, error) {
	docs, err := r.store.List(ctx, docstore.CollectionNotifications)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	out := make([]notification.Notification, 0)
	for _, d := range docs {
		var doc notificationDoc
		if err := decodeObject(d.Data, &doc); err != nil {
			r.logger.Warn("skipping malformed notification", zap.String("notification_id", d.ID), zap.Error(err))
			continue
		}
		if string(doc.StudentID) != studentID {
			continue
		}
		var created time.Time
		if t, err := doc.CreatedAt.Time(); err == nil {
			created = t.UTC()
		}
		out = append(out, notification.Notification{
			ID:            d.ID,
			StudentID:     string(doc.StudentID),
			Type:          string(doc.Type),
			OpportunityID: string(doc.OpportunityID),
			Message:       string(doc.Message),
			CreatedAt:     created,
			Read:          doc.Read,
		})
	}
	return out, nil
}
