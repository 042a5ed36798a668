package usecase

import (
	"context"
	"sort"
	"time"

	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/notification"
	"skill-match/internal/domain/opportunity"
	"skill-match/internal/domain/user"
	"skill-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationPusher delivers a stored notification to a connected student.
// Delivery is best effort.
type NotificationPusher interface {
	PushToStudent(studentID string, n notification.Notification)
}

type NotificationUsecase interface {
	NotifyMatches(ctx context.Context, o opportunity.Opportunity) (int, error)
	ListForStudent(ctx context.Context, caller user.Actor) ([]notification.Notification, error)
}

type Notifications struct {
	students      repository.StudentRepository
	notifications repository.NotificationRepository
	pusher        NotificationPusher
	logger        *zap.Logger
	now           func() time.Time
	newID         func() string
}

func NewNotificationUsecase(students repository.StudentRepository, notifications repository.NotificationRepository, pusher NotificationPusher, logger *zap.Logger) *Notifications {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifications{
		students:      students,
		notifications: notifications,
		pusher:        pusher,
		logger:        logger,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// NotifyMatches writes one notification for every student holding at least
// one of the required skills, at any level. Writes are not atomic: on error
// the notifications already written stay, and the returned count says how
// many there are.
func (u *Notifications) NotifyMatches(ctx context.Context, o opportunity.Opportunity) (int, error) {
	students, err := u.students.List(ctx)
	if err != nil {
		return 0, retrievalError("list students", err)
	}

	count := 0
	for _, st := range students {
		if !matching.Overlaps(st.ValidatedSkills, o.RequiredSkills) {
			continue
		}

		n := notification.Notification{
			ID:            u.newID(),
			StudentID:     st.ID,
			Type:          notification.TypeOpportunityMatch,
			OpportunityID: o.ID,
			Message:       notification.OpportunityMatchMessage(o.Title),
			CreatedAt:     u.now().UTC(),
			Read:          false,
		}
		if err := u.notifications.Create(ctx, n); err != nil {
			return count, retrievalError("create notification", err)
		}
		count++

		if u.pusher != nil {
			u.pusher.PushToStudent(st.ID, n)
		}
	}

	u.logger.Info("opportunity fan-out done",
		zap.String("opportunity_id", o.ID),
		zap.Int("students_notified", count),
	)
	return count, nil
}

func (u *Notifications) ListForStudent(ctx context.Context, caller user.Actor) ([]notification.Notification, error) {
	if !caller.IsStudent() {
		return nil, ErrForbidden
	}

	items, err := u.notifications.ListByStudentID(ctx, caller.ID)
	if err != nil {
		return nil, retrievalError("list notifications", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}
