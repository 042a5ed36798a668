package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"skill-match/internal/config"
	"skill-match/internal/domain/opportunity"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const opportunityCreatedSubject = "opportunity.created"

type OpportunityCreatedEvent struct {
	ID             string                `json:"id"`
	CompanyID      string                `json:"company_id"`
	Title          string                `json:"title"`
	Type           string                `json:"type"`
	RequiredSkills []string              `json:"required_skills"`
	CreatedAt      opportunity.Timestamp `json:"created_at"`
	PublishedAt    time.Time             `json:"published_at"`
}

type publishConn interface {
	Publish(subject string, data []byte) error
}

type Publisher struct {
	conn    publishConn
	close   func()
	subject string
	logger  *zap.Logger
	now     func() time.Time
}

// NewPublisher connects to NATS. The connection keeps retrying in the
// background, so a broker that is down at startup is not fatal.
func NewPublisher(cfg config.NATSConfig, logger *zap.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Name("skill-match"),
		nats.Timeout(cfg.ConnTimeout),
		nats.RetryOnFailedConnect(true),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	p := newPublisher(nc, cfg.SubjectPrefix, logger)
	p.close = nc.Close
	return p, nil
}

func newPublisher(conn publishConn, prefix string, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		conn:    conn,
		subject: Subject(prefix, opportunityCreatedSubject),
		logger:  logger,
		now:     time.Now,
	}
}

// Subject joins prefix and name with a dot, skipping an empty prefix.
func Subject(prefix, name string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), ".")
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func (p *Publisher) PublishOpportunityCreated(_ context.Context, o opportunity.Opportunity) error {
	event := OpportunityCreatedEvent{
		ID:             o.ID,
		CompanyID:      o.CompanyID,
		Title:          o.Title,
		Type:           o.Type,
		RequiredSkills: o.RequiredSkills,
		CreatedAt:      o.CreatedAt,
		PublishedAt:    p.now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling opportunity event: %w", err)
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		p.logger.Error("failed to publish opportunity created",
			zap.String("opportunity_id", o.ID),
			zap.Error(err))
		return fmt.Errorf("publishing to NATS: %w", err)
	}

	p.logger.Debug("published opportunity created",
		zap.String("opportunity_id", o.ID),
		zap.String("subject", p.subject))
	return nil
}

func (p *Publisher) Close() {
	if p != nil && p.close != nil {
		p.close()
	}
}

// Nop is used when no broker is configured.
type Nop struct{}

func (Nop) PublishOpportunityCreated(context.Context, opportunity.Opportunity) error { return nil }
