package services

import (
	"context"
	"time"

	"github.com/Abhi1565/JobHunt-backend/internal/domain/events"
	"github.com/Abhi1565/JobHunt-backend/internal/logger"
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

// Notifier delivers the four applicant notifications. Implementations must not format on behalf of the core.
type Notifier interface {
	InterviewScheduled(ctx context.Context, notice events.InterviewScheduled) error
	InterviewRescheduled(ctx context.Context, notice events.InterviewRescheduled) error
	Rejected(ctx context.Context, notice events.ApplicationRejected) error
	Hired(ctx context.Context, notice events.CandidateHired) error
}

// BusNotifier publishes notifications on the event bus and returns immediately.
type BusNotifier struct {
	bus EventBus.BusPublisher
}

func NewBusNotifier(bus EventBus.BusPublisher) *BusNotifier {
	return &BusNotifier{bus: bus}
}

func (n *BusNotifier) InterviewScheduled(_ context.Context, notice events.InterviewScheduled) error {
	n.bus.Publish(events.InterviewScheduledTopic, notice)
	return nil
}

func (n *BusNotifier) InterviewRescheduled(_ context.Context, notice events.InterviewRescheduled) error {
	n.bus.Publish(events.InterviewRescheduledTopic, notice)
	return nil
}

func (n *BusNotifier) Rejected(_ context.Context, notice events.ApplicationRejected) error {
	n.bus.Publish(events.ApplicationRejectedTopic, notice)
	return nil
}

func (n *BusNotifier) Hired(_ context.Context, notice events.CandidateHired) error {
	n.bus.Publish(events.CandidateHiredTopic, notice)
	return nil
}

// NotificationRelay drains bus notifications into a delivering Notifier on the bus's async workers.
type NotificationRelay struct {
	bus     EventBus.Bus
	target  Notifier
	timeout time.Duration
}

func NewNotificationRelay(bus EventBus.Bus, target Notifier, timeout time.Duration) *NotificationRelay {
	return &NotificationRelay{bus: bus, target: target, timeout: timeout}
}

func (r *NotificationRelay) Start() error {
	subscriptions := map[string]any{
		events.InterviewScheduledTopic:   r.onInterviewScheduled,
		events.InterviewRescheduledTopic: r.onInterviewRescheduled,
		events.ApplicationRejectedTopic:  r.onRejected,
		events.CandidateHiredTopic:       r.onHired,
	}
	for topic, handler := range subscriptions {
		if err := r.bus.SubscribeAsync(topic, handler, false); err != nil {
			return err
		}
	}
	return nil
}

// Stop waits for in-flight deliveries.
func (r *NotificationRelay) Stop() {
	_ = r.bus.Unsubscribe(events.InterviewScheduledTopic, r.onInterviewScheduled)
	_ = r.bus.Unsubscribe(events.InterviewRescheduledTopic, r.onInterviewRescheduled)
	_ = r.bus.Unsubscribe(events.ApplicationRejectedTopic, r.onRejected)
	_ = r.bus.Unsubscribe(events.CandidateHiredTopic, r.onHired)
	r.bus.WaitAsync()
}

func (r *NotificationRelay) deliver(kind string, to string, send func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := send(ctx); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeSmtp).
			Errorf("failed to deliver %s notification to %s: %v", kind, to, err)
	}
}

func (r *NotificationRelay) onInterviewScheduled(notice events.InterviewScheduled) {
	r.deliver("interview_scheduled", notice.To, func(ctx context.Context) error {
		return r.target.InterviewScheduled(ctx, notice)
	})
}

func (r *NotificationRelay) onInterviewRescheduled(notice events.InterviewRescheduled) {
	r.deliver("interview_rescheduled", notice.To, func(ctx context.Context) error {
		return r.target.InterviewRescheduled(ctx, notice)
	})
}

func (r *NotificationRelay) onRejected(notice events.ApplicationRejected) {
	r.deliver("rejected", notice.To, func(ctx context.Context) error {
		return r.target.Rejected(ctx, notice)
	})
}

func (r *NotificationRelay) onHired(notice events.CandidateHired) {
	r.deliver("hired", notice.To, func(ctx context.Context) error {
		return r.target.Hired(ctx, notice)
	})
}

type NopNotifier struct{}

func (NopNotifier) InterviewScheduled(context.Context, events.InterviewScheduled) error {
	return nil
}

func (NopNotifier) InterviewRescheduled(context.Context, events.InterviewRescheduled) error {
	return nil
}

func (NopNotifier) Rejected(context.Context, events.ApplicationRejected) error {
	return nil
}

func (NopNotifier) Hired(context.Context, events.CandidateHired) error {
	return nil
}
