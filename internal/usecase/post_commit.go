package usecase

import (
	"context"
	"time"

	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const postCommitTimeout = 5 * time.Second

// postCommit runs the side effects that follow a committed write: dropping the
// cached availability of the affected doctor-day and publishing the event.
// Failures are logged only; the write itself already succeeded.
type postCommit struct {
	log       *logrus.Logger
	cache     service.AvailabilityCache
	publisher service.EventPublisher
}

func (p postCommit) run(doctorID uuid.UUID, date entity.Date, event service.Event) {
	// Detached from the request so a disconnecting client cannot skip the effects.
	ctx, cancel := context.WithTimeout(context.Background(), postCommitTimeout)
	defer cancel()

	if p.cache != nil {
		if err := p.cache.Invalidate(ctx, doctorID, date); err != nil {
			p.log.Warnf("Failed to invalidate availability for doctor %s on %s (non-fatal): %+v", doctorID, date, err)
		}
	}

	if p.publisher != nil {
		if err := p.publisher.Publish(ctx, event); err != nil {
			p.log.Warnf("Failed to publish %s event (non-fatal): %+v", event.Type, err)
		}
	}
}
