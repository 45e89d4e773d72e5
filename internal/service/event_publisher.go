package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/infrastructure/messaging"

	"github.com/google/uuid"
)

const (
	EventAppointmentBooked    = "appointment.booked"
	EventAppointmentCancelled = "appointment.cancelled"
	EventAppointmentCompleted = "appointment.completed"
	EventScheduleSaved        = "schedule.saved"
)

// Event is published after a booking-related change has committed.
type Event struct {
	ID            uuid.UUID   `json:"event_id"`
	Type          string      `json:"event_type"`
	OccurredAt    time.Time   `json:"occurred_at"`
	ActorID       uuid.UUID   `json:"actor_id"`
	DoctorID      uuid.UUID   `json:"doctor_id"`
	Date          entity.Date `json:"date"`
	AppointmentID *uuid.UUID  `json:"appointment_id,omitempty"`
	PatientID     *uuid.UUID  `json:"patient_id,omitempty"`
	Time          string      `json:"time,omitempty"`
	Status        string      `json:"status,omitempty"`
}

// AppointmentEvent builds an event describing the current state of a.
func AppointmentEvent(eventType string, actorID uuid.UUID, a *entity.Appointment, at time.Time) Event {
	appointmentID := a.ID
	patientID := a.PatientID
	return Event{
		ID:            uuid.New(),
		Type:          eventType,
		OccurredAt:    at.UTC(),
		ActorID:       actorID,
		DoctorID:      a.DoctorID,
		Date:          a.AppointmentDate,
		AppointmentID: &appointmentID,
		PatientID:     &patientID,
		Time:          a.AppointmentTime,
		Status:        string(a.Status),
	}
}

// ScheduleEvent builds the event for a saved day schedule.
func ScheduleEvent(actorID uuid.UUID, s *entity.DaySchedule, at time.Time) Event {
	status := "off"
	if s.IsWorkingDay {
		status = "working"
	}
	return Event{
		ID:         uuid.New(),
		Type:       EventScheduleSaved,
		OccurredAt: at.UTC(),
		ActorID:    actorID,
		DoctorID:   s.DoctorID,
		Date:       s.ScheduleDate,
		Status:     status,
	}
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

type kafkaEventPublisher struct {
	producer *messaging.KafkaProducer
}

// NewEventPublisher publishes through producer, or discards events when it is nil.
func NewEventPublisher(producer *messaging.KafkaProducer) EventPublisher {
	if producer == nil {
		return noopEventPublisher{}
	}
	return &kafkaEventPublisher{producer: producer}
}

func (p *kafkaEventPublisher) Publish(ctx context.Context, event Event) error {
	msg, err := EventMessage(event)
	if err != nil {
		return err
	}
	if err := p.producer.Write(ctx, msg); err != nil {
		return fmt.Errorf("publish %s %s: %w", event.Type, event.ID, err)
	}
	return nil
}

// EventMessage encodes an event. Messages are keyed by doctor and date so all
// changes to one doctor-day land on one partition in order.
func EventMessage(event Event) (messaging.Message, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return messaging.Message{}, err
	}
	return messaging.Message{
		Key:   fmt.Sprintf("%s:%s", event.DoctorID, event.Date),
		Value: body,
		Headers: map[string]string{
			"event_id":   event.ID.String(),
			"event_type": event.Type,
		},
	}, nil
}

type noopEventPublisher struct{}

func (noopEventPublisher) Publish(context.Context, Event) error {
	return nil
}
