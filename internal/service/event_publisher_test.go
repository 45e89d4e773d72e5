package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"clinic-booking-service/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventMessage(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()
	appointment := &entity.Appointment{
		ID:              uuid.New(),
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: entity.NewDate(2025, time.June, 10),
		AppointmentTime: "09:00",
		Status:          entity.AppointmentStatusScheduled,
	}
	event := AppointmentEvent(EventAppointmentBooked, patientID, appointment, time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC))

	msg, err := EventMessage(event)
	require.NoError(t, err)

	assert.Equal(t, doctorID.String()+":2025-06-10", msg.Key)
	assert.Equal(t, EventAppointmentBooked, msg.Headers["event_type"])
	assert.Equal(t, event.ID.String(), msg.Headers["event_id"])

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "2025-06-10", body["date"])
	assert.Equal(t, "09:00", body["time"])
	assert.Equal(t, "scheduled", body["status"])
	assert.Equal(t, appointment.ID.String(), body["appointment_id"])
}

func TestNewEventPublisherWithoutProducerDiscards(t *testing.T) {
	publisher := NewEventPublisher(nil)
	assert.NoError(t, publisher.Publish(context.Background(), Event{ID: uuid.New(), Type: EventScheduleSaved}))
}
