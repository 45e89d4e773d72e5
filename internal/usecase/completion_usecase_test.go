package usecase

import (
	"testing"

	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete_ByAssignedDoctor(t *testing.T) {
	f := newFixture(t)
	a := storedAppointment(t, f, "2025-06-09", "10:00", entity.AppointmentStatusScheduled)

	resp, err := f.completion.Complete(t.Context(), a.ID, doctorX, &dto.CompleteAppointmentRequest{
		Prescription: "rest and fluids",
		Notes:        "mild fever",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCompleted), resp.Status)
	assert.Equal(t, "rest and fluids", resp.Prescription)
	assert.Equal(t, "mild fever", resp.Notes)
	require.NotNil(t, resp.CompletedAt)
	assert.True(t, resp.CompletedAt.Equal(testNow))

	assert.Contains(t, f.audit.actions, entity.AuditActionAppointmentComplete)
	assert.Contains(t, f.publisher.types(), service.EventAppointmentCompleted)
}

func TestComplete_KeepsBookingNotesWhenNoneGiven(t *testing.T) {
	f := newFixture(t)
	a := storedAppointment(t, f, "2025-06-09", "10:00", entity.AppointmentStatusScheduled)
	a.Notes = "first visit"
	f.appointments.put(a)

	resp, err := f.completion.Complete(t.Context(), a.ID, doctorX, &dto.CompleteAppointmentRequest{})
	require.NoError(t, err)
	assert.Equal(t, "first visit", resp.Notes)
}

func TestComplete_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		status   entity.AppointmentStatus
		doctorID uuid.UUID
		want     error
	}{
		{"other doctor", entity.AppointmentStatusScheduled, doctorX2, ErrAppointmentNotFound},
		{"patient id", entity.AppointmentStatusScheduled, patientY, ErrAppointmentNotFound},
		{"already completed", entity.AppointmentStatusCompleted, doctorX, ErrAlreadyCompleted},
		{"already cancelled", entity.AppointmentStatusCancelled, doctorX, ErrAlreadyCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			a := storedAppointment(t, f, "2025-06-10", "09:00", tt.status)

			_, err := f.completion.Complete(t.Context(), a.ID, tt.doctorID, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestComplete_LosesRaceToCancellation(t *testing.T) {
	f := newFixture(t)
	a := storedAppointment(t, f, "2025-06-10", "09:00", entity.AppointmentStatusScheduled)

	f.appointments.beforeTransition = func(id uuid.UUID) {
		row, _ := f.appointments.get(id)
		row.Cancel(patientY, "")
		f.appointments.put(row)
	}

	_, err := f.completion.Complete(t.Context(), a.ID, doctorX, nil)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}
