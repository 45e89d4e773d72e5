package usecase

import (
	"testing"

	"clinic-booking-service/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListForPatient_NewestFirst(t *testing.T) {
	f := newFixture(t)
	storedAppointment(t, f, "2025-06-10", "09:00", entity.AppointmentStatusScheduled)
	storedAppointment(t, f, "2025-06-12", "08:00", entity.AppointmentStatusCancelled)
	storedAppointment(t, f, "2025-06-10", "11:00", entity.AppointmentStatusScheduled)

	resp, err := f.query.ListForPatient(t.Context(), patientY, "")
	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)
	assert.Equal(t, "2025-06-12", resp.Appointments[0].Date)
	assert.Equal(t, "11:00", resp.Appointments[1].Time)
	assert.Equal(t, "09:00", resp.Appointments[2].Time)

	resp, err = f.query.ListForPatient(t.Context(), patientY, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	resp, err = f.query.ListForPatient(t.Context(), patientZ, "")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Total)
	assert.NotNil(t, resp.Appointments)
}

func TestListForDoctor_CalendarOrder(t *testing.T) {
	f := newFixture(t)
	storedAppointment(t, f, "2025-06-11", "09:00", entity.AppointmentStatusScheduled)
	storedAppointment(t, f, "2025-06-10", "11:00", entity.AppointmentStatusScheduled)
	storedAppointment(t, f, "2025-06-10", "09:00", entity.AppointmentStatusCompleted)

	resp, err := f.query.ListForDoctor(t.Context(), doctorX, "", "")
	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)
	assert.Equal(t, "09:00", resp.Appointments[0].Time)
	assert.Equal(t, "11:00", resp.Appointments[1].Time)
	assert.Equal(t, "2025-06-11", resp.Appointments[2].Date)

	resp, err = f.query.ListForDoctor(t.Context(), doctorX, "scheduled", "2025-06-10")
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "11:00", resp.Appointments[0].Time)
}

func TestList_InvalidFilters(t *testing.T) {
	f := newFixture(t)

	_, err := f.query.ListForPatient(t.Context(), patientY, "pending")
	assert.ErrorIs(t, err, ErrInvalidStatusFilter)

	_, err = f.query.ListForDoctor(t.Context(), doctorX, "", "tomorrow")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestGetForActor(t *testing.T) {
	f := newFixture(t)
	a := storedAppointment(t, f, "2025-06-10", "09:00", entity.AppointmentStatusScheduled)

	resp, err := f.query.GetForActor(t.Context(), a.ID, patientActor(patientY))
	require.NoError(t, err)
	assert.Equal(t, a.ID, resp.ID)
	require.NotNil(t, resp.Doctor)

	_, err = f.query.GetForActor(t.Context(), a.ID, doctorActor(doctorX))
	assert.NoError(t, err)

	_, err = f.query.GetForActor(t.Context(), a.ID, patientActor(patientZ))
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = f.query.GetForActor(t.Context(), uuid.New(), patientActor(patientY))
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
