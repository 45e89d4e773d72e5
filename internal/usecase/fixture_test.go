package usecase

import (
	"testing"
	"time"

	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	testNow = time.Date(2025, time.June, 9, 12, 0, 0, 0, time.UTC)

	doctorX  = uuid.MustParse("00000000-0000-0000-0000-0000000000d1")
	doctorX2 = uuid.MustParse("00000000-0000-0000-0000-0000000000d2")
	retired  = uuid.MustParse("00000000-0000-0000-0000-0000000000d3")
	spec1    = uuid.MustParse("00000000-0000-0000-0000-000000000051")
	spec2    = uuid.MustParse("00000000-0000-0000-0000-000000000052")
	patientY = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	patientZ = uuid.MustParse("00000000-0000-0000-0000-0000000000a2")
)

type fixture struct {
	appointments *fakeAppointmentRepo
	schedules    *fakeScheduleRepo
	audit        *fakeAudit
	cache        *fakeCache
	publisher    *fakePublisher

	availability AvailabilityUsecase
	booking      BookingUsecase
	cancellation CancellationUsecase
	completion   CompletionUsecase
	schedule     DoctorScheduleUsecase
	query        AppointmentQueryUsecase
}

func doctorProfile(id, specID uuid.UUID, active bool) entity.DoctorProfile {
	return entity.DoctorProfile{
		UserID:           id,
		SpecializationID: specID,
		User: entity.User{
			ID:       id,
			RoleID:   entity.RoleIDDoctor,
			FullName: "Dr " + id.String()[34:],
			IsActive: &active,
		},
		Specialization: entity.Specialization{ID: specID, Name: "General"},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := quietLogger()
	clk := clock.Fixed(testNow)
	tx := fakeTx{}

	f := &fixture{
		appointments: newFakeAppointmentRepo(),
		schedules:    newFakeScheduleRepo(),
		audit:        &fakeAudit{},
		cache:        newFakeCache(),
		publisher:    &fakePublisher{},
	}
	doctors := &fakeDoctorRepo{profiles: map[uuid.UUID]entity.DoctorProfile{
		doctorX:  doctorProfile(doctorX, spec1, true),
		doctorX2: doctorProfile(doctorX2, spec2, true),
		retired:  doctorProfile(retired, spec1, false),
	}}
	for id, p := range doctors.profiles {
		f.appointments.users[id] = p.User
	}

	f.availability = NewAvailabilityUsecase(tx, log, f.schedules, f.appointments, f.cache)
	f.booking = NewBookingUsecase(tx, log, clk, time.UTC, doctors, f.schedules, f.appointments, f.audit, f.cache, f.publisher)
	f.cancellation = NewCancellationUsecase(tx, log, clk, time.UTC, f.appointments, f.audit, f.cache, f.publisher)
	f.completion = NewCompletionUsecase(tx, log, clk, f.appointments, f.audit, f.cache, f.publisher)
	f.schedule = NewDoctorScheduleUsecase(tx, log, clk, time.UTC, f.schedules, f.audit, f.cache, f.publisher)
	f.query = NewAppointmentQueryUsecase(tx, log, f.appointments)
	return f
}

func (f *fixture) publish(t *testing.T, doctorID uuid.UUID, date string, working bool, times ...string) {
	t.Helper()
	_, err := f.schedule.SaveSchedule(t.Context(), doctorID, &dto.SaveScheduleRequest{
		Date:           date,
		IsWorkingDay:   working,
		AvailableTimes: times,
	})
	require.NoError(t, err)
}

func (f *fixture) book(t *testing.T, patientID, doctorID, specID uuid.UUID, date, label string) (*dto.AppointmentResponse, error) {
	t.Helper()
	return f.booking.Book(t.Context(), patientID, &dto.BookAppointmentRequest{
		DoctorID:         doctorID,
		SpecializationID: specID,
		Date:             date,
		Time:             label,
	})
}

func (f *fixture) slots(t *testing.T, doctorID uuid.UUID, date string) []string {
	t.Helper()
	resp, err := f.availability.Resolve(t.Context(), doctorID, date)
	require.NoError(t, err)
	return resp.Slots
}

func fixedClock(t time.Time) clock.Clock {
	return clock.Fixed(t)
}
