package usecase

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/domain/repository"
	"clinic-booking-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeTx runs units of work directly. Conn only carries the request context so
// fake repositories can observe cancellation the way a driver would.
type fakeTx struct{}

func (fakeTx) Conn(ctx context.Context) *gorm.DB {
	return &gorm.DB{Statement: &gorm.Statement{Context: ctx}}
}

func (fakeTx) WithinTransaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// fakeAppointmentRepo enforces the two scheduled-slot uniqueness rules under a
// mutex, the same guarantee the partial unique indexes give in Postgres.
type fakeAppointmentRepo struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]entity.Appointment
	users map[uuid.UUID]entity.User

	// beforeTransition runs under no lock right before a compare-and-set.
	beforeTransition func(id uuid.UUID)
	// afterScheduledTimes runs under no lock once booked times were collected.
	afterScheduledTimes func(ctx context.Context) error
}

func contextOf(db *gorm.DB) context.Context {
	if db == nil || db.Statement == nil || db.Statement.Context == nil {
		return context.Background()
	}
	return db.Statement.Context
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		rows:  make(map[uuid.UUID]entity.Appointment),
		users: make(map[uuid.UUID]entity.User),
	}
}

var _ repository.AppointmentRepository = (*fakeAppointmentRepo)(nil)

func (r *fakeAppointmentRepo) Create(_ *gorm.DB, a *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.rows {
		if !row.IsScheduled() || !row.AppointmentDate.Equal(a.AppointmentDate) || row.AppointmentTime != a.AppointmentTime {
			continue
		}
		if row.DoctorID == a.DoctorID {
			return repository.ErrDoctorSlotConflict
		}
		if row.PatientID == a.PatientID {
			return repository.ErrPatientSlotConflict
		}
	}

	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now
	r.rows[a.ID] = *a
	return nil
}

// put stores a row as-is, bypassing the uniqueness rules.
func (r *fakeAppointmentRepo) put(a entity.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[a.ID] = a
}

func (r *fakeAppointmentRepo) get(id uuid.UUID) (entity.Appointment, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.rows[id]
	return a, ok
}

func (r *fakeAppointmentRepo) withRefs(a entity.Appointment) *entity.Appointment {
	if u, ok := r.users[a.DoctorID]; ok {
		a.Doctor = &u
	}
	if u, ok := r.users[a.PatientID]; ok {
		a.Patient = &u
	}
	return &a
}

func (r *fakeAppointmentRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return r.withRefs(a), nil
}

func (r *fakeAppointmentRepo) FindScheduledByPatientSlot(_ *gorm.DB, patientID uuid.UUID, date entity.Date, label string) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.rows {
		if a.IsScheduled() && a.PatientID == patientID && a.AppointmentDate.Equal(date) && a.AppointmentTime == label {
			return r.withRefs(a), nil
		}
	}
	return nil, nil
}

func (r *fakeAppointmentRepo) ScheduledTimes(db *gorm.DB, doctorID uuid.UUID, date entity.Date) ([]string, error) {
	r.mu.Lock()
	var times []string
	for _, a := range r.rows {
		if a.IsScheduled() && a.DoctorID == doctorID && a.AppointmentDate.Equal(date) {
			times = append(times, a.AppointmentTime)
		}
	}
	r.mu.Unlock()

	if r.afterScheduledTimes != nil {
		if err := r.afterScheduledTimes(contextOf(db)); err != nil {
			return nil, err
		}
	}
	return times, nil
}

func (r *fakeAppointmentRepo) FindAll(_ *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.Appointment
	for _, a := range r.rows {
		if filter.PatientID != nil && a.PatientID != *filter.PatientID {
			continue
		}
		if filter.DoctorID != nil && a.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Date != nil && !a.AppointmentDate.Equal(*filter.Date) {
			continue
		}
		result = append(result, *r.withRefs(a))
	}
	desc := filter.PatientID != nil
	sort.Slice(result, func(i, j int) bool {
		ki := result[i].AppointmentDate.String() + " " + result[i].AppointmentTime
		kj := result[j].AppointmentDate.String() + " " + result[j].AppointmentTime
		if desc {
			return ki > kj
		}
		return ki < kj
	})
	return result, nil
}

func (r *fakeAppointmentRepo) Transition(_ *gorm.DB, a *entity.Appointment) (int64, error) {
	if r.beforeTransition != nil {
		r.beforeTransition(a.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[a.ID]
	if !ok || !row.IsScheduled() {
		return 0, nil
	}
	row.Status = a.Status
	row.CancelledBy = a.CancelledBy
	row.CancellationReason = a.CancellationReason
	row.CompletedAt = a.CompletedAt
	row.Prescription = a.Prescription
	row.Notes = a.Notes
	row.UpdatedAt = time.Now().UTC()
	r.rows[a.ID] = row
	return 1, nil
}

type fakeScheduleRepo struct {
	mu    sync.Mutex
	rows  map[string]entity.DaySchedule
	reads int
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{rows: make(map[string]entity.DaySchedule)}
}

var _ repository.DayScheduleRepository = (*fakeScheduleRepo)(nil)

func scheduleKey(doctorID uuid.UUID, date entity.Date) string {
	return doctorID.String() + "|" + date.String()
}

func (r *fakeScheduleRepo) Upsert(_ *gorm.DB, s *entity.DaySchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := scheduleKey(s.DoctorID, s.ScheduleDate)
	now := time.Now().UTC()
	if existing, ok := r.rows[key]; ok {
		s.ID, s.CreatedAt = existing.ID, existing.CreatedAt
	} else {
		s.ID, s.CreatedAt = int64(len(r.rows)+1), now
	}
	s.UpdatedAt = now
	r.rows[key] = *s
	return nil
}

func (r *fakeScheduleRepo) FindByDoctorAndDate(_ *gorm.DB, doctorID uuid.UUID, date entity.Date) (*entity.DaySchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	s, ok := r.rows[scheduleKey(doctorID, date)]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeScheduleRepo) FindInRange(_ *gorm.DB, rng entity.ScheduleRange) ([]entity.DaySchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.DaySchedule
	for _, s := range r.rows {
		if s.DoctorID == rng.DoctorID && !s.ScheduleDate.Before(rng.From) && !s.ScheduleDate.After(rng.To) {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ScheduleDate.Before(result[j].ScheduleDate)
	})
	return result, nil
}

func (r *fakeScheduleRepo) readCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads
}

type fakeDoctorRepo struct {
	profiles map[uuid.UUID]entity.DoctorProfile
}

var _ repository.DoctorProfileRepository = (*fakeDoctorRepo)(nil)

func (r *fakeDoctorRepo) FindByUserID(_ *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

type fakeAudit struct {
	mu      sync.Mutex
	actions []string
}

var _ service.AuditService = (*fakeAudit)(nil)

func (a *fakeAudit) LogCreate(_ context.Context, _ *gorm.DB, _ *uuid.UUID, action string, _ string, _ string, _ interface{}) error {
	a.record(action)
	return nil
}

func (a *fakeAudit) LogUpdate(_ context.Context, _ *gorm.DB, _ *uuid.UUID, action string, _ string, _ string, _, _ interface{}) error {
	a.record(action)
	return nil
}

func (a *fakeAudit) record(action string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
}

type fakeCache struct {
	mu          sync.Mutex
	entries     map[string][]string
	generations map[string]int64
	invalidated []string
}

var _ service.AvailabilityCache = (*fakeCache)(nil)

func newFakeCache() *fakeCache {
	return &fakeCache{
		entries:     make(map[string][]string),
		generations: make(map[string]int64),
	}
}

func (c *fakeCache) Get(_ context.Context, doctorID uuid.UUID, date entity.Date) ([]string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	slots, ok := c.entries[service.AvailabilityKey(doctorID, date)]
	return slots, ok, nil
}

func (c *fakeCache) Generation(_ context.Context, doctorID uuid.UUID, date entity.Date) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[service.AvailabilityKey(doctorID, date)], nil
}

func (c *fakeCache) Set(_ context.Context, doctorID uuid.UUID, date entity.Date, generation int64, slots []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := service.AvailabilityKey(doctorID, date)
	if c.generations[key] != generation {
		return nil
	}
	c.entries[key] = append([]string(nil), slots...)
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, doctorID uuid.UUID, date entity.Date) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := service.AvailabilityKey(doctorID, date)
	delete(c.entries, key)
	c.generations[key]++
	c.invalidated = append(c.invalidated, key)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []service.Event
}

var _ service.EventPublisher = (*fakePublisher)(nil)

func (p *fakePublisher) Publish(_ context.Context, event service.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}
