package usecase

import (
	"context"
	"fmt"
	"time"

	"clinic-booking-service/internal/delivery/dto"
	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/internal/domain/repository"
	"clinic-booking-service/internal/infrastructure/database"
	"clinic-booking-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const availabilityReadTimeout = 5 * time.Second

type AvailabilityUsecase interface {
	// Resolve returns the free slots of a doctor on a date, in the order the
	// doctor published them. Fails with ErrScheduleNotFound when nothing was
	// published for the date. The result is advisory, not a reservation.
	Resolve(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailabilityResponse, error)
}

type availabilityUsecase struct {
	tx              database.TxManager
	log             *logrus.Logger
	scheduleRepo    repository.DayScheduleRepository
	appointmentRepo repository.AppointmentRepository
	cache           service.AvailabilityCache

	group singleflight.Group
}

// NewAvailabilityUsecase builds the resolver. cache may be nil.
func NewAvailabilityUsecase(
	tx database.TxManager,
	log *logrus.Logger,
	scheduleRepo repository.DayScheduleRepository,
	appointmentRepo repository.AppointmentRepository,
	cache service.AvailabilityCache,
) AvailabilityUsecase {
	return &availabilityUsecase{
		tx:              tx,
		log:             log,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		cache:           cache,
	}
}

func (u *availabilityUsecase) Resolve(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailabilityResponse, error) {
	day, err := entity.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	slots, err := u.resolve(ctx, doctorID, day)
	if err != nil {
		return nil, err
	}

	return &dto.AvailabilityResponse{
		DoctorID: doctorID,
		Date:     day.String(),
		Slots:    slots,
	}, nil
}

func (u *availabilityUsecase) resolve(ctx context.Context, doctorID uuid.UUID, date entity.Date) ([]string, error) {
	if u.cache != nil {
		slots, ok, err := u.cache.Get(ctx, doctorID, date)
		if err != nil {
			u.log.Warnf("Availability cache read failed, falling back to database: %+v", err)
		} else if ok {
			return slots, nil
		}
	}

	// Concurrent misses for the same doctor-day share one database read. The
	// read runs detached from the caller that started it; each caller still
	// stops waiting when its own context ends.
	key := fmt.Sprintf("%s:%s", doctorID, date)
	ch := u.group.DoChan(key, func() (interface{}, error) {
		readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), availabilityReadTimeout)
		defer cancel()
		return u.load(readCtx, doctorID, date)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		shared := res.Val.([]string)
		slots := make([]string, len(shared))
		copy(slots, shared)
		return slots, nil
	}
}

// load computes the slots and caches them unless a write invalidated the
// doctor-day while the database was being read.
func (u *availabilityUsecase) load(ctx context.Context, doctorID uuid.UUID, date entity.Date) ([]string, error) {
	var generation int64
	cacheable := u.cache != nil
	if cacheable {
		g, err := u.cache.Generation(ctx, doctorID, date)
		if err != nil {
			u.log.Warnf("Failed to read availability generation, skipping cache write: %+v", err)
			cacheable = false
		}
		generation = g
	}

	slots, err := u.compute(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := u.cache.Set(ctx, doctorID, date, generation, slots); err != nil {
			u.log.Warnf("Failed to cache availability: %+v", err)
		}
	}
	return slots, nil
}

func (u *availabilityUsecase) compute(ctx context.Context, doctorID uuid.UUID, date entity.Date) ([]string, error) {
	db := u.tx.Conn(ctx)

	schedule, err := u.scheduleRepo.FindByDoctorAndDate(db, doctorID, date)
	if err != nil {
		u.log.Warnf("Failed to find schedule for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}
	if !schedule.IsWorkingDay {
		return []string{}, nil
	}

	booked, err := u.appointmentRepo.ScheduledTimes(db, doctorID, date)
	if err != nil {
		u.log.Warnf("Failed to load booked times for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}

	return FreeSlots(schedule.AvailableTimes, booked), nil
}

// FreeSlots returns offered minus booked, keeping the order of offered.
func FreeSlots(offered []string, booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	free := make([]string, 0, len(offered))
	for _, t := range offered {
		if _, ok := taken[t]; !ok {
			free = append(free, t)
		}
	}
	return free
}
