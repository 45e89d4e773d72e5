package repository

import (
	"errors"
	"fmt"
	"testing"

	domainRepo "clinic-booking-service/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateSlotConflict(t *testing.T) {
	otherUnique := &pgconn.PgError{Code: "23505", ConstraintName: "appointments_pkey"}
	fkViolation := &pgconn.PgError{Code: "23503", ConstraintName: DoctorSlotConstraint}
	plain := errors.New("connection refused")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil stays nil", nil, nil},
		{"doctor index", &pgconn.PgError{Code: "23505", ConstraintName: DoctorSlotConstraint}, domainRepo.ErrDoctorSlotConflict},
		{"patient index", &pgconn.PgError{Code: "23505", ConstraintName: PatientSlotConstraint}, domainRepo.ErrPatientSlotConflict},
		{"wrapped doctor index", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: DoctorSlotConstraint}), domainRepo.ErrDoctorSlotConflict},
		{"other unique index passes through", otherUnique, otherUnique},
		{"other sqlstate passes through", fkViolation, fkViolation},
		{"infrastructure error passes through", plain, plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateSlotConflict(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.True(t, errors.Is(got, tt.want), "got %v, want %v", got, tt.want)
		})
	}
}
