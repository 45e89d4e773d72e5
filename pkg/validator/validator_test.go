package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotInput struct {
	Date  string   `validate:"required,calendar_date"`
	Time  string   `validate:"required,time_label"`
	Times []string `validate:"dive,time_label"`
}

func TestCustomValidator(t *testing.T) {
	v := NewValidator()

	t.Run("valid input", func(t *testing.T) {
		err := v.Validate(&slotInput{Date: "2025-06-10", Time: "9:30", Times: []string{"09:00", "17:45"}})
		assert.NoError(t, err)
	})

	t.Run("bad date and time", func(t *testing.T) {
		err := v.Validate(&slotInput{Date: "10/06/2025", Time: "25:00"})
		require.Error(t, err)

		messages := v.FormatValidationErrors(err)
		assert.Equal(t, "Date must be a date in YYYY-MM-DD format", messages["Date"])
		assert.Equal(t, "Time must be a time in HH:MM format", messages["Time"])
	})

	t.Run("bad element in list", func(t *testing.T) {
		err := v.Validate(&slotInput{Date: "2025-06-10", Time: "09:00", Times: []string{"09:00", "noon"}})
		assert.Error(t, err)
	})
}
