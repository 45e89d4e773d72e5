package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTimeLabel(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"09:00", "09:00", false},
		{"9:00", "09:00", false},
		{" 14:30 ", "14:30", false},
		{"23:59", "23:59", false},
		{"24:00", "", true},
		{"09:60", "", true},
		{"9am", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeTimeLabel(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeLabelFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeTimeLabels(t *testing.T) {
	got, err := NormalizeTimeLabels([]string{"14:00", "9:00", "09:00", "", "10:30"})
	require.NoError(t, err)
	assert.Equal(t, TimeLabels{"09:00", "10:30", "14:00"}, got)

	again, err := NormalizeTimeLabels(got)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	empty, err := NormalizeTimeLabels(nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = NormalizeTimeLabels([]string{"09:00", "nine"})
	assert.ErrorIs(t, err, ErrInvalidTimeLabelFormat)
}

func TestTimeLabels_ValueScan(t *testing.T) {
	v, err := TimeLabels{"09:00", "09:30"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["09:00","09:30"]`, v)

	nilValue, err := TimeLabels(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", nilValue)

	var l TimeLabels
	require.NoError(t, l.Scan([]byte(`["09:00","09:30"]`)))
	assert.Equal(t, TimeLabels{"09:00", "09:30"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Empty(t, l)

	assert.Error(t, l.Scan(3))
}

func TestDaySchedule_Offers(t *testing.T) {
	working := &DaySchedule{IsWorkingDay: true, AvailableTimes: TimeLabels{"09:00"}}
	off := &DaySchedule{IsWorkingDay: false, AvailableTimes: TimeLabels{"09:00"}}

	assert.True(t, working.Offers("09:00"))
	assert.False(t, working.Offers("10:00"))
	assert.False(t, off.Offers("09:00"))
}
