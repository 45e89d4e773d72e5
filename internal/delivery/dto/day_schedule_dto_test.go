package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    TimeList
	}{
		{"array", `{"available_times":["09:00","09:30"]}`, TimeList{"09:00", "09:30"}},
		{"json array in a string", `{"available_times":"[\"09:00\",\"09:30\"]"}`, TimeList{"09:00", "09:30"}},
		{"comma separated", `{"available_times":"09:00, 09:30,,10:00"}`, TimeList{"09:00", "09:30", "10:00"}},
		{"single value", `{"available_times":"09:00"}`, TimeList{"09:00"}},
		{"null", `{"available_times":null}`, TimeList{}},
		{"empty string", `{"available_times":""}`, TimeList{}},
		{"missing", `{}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req SaveScheduleRequest
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &req))
			assert.Equal(t, tt.want, req.AvailableTimes)
		})
	}
}

func TestTimeList_RejectsOtherShapes(t *testing.T) {
	var req SaveScheduleRequest
	assert.Error(t, json.Unmarshal([]byte(`{"available_times":42}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"available_times":{"a":1}}`), &req))
}

func TestSaveScheduleRequest_MissingWorkingDayIsFalse(t *testing.T) {
	var req SaveScheduleRequest
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-06-10","available_times":[]}`), &req))
	assert.False(t, req.IsWorkingDay)
}
