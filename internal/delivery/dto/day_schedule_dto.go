package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type SaveScheduleRequest struct {
	Date           string   `json:"date" validate:"required,calendar_date"` // Format: YYYY-MM-DD
	IsWorkingDay   bool     `json:"is_working_day"`
	AvailableTimes TimeList `json:"available_times" validate:"dive,time_label"`
}

// TimeList accepts available times as a JSON array, as a string holding a
// JSON array, or as a comma-separated string. Clients have sent all three.
type TimeList []string

func (l *TimeList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = TimeList{}
		return nil
	}

	switch data[0] {
	case '[':
		var items []interface{}
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = stringify(items)
		return nil
	case '"':
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*l = parseTimeListString(raw)
		return nil
	default:
		return fmt.Errorf("available_times must be an array or a string")
	}
}

func parseTimeListString(raw string) TimeList {
	var items []interface{}
	if err := json.Unmarshal([]byte(raw), &items); err == nil {
		return stringify(items)
	}
	// A JSON scalar or plain text: treat as a comma-separated list.
	var scalar string
	if err := json.Unmarshal([]byte(raw), &scalar); err == nil {
		raw = scalar
	}
	result := TimeList{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

func stringify(items []interface{}) TimeList {
	result := make(TimeList, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		s := strings.TrimSpace(fmt.Sprint(item))
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

// Response DTOs

type ScheduleResponse struct {
	ID             int64      `json:"id,omitempty"`
	DoctorID       uuid.UUID  `json:"doctor_id"`
	Date           string     `json:"date"`
	IsWorkingDay   bool       `json:"is_working_day"`
	AvailableTimes []string   `json:"available_times"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	Total     int                `json:"total"`
}
