package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// TimeLabelLayout is the canonical HH:MM form of a slot label.
const TimeLabelLayout = "15:04"

var ErrInvalidTimeLabelFormat = errors.New("invalid time format, use HH:MM")

// NormalizeTimeLabel validates a slot label and returns it in HH:MM form,
// so "9:00" and "09:00" name the same slot.
func NormalizeTimeLabel(label string) (string, error) {
	t, err := time.Parse(TimeLabelLayout, strings.TrimSpace(label))
	if err != nil {
		return "", ErrInvalidTimeLabelFormat
	}
	return t.Format(TimeLabelLayout), nil
}

// TimeLabels is the ordered set of slot labels a doctor offers on a day.
// Stored as a JSONB array.
type TimeLabels []string

// NormalizeTimeLabels normalizes, de-duplicates and sorts labels chronologically.
func NormalizeTimeLabels(labels []string) (TimeLabels, error) {
	seen := make(map[string]struct{}, len(labels))
	result := make(TimeLabels, 0, len(labels))
	for _, raw := range labels {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		label, err := NormalizeTimeLabel(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, raw)
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		result = append(result, label)
	}
	// HH:MM sorts lexically in chronological order.
	sort.Strings(result)
	return result, nil
}

// Contains reports whether label is offered.
func (l TimeLabels) Contains(label string) bool {
	for _, offered := range l {
		if offered == label {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer
func (l TimeLabels) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *TimeLabels) Scan(value interface{}) error {
	if value == nil {
		*l = TimeLabels{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	var result []string
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*l = TimeLabels(result)
	return nil
}

func (TimeLabels) GormDataType() string {
	return "jsonb"
}
