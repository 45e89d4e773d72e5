package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DateLayout is the canonical textual form of a calendar date.
const DateLayout = "2006-01-02"

var ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")

// Date is a calendar day without a time component.
//
// The value is kept as midnight UTC of that day. The UTC anchor is only a
// representation: instants are produced with At, which places the day in the
// clinic reference location. Every component that touches a schedule or an
// appointment date goes through this type so that one canonical rule applies.
type Date struct {
	t time.Time
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDateFormat
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// DateOf returns the calendar day on which t falls in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	local := t.In(loc)
	return NewDate(local.Year(), local.Month(), local.Day())
}

// At combines the date with a HH:MM label into an instant in loc.
func (d Date) At(label string, loc *time.Location) (time.Time, error) {
	clock, err := time.Parse(TimeLabelLayout, label)
	if err != nil {
		return time.Time{}, ErrInvalidTimeLabelFormat
	}
	return time.Date(d.t.Year(), d.t.Month(), d.t.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

// EndIn returns the first instant of the following day in loc.
func (d Date) EndIn(loc *time.Location) time.Time {
	return time.Date(d.t.Year(), d.t.Month(), d.t.Day()+1, 0, 0, 0, 0, loc)
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// GormDataType tells gorm to treat the field as a SQL date column.
func (Date) GormDataType() string {
	return "date"
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan implements sql.Scanner. The driver hands back date columns either as a
// time.Time (midnight, usually UTC) or as text; only the day fields are kept.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

func (d *Date) scanText(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
