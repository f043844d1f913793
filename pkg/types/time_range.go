package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

const rangeSeparator = "-"

// ErrInvalidTimeRange возвращается при некорректном диапазоне времени
var ErrInvalidTimeRange = errors.New("invalid time range")

// TimeRange интервал времени внутри одних суток, например "17:00-20:00"
type TimeRange struct {
	Start TimeString
	End   TimeString
}

// NewTimeRange создает диапазон и проверяет, что начало строго раньше конца
func NewTimeRange(start, end TimeString) (TimeRange, error) {
	if err := start.Validate(); err != nil {
		return TimeRange{}, fmt.Errorf("%w: start: %v", ErrInvalidTimeRange, err)
	}
	if err := end.Validate(); err != nil {
		return TimeRange{}, fmt.Errorf("%w: end: %v", ErrInvalidTimeRange, err)
	}
	if !start.IsBefore(end) {
		return TimeRange{}, fmt.Errorf("%w: start %s must be before end %s", ErrInvalidTimeRange, start, end)
	}
	return TimeRange{Start: start, End: end}, nil
}

// ParseTimeRange парсит строку вида "HH:MM-HH:MM"
func ParseTimeRange(s string) (TimeRange, error) {
	parts := strings.Split(strings.TrimSpace(s), rangeSeparator)
	if len(parts) != 2 {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrInvalidTimeRange, s)
	}
	return NewTimeRange(TimeString(strings.TrimSpace(parts[0])), TimeString(strings.TrimSpace(parts[1])))
}

// MustParseTimeRange как ParseTimeRange, но паникует при ошибке (для констант и тестов)
func MustParseTimeRange(s string) TimeRange {
	tr, err := ParseTimeRange(s)
	if err != nil {
		panic(err)
	}
	return tr
}

// String возвращает каноничное представление "HH:MM-HH:MM"
func (r TimeRange) String() string {
	if r.IsZero() {
		return ""
	}
	return r.Start.String() + rangeSeparator + r.End.String()
}

// IsZero возвращает true, если диапазон не задан
func (r TimeRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// DurationMinutes длительность диапазона в минутах
func (r TimeRange) DurationMinutes() int {
	start, err := r.Start.Minutes()
	if err != nil {
		return 0
	}
	end, err := r.End.Minutes()
	if err != nil {
		return 0
	}
	return end - start
}

// Scan реализует sql.Scanner (в БД диапазон хранится строкой)
func (r *TimeRange) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		*r = TimeRange{}
		return nil
	default:
		return fmt.Errorf("types.TimeRange: unsupported scan type %T", src)
	}

	parsed, err := ParseTimeRange(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value реализует driver.Valuer
func (r TimeRange) Value() (driver.Value, error) {
	return r.String(), nil
}
