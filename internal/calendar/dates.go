package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

var weekdayOffsets = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

// ParseError возвращается при некорректной строке даты
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("calendar: cannot parse date %q, expected YYYY-MM-DD: %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is позволяет проверять ParseError как ошибку валидации
func (e *ParseError) Is(target error) bool {
	return target == domain.ErrValidation
}

// ParseDate парсит каноничную дату YYYY-MM-DD в полночь UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &ParseError{Value: s, Err: err}
	}
	return t, nil
}

// DateOnly отбрасывает время и часовой пояс, оставляя календарную дату в полночь UTC
// Дата берётся в часовом поясе самого значения t
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekAnchor возвращает понедельник недели, в которую попадает d
func WeekAnchor(d time.Time) time.Time {
	day := DateOnly(d)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekdayOffset возвращает смещение дня недели от понедельника (0-6)
func WeekdayOffset(name string) (int, bool) {
	offset, ok := weekdayOffsets[strings.ToLower(strings.TrimSpace(name))]
	return offset, ok
}

// IsWeekdayName возвращает true для одного из семи английских названий дней недели
func IsWeekdayName(name string) bool {
	_, ok := WeekdayOffset(name)
	return ok
}

// WeekdayName возвращает название дня недели в нижнем регистре
func WeekdayName(d time.Time) string {
	return strings.ToLower(d.Weekday().String())
}

// ResolveSlotDate возвращает дату дня недели weekday в неделе anchor
// Неизвестное название дня - ошибка программиста, поэтому паника
func ResolveSlotDate(anchor time.Time, weekday string) time.Time {
	offset, ok := WeekdayOffset(weekday)
	if !ok {
		panic(fmt.Sprintf("calendar: unknown weekday name %q", weekday))
	}
	return WeekAnchor(anchor).AddDate(0, 0, offset)
}

// FormatDisplay форматирует дату для отображения (DD.MM.YYYY)
func FormatDisplay(d time.Time) string {
	return d.Format(domain.DisplayDateFormat)
}

// FormatDisplayString форматирует каноничную строку даты для отображения
// Если строку не удаётся разобрать, возвращается она же без изменений
func FormatDisplayString(s string) string {
	d, err := ParseDate(s)
	if err != nil {
		return s
	}
	return FormatDisplay(d)
}
