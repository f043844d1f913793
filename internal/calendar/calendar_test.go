package calendar

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func newBavarianRules(t *testing.T) *Rules {
	t.Helper()
	r, err := NewRules(Config{
		Holidays: map[string][]string{
			"2025": {"2025-01-01", "2025-01-06", "2025-04-18", "2025-12-25", "2025-12-26"},
			"2026": {"2026-01-01", "2026-01-06", "2026-04-03"},
		},
		BlackoutFromMonth: time.June,
		BlackoutToMonth:   time.September,
	})
	require.NoError(t, err)
	return r
}

func TestWeekAnchor(t *testing.T) {
	tests := []struct {
		date   string
		anchor string
	}{
		{"2025-11-03", "2025-11-03"}, // понедельник
		{"2025-11-04", "2025-11-03"},
		{"2025-11-09", "2025-11-03"}, // воскресенье
		{"2026-01-01", "2025-12-29"}, // переход через год
		{"2024-03-01", "2024-02-26"}, // високосный год
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d := mustDate(t, tt.date)
			anchor := WeekAnchor(d)

			assert.Equal(t, tt.anchor, anchor.Format(domain.DateFormat))
			assert.Equal(t, time.Monday, anchor.Weekday())
			assert.False(t, d.Before(anchor))
			assert.True(t, d.Before(anchor.AddDate(0, 0, 7)))
			assert.Equal(t, anchor, WeekAnchor(anchor))
		})
	}
}

func TestWeekAnchor_IgnoresTimeOfDay(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	late := time.Date(2025, 11, 9, 23, 30, 0, 0, berlin)
	assert.Equal(t, "2025-11-03", WeekAnchor(late).Format(domain.DateFormat))
}

func TestResolveSlotDate(t *testing.T) {
	anchor := mustDate(t, "2025-11-03")

	assert.Equal(t, "2025-11-04", ResolveSlotDate(anchor, "tuesday").Format(domain.DateFormat))
	assert.Equal(t, "2025-11-07", ResolveSlotDate(anchor, "Friday").Format(domain.DateFormat))
	assert.Equal(t, "2025-11-08", ResolveSlotDate(anchor, "saturday").Format(domain.DateFormat))

	// Якорь не в понедельник приводится к понедельнику своей недели
	assert.Equal(t, "2025-06-03", ResolveSlotDate(mustDate(t, "2025-06-03"), "tuesday").Format(domain.DateFormat))

	assert.Panics(t, func() { ResolveSlotDate(anchor, "caturday") })
}

func TestRules_BlockReason(t *testing.T) {
	r := newBavarianRules(t)

	tests := []struct {
		name   string
		date   string
		reason domain.BlockReason
	}{
		{"ordinary tuesday", "2025-11-04", domain.BlockReasonNone},
		{"christmas", "2025-12-25", domain.BlockReasonHoliday},
		{"blackout start", "2025-06-01", domain.BlockReasonSeasonalBlackout},
		{"blackout end", "2025-09-30", domain.BlockReasonSeasonalBlackout},
		{"after blackout", "2025-10-01", domain.BlockReasonNone},
		{"before blackout", "2025-05-31", domain.BlockReasonNone},
		{"year without data", "2027-12-25", domain.BlockReasonNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustDate(t, tt.date)
			assert.Equal(t, tt.reason, r.BlockReason(d))
			assert.Equal(t, tt.reason != domain.BlockReasonNone, r.IsBlocked(d))
		})
	}
}

func TestRules_HolidayWinsOverBlackout(t *testing.T) {
	r, err := NewRules(Config{
		Holidays:          map[string][]string{"2025": {"2025-08-15"}},
		BlackoutFromMonth: time.June,
		BlackoutToMonth:   time.September,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.BlockReasonHoliday, r.BlockReason(mustDate(t, "2025-08-15")))
}

func TestRules_BlackoutAcrossNewYear(t *testing.T) {
	r, err := NewRules(Config{BlackoutFromMonth: time.November, BlackoutToMonth: time.February})
	require.NoError(t, err)

	assert.True(t, r.IsSeasonalBlackout(mustDate(t, "2025-12-10")))
	assert.True(t, r.IsSeasonalBlackout(mustDate(t, "2026-02-28")))
	assert.False(t, r.IsSeasonalBlackout(mustDate(t, "2026-03-01")))
}

func TestRules_NoBlackout(t *testing.T) {
	r, err := NewRules(Config{})
	require.NoError(t, err)

	assert.False(t, r.IsBlocked(mustDate(t, "2025-07-15")))
}

func TestNewRules_InvalidConfig(t *testing.T) {
	_, err := NewRules(Config{BlackoutFromMonth: time.June})
	assert.Error(t, err)

	_, err = NewRules(Config{BlackoutFromMonth: 13, BlackoutToMonth: 2})
	assert.Error(t, err)

	_, err = NewRules(Config{Holidays: map[string][]string{"2025": {"25.12.2025"}}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NewRules(Config{Holidays: map[string][]string{"2025": {"2026-01-01"}}})
	assert.Error(t, err)
}

func TestRules_Today(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	r, err := NewRules(Config{Location: berlin})
	require.NoError(t, err)

	// 23:30 UTC 31 декабря уже 1 января в Берлине
	now := time.Date(2025, 12, 31, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-01-01", r.Today(now).Format(domain.DateFormat))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-11-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "04.11.2025", "2025-13-01", "2025-02-30", "garbage"} {
		_, err := ParseDate(bad)
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr, bad)
		assert.ErrorIs(t, err, domain.ErrValidation, bad)
	}
}

func TestFormatDisplay(t *testing.T) {
	assert.Equal(t, "04.11.2025", FormatDisplay(mustDate(t, "2025-11-04")))
	assert.Equal(t, "04.11.2025", FormatDisplayString("2025-11-04"))
	assert.Equal(t, "not-a-date", FormatDisplayString("not-a-date"))
}

func TestLoadHolidays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.yml")
	content := "\"2025\":\n  - \"2025-12-25\"\n  - \"2025-12-26\"\n\"2026\":\n  - \"2026-01-01\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	holidays, err := LoadHolidays(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-12-25", "2025-12-26"}, holidays["2025"])
	assert.Equal(t, []string{"2026-01-01"}, holidays["2026"])

	empty, err := LoadHolidays("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = LoadHolidays(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
