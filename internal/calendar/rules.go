package calendar

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

// Config статические данные календаря организации
type Config struct {
	Holidays          map[string][]string // год (YYYY) -> даты YYYY-MM-DD
	BlackoutFromMonth time.Month          // 0 вместе с BlackoutToMonth = сезонной паузы нет
	BlackoutToMonth   time.Month
	Location          *time.Location // для вычисления "сегодня"
}

// Rules правила блокировки дат: праздники и сезонная пауза
type Rules struct {
	holidays     map[string]map[string]struct{}
	blackoutFrom time.Month
	blackoutTo   time.Month
	loc          *time.Location
}

// NewRules проверяет конфигурацию и строит правила
func NewRules(cfg Config) (*Rules, error) {
	if (cfg.BlackoutFromMonth == 0) != (cfg.BlackoutToMonth == 0) {
		return nil, fmt.Errorf("calendar: blackout range must set both months or none")
	}
	if cfg.BlackoutFromMonth != 0 && !validMonth(cfg.BlackoutFromMonth) {
		return nil, fmt.Errorf("calendar: invalid blackout start month %d", cfg.BlackoutFromMonth)
	}
	if cfg.BlackoutToMonth != 0 && !validMonth(cfg.BlackoutToMonth) {
		return nil, fmt.Errorf("calendar: invalid blackout end month %d", cfg.BlackoutToMonth)
	}

	holidays := make(map[string]map[string]struct{}, len(cfg.Holidays))
	for year, dates := range cfg.Holidays {
		set := make(map[string]struct{}, len(dates))
		for _, raw := range dates {
			d, err := ParseDate(raw)
			if err != nil {
				return nil, fmt.Errorf("calendar: holidays for %s: %w", year, err)
			}
			key := d.Format(domain.DateFormat)
			if key[:4] != year {
				return nil, fmt.Errorf("calendar: holiday %s listed under year %s", key, year)
			}
			set[key] = struct{}{}
		}
		holidays[year] = set
	}

	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	return &Rules{
		holidays:     holidays,
		blackoutFrom: cfg.BlackoutFromMonth,
		blackoutTo:   cfg.BlackoutToMonth,
		loc:          loc,
	}, nil
}

// IsHoliday возвращает true, если дата есть в списке праздников своего года
// Год без данных означает "праздников нет"
func (r *Rules) IsHoliday(d time.Time) bool {
	key := DateOnly(d).Format(domain.DateFormat)
	set, ok := r.holidays[key[:4]]
	if !ok {
		return false
	}
	_, found := set[key]
	return found
}

// IsSeasonalBlackout возвращает true, если месяц даты попадает в диапазон паузы (включительно)
// Диапазон может переходить через новый год, например ноябрь-февраль
func (r *Rules) IsSeasonalBlackout(d time.Time) bool {
	if r.blackoutFrom == 0 {
		return false
	}
	m := DateOnly(d).Month()
	if r.blackoutFrom <= r.blackoutTo {
		return m >= r.blackoutFrom && m <= r.blackoutTo
	}
	return m >= r.blackoutFrom || m <= r.blackoutTo
}

// BlockReason возвращает причину блокировки; праздник важнее сезонной паузы
func (r *Rules) BlockReason(d time.Time) domain.BlockReason {
	switch {
	case r.IsHoliday(d):
		return domain.BlockReasonHoliday
	case r.IsSeasonalBlackout(d):
		return domain.BlockReasonSeasonalBlackout
	default:
		return domain.BlockReasonNone
	}
}

// IsBlocked возвращает true, если на дату нельзя бронировать
func (r *Rules) IsBlocked(d time.Time) bool {
	return r.BlockReason(d) != domain.BlockReasonNone
}

// Today возвращает календарную дату момента now в часовом поясе организации
func (r *Rules) Today(now time.Time) time.Time {
	return DateOnly(now.In(r.loc))
}

// Location часовой пояс организации
func (r *Rules) Location() *time.Location {
	return r.loc
}

func validMonth(m time.Month) bool {
	return m >= time.January && m <= time.December
}
