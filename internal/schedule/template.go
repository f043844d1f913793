package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-DutyRosterService/internal/calendar"
	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	"github.com/m04kA/SMC-DutyRosterService/pkg/types"
)

// ErrInvalidTemplate возвращается при некорректном описании недельного шаблона
var ErrInvalidTemplate = errors.New("schedule: invalid slot template")

// Template фиксированный недельный шаблон дежурств
// Неизменяем после создания, порядок слотов сохраняется
type Template struct {
	slots []domain.SlotDefinition
}

// DefaultSlots шаблон по умолчанию: вторник и пятница 17-20, суббота 14-17
func DefaultSlots() []domain.SlotDefinition {
	return []domain.SlotDefinition{
		{ID: 1, Weekday: "tuesday", StartTime: "17:00", EndTime: "20:00", DisplayName: "Dienstag"},
		{ID: 2, Weekday: "friday", StartTime: "17:00", EndTime: "20:00", DisplayName: "Freitag"},
		{ID: 3, Weekday: "saturday", StartTime: "14:00", EndTime: "17:00", DisplayName: "Samstag"},
	}
}

// Default возвращает шаблон по умолчанию
func Default() *Template {
	t, err := New(DefaultSlots())
	if err != nil {
		panic(err)
	}
	return t
}

// New проверяет определения слотов и создает шаблон
// Ошибка в шаблоне - ошибка конфигурации, сервис не должен стартовать
func New(defs []domain.SlotDefinition) (*Template, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: no slots defined", ErrInvalidTemplate)
	}

	slots := make([]domain.SlotDefinition, 0, len(defs))
	ids := make(map[int]struct{}, len(defs))
	keys := make(map[string]struct{}, len(defs))

	for i, def := range defs {
		def.Weekday = strings.ToLower(strings.TrimSpace(def.Weekday))
		if !calendar.IsWeekdayName(def.Weekday) {
			return nil, fmt.Errorf("%w: slot #%d: unknown weekday %q", ErrInvalidTemplate, i+1, def.Weekday)
		}
		if _, err := types.NewTimeRange(def.StartTime, def.EndTime); err != nil {
			return nil, fmt.Errorf("%w: slot #%d: %v", ErrInvalidTemplate, i+1, err)
		}

		if def.ID == 0 {
			def.ID = i + 1
		}
		if _, dup := ids[def.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate slot id %d", ErrInvalidTemplate, def.ID)
		}
		ids[def.ID] = struct{}{}

		key := def.Weekday + " " + def.TimeRange().String()
		if _, dup := keys[key]; dup {
			return nil, fmt.Errorf("%w: duplicate slot %s", ErrInvalidTemplate, key)
		}
		keys[key] = struct{}{}

		if def.DisplayName == "" {
			def.DisplayName = strings.ToUpper(def.Weekday[:1]) + def.Weekday[1:]
		}

		slots = append(slots, def)
	}

	return &Template{slots: slots}, nil
}

// All возвращает копию всех слотов шаблона в исходном порядке
func (t *Template) All() []domain.SlotDefinition {
	out := make([]domain.SlotDefinition, len(t.slots))
	copy(out, t.slots)
	return out
}

// Find ищет слот шаблона по дню недели и диапазону времени
func (t *Template) Find(weekday string, tr types.TimeRange) (domain.SlotDefinition, bool) {
	weekday = strings.ToLower(strings.TrimSpace(weekday))
	for _, s := range t.slots {
		if s.Weekday == weekday && s.TimeRange() == tr {
			return s, true
		}
	}
	return domain.SlotDefinition{}, false
}

// Resolve разворачивает шаблон на конкретную неделю
func (t *Template) Resolve(anchor time.Time) []domain.ResolvedSlot {
	resolved := make([]domain.ResolvedSlot, 0, len(t.slots))
	for _, s := range t.slots {
		resolved = append(resolved, ResolveSlot(s, anchor))
	}
	return resolved
}

// ResolveSlot материализует определение слота на дату внутри недели anchor
func ResolveSlot(def domain.SlotDefinition, anchor time.Time) domain.ResolvedSlot {
	return domain.ResolvedSlot{
		SlotID:      def.ID,
		Date:        calendar.ResolveSlotDate(anchor, def.Weekday),
		TimeRange:   def.TimeRange(),
		Weekday:     def.Weekday,
		DisplayName: def.DisplayName,
	}
}
