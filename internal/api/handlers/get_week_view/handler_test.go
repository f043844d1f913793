package get_week_view

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	getWeekView "github.com/m04kA/SMC-DutyRosterService/internal/usecase/get_week_view"
	"github.com/m04kA/SMC-DutyRosterService/pkg/logger"
	"github.com/m04kA/SMC-DutyRosterService/pkg/types"
)

type fakeUseCase struct {
	got  *getWeekView.Request
	resp *getWeekView.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getWeekView.Request) (*getWeekView.Response, error) {
	f.got = req
	return f.resp, f.err
}

func newRequest(date string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/weeks/"+date+"/slots", nil)
	return mux.SetURLVars(req, map[string]string{"date": date})
}

func TestHandler_WeekView(t *testing.T) {
	anchor := time.Date(2025, 12, 22, 0, 0, 0, 0, time.UTC)
	tuesday := anchor.AddDate(0, 0, 1)
	friday := anchor.AddDate(0, 0, 4)
	evening := types.MustParseTimeRange("17:00-20:00")

	uc := &fakeUseCase{resp: &getWeekView.Response{
		WeekAnchor: anchor,
		Slots: []domain.SlotState{
			{
				Slot:         domain.ResolvedSlot{SlotID: 1, Date: tuesday, TimeRange: evening, Weekday: "tuesday", DisplayName: "Dienstag"},
				Availability: domain.AvailabilityBooked,
				Booking:      &domain.Booking{ID: "b-1", SlotDate: tuesday, SlotTime: evening, Status: domain.StatusConfirmed, UserName: "Anna"},
			},
			{
				Slot:         domain.ResolvedSlot{SlotID: 2, Date: friday, TimeRange: evening, Weekday: "friday", DisplayName: "Freitag"},
				Availability: domain.AvailabilityBlocked,
				BlockReason:  domain.BlockReasonHoliday,
			},
		},
	}}
	h := NewHandler(uc, logger.Nop())
	rec := httptest.NewRecorder()

	h.Handle(rec, newRequest("2025-12-25"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), uc.got.Date)

	var body WeekViewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-12-22", body.WeekAnchor)
	assert.Equal(t, "22.12.2025", body.WeekAnchorDisplay)
	require.Len(t, body.Slots, 2)
	assert.Equal(t, "booked", body.Slots[0].Availability)
	require.NotNil(t, body.Slots[0].Booking)
	assert.Equal(t, "Anna", body.Slots[0].Booking.UserName)
	assert.Equal(t, "blocked", body.Slots[1].Availability)
	assert.Equal(t, "holiday", body.Slots[1].BlockReason)
	assert.Nil(t, body.Slots[1].Booking)
}

func TestHandler_InvalidDate(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.Nop())
	rec := httptest.NewRecorder()

	h.Handle(rec, newRequest("2025-13-01"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandler_StoreUnavailable(t *testing.T) {
	uc := &fakeUseCase{err: domain.NewKindError(domain.ErrStoreUnavailable, "get_week_view: internal error")}
	h := NewHandler(uc, logger.Nop())
	rec := httptest.NewRecorder()

	h.Handle(rec, newRequest("2025-12-25"))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
