package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DutyRosterService/internal/api/middleware"
	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	createBooking "github.com/m04kA/SMC-DutyRosterService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-DutyRosterService/pkg/logger"
	"github.com/m04kA/SMC-DutyRosterService/pkg/types"
)

type fakeUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

func newRequest(body, actor string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if actor != "" {
		req = req.WithContext(middleware.WithUserEmail(req.Context(), actor))
	}
	return req
}

func TestHandler_Created(t *testing.T) {
	slotDate := time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createBooking.Response{
		Booking: &domain.Booking{
			ID:        "b-1",
			SlotDate:  slotDate,
			SlotTime:  types.MustParseTimeRange("17:00-20:00"),
			Status:    domain.StatusConfirmed,
			UserEmail: "anna@example.org",
			UserName:  "Anna",
		},
		NotificationWarning: "broker down",
	}}
	h := NewHandler(uc, logger.Nop())
	rec := httptest.NewRecorder()

	h.Handle(rec, newRequest(`{"slotDate":"2025-11-04","slotTime":"17:00-20:00"}`, "anna@example.org"))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "anna@example.org", uc.got.ActorEmail)
	assert.Equal(t, slotDate, uc.got.SlotDate)
	assert.Equal(t, "17:00-20:00", uc.got.SlotTime.String())
	assert.False(t, uc.got.Override)

	var body CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "b-1", body.Booking.ID)
	assert.Equal(t, "04.11.2025", body.Booking.SlotDateDisplay)
	assert.Nil(t, body.Replaced)
	assert.Equal(t, "broker down", body.NotificationWarning)
}

func TestHandler_SlotTaken(t *testing.T) {
	uc := &fakeUseCase{err: &domain.SlotTakenError{HolderName: "Boris"}}
	h := NewHandler(uc, logger.Nop())
	rec := httptest.NewRecorder()

	h.Handle(rec, newRequest(`{"slotDate":"2025-11-04","slotTime":"17:00-20:00"}`, "anna@example.org"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"holderName":"Boris"`)
}

func TestHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		actor  string
		status int
	}{
		{name: "no actor", body: `{}`, status: http.StatusUnauthorized},
		{name: "malformed json", body: `{`, actor: "a@example.org", status: http.StatusBadRequest},
		{name: "unknown field", body: `{"slot":"x"}`, actor: "a@example.org", status: http.StatusBadRequest},
		{name: "bad date", body: `{"slotDate":"04.11.2025","slotTime":"17:00-20:00"}`, actor: "a@example.org", status: http.StatusBadRequest},
		{name: "bad time", body: `{"slotDate":"2025-11-04","slotTime":"17-20"}`, actor: "a@example.org", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			h := NewHandler(uc, logger.Nop())
			rec := httptest.NewRecorder()

			h.Handle(rec, newRequest(tt.body, tt.actor))

			assert.Equal(t, tt.status, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}
