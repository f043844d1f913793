package transfer_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DutyRosterService/internal/api/handlers"
	"github.com/m04kA/SMC-DutyRosterService/internal/api/middleware"
	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	transferBooking "github.com/m04kA/SMC-DutyRosterService/internal/usecase/transfer_booking"
	"github.com/m04kA/SMC-DutyRosterService/pkg/logger"
	"github.com/m04kA/SMC-DutyRosterService/pkg/types"
)

type fakeUseCase struct {
	got  *transferBooking.Request
	resp *transferBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *transferBooking.Request) (*transferBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

func newRequest(bookingID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/"+bookingID+"/transfer", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	return req.WithContext(middleware.WithUserEmail(req.Context(), "admin@example.org"))
}

func TestHandler_Transferred(t *testing.T) {
	slotDate := time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC)
	slotTime := types.MustParseTimeRange("17:00-20:00")
	uc := &fakeUseCase{resp: &transferBooking.Response{
		Booking:  &domain.Booking{ID: "b-2", SlotDate: slotDate, SlotTime: slotTime, Status: domain.StatusConfirmed, UserEmail: "boris@example.org"},
		Original: &domain.Booking{ID: "b-1", SlotDate: slotDate, SlotTime: slotTime, Status: domain.StatusCancelled, UserEmail: "anna@example.org"},
	}}
	h := NewHandler(uc, logger.Nop())
	rec := httptest.NewRecorder()

	h.Handle(rec, newRequest("b-1", `{"userEmail":"boris@example.org"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &transferBooking.Request{
		ActorEmail:   "admin@example.org",
		BookingID:    "b-1",
		NewUserEmail: "boris@example.org",
	}, uc.got)

	var body TransferBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "b-2", body.Booking.ID)
	assert.Equal(t, "cancelled", body.Original.Status)
}

func TestHandler_PartialFailure(t *testing.T) {
	uc := &fakeUseCase{err: &domain.TransferPartialFailureError{
		OriginalBookingID: "b-1",
		SlotDate:          time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC),
		SlotTime:          types.MustParseTimeRange("17:00-20:00"),
		Cause:             errors.New("insert failed"),
	}}
	h := NewHandler(uc, logger.Nop())
	rec := httptest.NewRecorder()

	h.Handle(rec, newRequest("b-1", `{"userEmail":"boris@example.org"}`))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, handlers.CodeTransferPartialFailure, body.Code)
	assert.Equal(t, "b-1", body.OriginalBookingID)
}
