package archive_bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DutyRosterService/internal/api/middleware"
	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	archiveBookings "github.com/m04kA/SMC-DutyRosterService/internal/usecase/archive_bookings"
	"github.com/m04kA/SMC-DutyRosterService/pkg/logger"
)

type fakeUseCase struct {
	resp *archiveBookings.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *archiveBookings.Request) (*archiveBookings.Response, error) {
	return f.resp, f.err
}

func newRequest() *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/archive", nil)
	return req.WithContext(middleware.WithUserEmail(req.Context(), "admin@example.org"))
}

func TestHandler(t *testing.T) {
	cutoff := time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		uc     *fakeUseCase
		status int
		moved  int
		errMsg string
	}{
		{
			name:   "success",
			uc:     &fakeUseCase{resp: &archiveBookings.Response{Cutoff: cutoff, Moved: 3}},
			status: http.StatusOK,
			moved:  3,
		},
		{
			name: "partial failure reports moved count",
			uc: &fakeUseCase{
				resp: &archiveBookings.Response{Cutoff: cutoff, Moved: 2},
				err:  fmt.Errorf("%w: moved 2: %v", archiveBookings.ErrInternal, errors.New("connection reset")),
			},
			status: http.StatusServiceUnavailable,
			moved:  2,
			errMsg: msgArchiveStopped,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.uc, logger.Nop())
			rec := httptest.NewRecorder()

			h.Handle(rec, newRequest())

			require.Equal(t, tt.status, rec.Code)
			var body ArchiveResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "2024-11-20", body.Cutoff)
			assert.Equal(t, tt.moved, body.Moved)
			assert.Equal(t, tt.errMsg, body.Error)
		})
	}
}

func TestHandler_NotAdmin(t *testing.T) {
	uc := &fakeUseCase{err: domain.NewKindError(domain.ErrAccessDenied, "users.service: access denied")}
	h := NewHandler(uc, logger.Nop())
	rec := httptest.NewRecorder()

	h.Handle(rec, newRequest())

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
