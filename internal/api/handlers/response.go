package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
)

const (
	msgInternalError    = "внутренняя ошибка сервера"
	msgStoreUnavailable = "хранилище временно недоступно"
	msgForbidden        = "доступ запрещен"
	msgNotFound         = "не найдено"
	msgSlotTaken        = "слот уже занят"
	msgSlotBlocked      = "дата недоступна для бронирования"
	msgTransferPartial  = "исходное бронирование отменено, но новое не создано: слот свободен, повторите бронирование"
)

// Коды ошибок в теле ответа
const (
	CodeSlotTaken              = "slot_taken"
	CodeSlotBlocked            = "slot_blocked"
	CodeTransferPartialFailure = "transfer_partial_failure"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error             string `json:"error"`
	Code              string `json:"code,omitempty"`
	HolderName        string `json:"holderName,omitempty"`
	BlockReason       string `json:"blockReason,omitempty"`
	OriginalBookingID string `json:"originalBookingId,omitempty"`
}

// DecodeJSON декодирует тело запроса; неизвестные поля запрещены
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondError отправляет ошибку с сообщением
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondDomainError отвечает по виду доменной ошибки
// Возвращает HTTP статус, чтобы обработчик мог выбрать уровень логирования
func RespondDomainError(w http.ResponseWriter, err error) int {
	var (
		taken   *domain.SlotTakenError
		blocked *domain.SlotBlockedError
		partial *domain.TransferPartialFailureError
	)

	switch {
	case errors.As(err, &partial):
		RespondJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:             msgTransferPartial,
			Code:              CodeTransferPartialFailure,
			OriginalBookingID: partial.OriginalBookingID,
		})
		return http.StatusInternalServerError

	case errors.As(err, &taken):
		RespondJSON(w, http.StatusConflict, ErrorResponse{
			Error:      msgSlotTaken,
			Code:       CodeSlotTaken,
			HolderName: taken.HolderName,
		})
		return http.StatusConflict

	case errors.As(err, &blocked):
		RespondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:       msgSlotBlocked,
			Code:        CodeSlotBlocked,
			BlockReason: string(blocked.Reason),
		})
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrValidation):
		RespondBadRequest(w, err.Error())
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrAccessDenied):
		RespondForbidden(w, msgForbidden)
		return http.StatusForbidden

	case errors.Is(err, domain.ErrNotFound):
		RespondNotFound(w, msgNotFound)
		return http.StatusNotFound

	case errors.Is(err, domain.ErrStoreUnavailable):
		RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)
		return http.StatusServiceUnavailable

	default:
		RespondInternalError(w)
		return http.StatusInternalServerError
	}
}
