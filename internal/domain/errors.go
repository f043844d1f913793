package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DutyRosterService/pkg/types"
)

// Business outcome sentinels shared by use cases and handlers
var (
	ErrValidation             = errors.New("validation error")
	ErrSlotTaken              = errors.New("slot already taken")
	ErrSlotBlocked            = errors.New("slot date is blocked")
	ErrNotFound               = errors.New("not found")
	ErrAccessDenied           = errors.New("access denied")
	ErrTransferPartialFailure = errors.New("transfer partially failed")
	ErrStoreUnavailable       = errors.New("store unavailable")
)

// SlotTakenError reports the current holder of a confirmed slot
type SlotTakenError struct {
	HolderName string
	Booking    *Booking
}

func (e *SlotTakenError) Error() string {
	if e.HolderName == "" {
		return ErrSlotTaken.Error()
	}
	return fmt.Sprintf("%s: booked by %s", ErrSlotTaken, e.HolderName)
}

func (e *SlotTakenError) Is(target error) bool {
	return target == ErrSlotTaken
}

// SlotBlockedError reports why a date cannot be booked
type SlotBlockedError struct {
	Date   time.Time
	Reason BlockReason
}

func (e *SlotBlockedError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrSlotBlocked, e.Date.Format(DateFormat), e.Reason)
}

func (e *SlotBlockedError) Is(target error) bool {
	return target == ErrSlotBlocked
}

// TransferPartialFailureError означает, что исходное бронирование уже отменено,
// а новое создать не удалось: слот пуст и его нужно забронировать повторно
type TransferPartialFailureError struct {
	OriginalBookingID string
	SlotDate          time.Time
	SlotTime          types.TimeRange
	Cause             error
}

func (e *TransferPartialFailureError) Error() string {
	return fmt.Sprintf("%s: booking %s cancelled, slot %s %s left empty: %v",
		ErrTransferPartialFailure, e.OriginalBookingID, e.SlotDate.Format(DateFormat), e.SlotTime, e.Cause)
}

func (e *TransferPartialFailureError) Is(target error) bool {
	return target == ErrTransferPartialFailure
}

func (e *TransferPartialFailureError) Unwrap() error {
	return e.Cause
}

// kindError ошибка пакета, относящаяся к одному из видов доменных ошибок
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string {
	return e.msg
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}

// NewKindError создает sentinel-ошибку пакета, которая совпадает (errors.Is) с kind
// Так обработчики HTTP различают ошибки по виду, не зная о пакете
func NewKindError(kind error, msg string) error {
	return &kindError{msg: msg, kind: kind}
}
