package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-DutyRosterService/internal/domain"
	"github.com/m04kA/SMC-DutyRosterService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DutyRosterService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-DutyRosterService/pkg/types"
)

const (
	tableBookings = "bookings"
	tableArchive  = "bookings_archive"
)

// Коды ошибок PostgreSQL
const (
	pgUniqueViolation           = "23505"
	pgFeatureNotSupported       = "0A000"
	pgUndefinedObject           = "42704"
	pgProgramLimitExceeded      = "54000"
	pgInvalidTextRepresentation = "22P02"
)

var bookingColumns = []string{
	"id",
	"slot_date",
	"slot_time",
	"status",
	"user_email",
	"user_name",
	"user_phone",
	"created_at",
	"cancelled_at",
	"cancelled_by",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindConfirmed возвращает подтвержденное бронирование слота или nil
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) FindConfirmed(ctx context.Context, date time.Time, slotTime types.TimeRange) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{
			"slot_date": date.Format(domain.DateFormat),
			"slot_time": slotTime.String(),
			"status":    string(domain.StatusConfirmed),
		}).
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmed - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmed - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// FindConfirmedInRange возвращает подтвержденные бронирования с from по to включительно,
// отсортированные по дате и времени
//
// Если БД не может выполнить запрос по диапазону (нет индекса, запрос не поддерживается),
// выполняется полный просмотр подтвержденных бронирований с фильтрацией в памяти.
// Результат обоих путей одинаковый
func (r *Repository) FindConfirmedInRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	bookings, err := r.findConfirmedInRange(ctx, from, to)
	if err == nil {
		return bookings, nil
	}
	if !isRangeQueryUnavailable(err) {
		return nil, err
	}

	all, scanErr := r.findAllConfirmed(ctx)
	if scanErr != nil {
		return nil, fmt.Errorf("%w (range query failed: %v)", scanErr, err)
	}

	fromKey, toKey := from.Format(domain.DateFormat), to.Format(domain.DateFormat)
	filtered := make([]*domain.Booking, 0, len(all))
	for _, b := range all {
		key := b.SlotDate.Format(domain.DateFormat)
		if key >= fromKey && key <= toKey {
			filtered = append(filtered, b)
		}
	}
	sortBySlot(filtered)

	return filtered, nil
}

func (r *Repository) findConfirmedInRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"status": string(domain.StatusConfirmed)}).
		Where(squirrel.GtOrEq{"slot_date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"slot_date": to.Format(domain.DateFormat)}).
		OrderBy("slot_date ASC", "slot_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *Repository) findAllConfirmed(ctx context.Context) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"status": string(domain.StatusConfirmed)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: findAllConfirmed - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: findAllConfirmed - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// InsertConfirmed создает подтвержденное бронирование и заполняет ID и CreatedAt
// Возвращает ErrConflict, если слот уже занят (уникальный частичный индекс)
func (r *Repository) InsertConfirmed(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	booking.ID = uuid.NewString()
	booking.Status = domain.StatusConfirmed
	booking.CancelledAt = nil
	booking.CancelledBy = nil

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"id",
			"slot_date",
			"slot_time",
			"status",
			"user_email",
			"user_name",
			"user_phone",
		).
		Values(
			booking.ID,
			booking.SlotDate.Format(domain.DateFormat),
			booking.SlotTime.String(),
			string(booking.Status),
			booking.UserEmail,
			booking.UserName,
			booking.UserPhone,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: InsertConfirmed - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)
	if isPgCode(err, pgUniqueViolation) {
		return nil, fmt.Errorf("%w: %s %s", ErrConflict, booking.SlotDate.Format(domain.DateFormat), booking.SlotTime)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: InsertConfirmed - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time

	return booking, nil
}

// MarkCancelled отменяет подтвержденное бронирование
// Возвращает false без ошибки, если бронирование уже было отменено
func (r *Repository) MarkCancelled(ctx context.Context, id string, cancelledBy string, at time.Time) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, ErrBookingNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", string(domain.StatusCancelled)).
		Set("cancelled_at", at).
		Set("cancelled_by", cancelledBy).
		Where(squirrel.Eq{"id": id, "status": string(domain.StatusConfirmed)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: MarkCancelled - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkCancelled - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkCancelled - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected > 0 {
		return true, nil
	}

	// Ничего не обновили: либо уже отменено, либо бронирования нет
	if _, err := r.GetByID(ctx, id); err != nil {
		return false, err
	}

	return false, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrBookingNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) || isPgCode(err, pgInvalidTextRepresentation) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// FindByUser возвращает подтвержденные бронирования пользователя по возрастанию даты
// Если from задан, возвращаются только слоты начиная с этой даты
func (r *Repository) FindByUser(ctx context.Context, email string, from *time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{
			"user_email": domain.NormalizeEmail(email),
			"status":     string(domain.StatusConfirmed),
		}).
		OrderBy("slot_date ASC", "slot_time ASC")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_date": from.Format(domain.DateFormat)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// FindAll возвращает бронирования всех пользователей с фильтрацией для админки
// Сортировка по дате и времени слота
func (r *Repository) FindAll(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		OrderBy("slot_date ASC", "slot_time ASC", "created_at ASC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"slot_date": filter.EndDate.Format(domain.DateFormat)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// MoveToArchive переносит бронирования со slot_date раньше olderThan в архив
// Каждая запись переносится в своей транзакции. При ошибке перенос останавливается,
// уже перенесенные записи остаются в архиве; возвращается их количество и ошибка
func (r *Repository) MoveToArchive(ctx context.Context, olderThan time.Time) (int, error) {
	ids, err := r.findIDsOlderThan(ctx, olderThan)
	if err != nil {
		return 0, err
	}

	moved := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return moved, fmt.Errorf("%w: MoveToArchive - %v", ErrTransaction, err)
		}
		if err := r.archiveOne(ctx, id); err != nil {
			return moved, err
		}
		moved++
	}

	return moved, nil
}

func (r *Repository) findIDsOlderThan(ctx context.Context, olderThan time.Time) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From(tableBookings).
		Where(squirrel.Lt{"slot_date": olderThan.Format(domain.DateFormat)}).
		OrderBy("slot_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: MoveToArchive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: MoveToArchive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: MoveToArchive - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: MoveToArchive - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

func (r *Repository) archiveOne(ctx context.Context, id string) error {
	insertQuery, insertArgs, err := psqlbuilder.Insert(tableArchive).
		Columns(bookingColumns...).
		Select(psqlbuilder.Select(bookingColumns...).From(tableBookings).Where(squirrel.Eq{"id": id})).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: archiveOne - build insert query: %v", ErrBuildQuery, err)
	}

	deleteQuery, deleteArgs, err := psqlbuilder.Delete(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: archiveOne - build delete query: %v", ErrBuildQuery, err)
	}

	tx, err := dbmetrics.BeginTx(ctx, r.db, nil)
	if err != nil {
		return fmt.Errorf("%w: archiveOne - begin: %v", ErrTransaction, err)
	}

	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: archiveOne - insert %s into archive: %v", ErrExecQuery, id, err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: archiveOne - delete %s: %v", ErrExecQuery, id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: archiveOne - commit %s: %v", ErrTransaction, id, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking     domain.Booking
		slotDate    time.Time
		status      string
		createdAt   sql.NullTime
		cancelledAt sql.NullTime
		cancelledBy sql.NullString
	)

	err := row.Scan(
		&booking.ID,
		&slotDate,
		&booking.SlotTime,
		&status,
		&booking.UserEmail,
		&booking.UserName,
		&booking.UserPhone,
		&createdAt,
		&cancelledAt,
		&cancelledBy,
	)
	if err != nil {
		return nil, err
	}

	y, m, d := slotDate.Date()
	booking.SlotDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	booking.Status = domain.BookingStatus(status)
	booking.CreatedAt = createdAt.Time
	if cancelledAt.Valid {
		t := cancelledAt.Time
		booking.CancelledAt = &t
	}
	if cancelledBy.Valid {
		s := cancelledBy.String
		booking.CancelledBy = &s
	}

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func sortBySlot(bookings []*domain.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		ki, kj := bookings[i].SlotKey(), bookings[j].SlotKey()
		if ki.Date != kj.Date {
			return ki.Date < kj.Date
		}
		return ki.Time < kj.Time
	})
}

func isPgCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == code
	}
	return false
}

// isRangeQueryUnavailable true, если БД отказалась выполнять запрос по диапазону
func isRangeQueryUnavailable(err error) bool {
	return isPgCode(err, pgFeatureNotSupported) ||
		isPgCode(err, pgUndefinedObject) ||
		isPgCode(err, pgProgramLimitExceeded)
}
