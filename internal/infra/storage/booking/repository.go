package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/atlab/booking-service/internal/domain"
	"github.com/atlab/booking-service/pkg/psqlbuilder"
	"github.com/atlab/booking-service/pkg/txmanager"
	"github.com/atlab/booking-service/pkg/types"
)

var bookingColumns = []string{
	"id",
	"booking_group_id",
	"name",
	"email",
	"student_id",
	"dsps",
	"lab_location",
	"slot_date",
	"start_time",
	"end_time",
	"exam_number",
	"grade",
	"graded_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий журнала бронирований
// Реализует контракт хранилища записей: полный снапшот (Load), добавление
// строки (Append) и полная перезапись (Overwrite). Мутации, требующие
// атомарной замены строк, выполняются вызывающей стороной внутри
// сериализуемой транзакции.
type Repository struct {
	db  DBExecutor
	loc *time.Location
}

// NewRepository создает новый репозиторий бронирований.
// loc задает часовой пояс лаборатории, в котором интерпретируются даты и время слотов
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	return &Repository{db: db, loc: loc}
}

// Load возвращает полный снапшот журнала бронирований, отсортированный по
// дате и времени слота. Внутри транзакции строки блокируются (FOR UPDATE),
// чтобы решение, принятое по снапшоту, нельзя было опрокинуть параллельной
// записью.
func (r *Repository) Load(ctx context.Context) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("slot_date ASC, start_time ASC, id ASC")

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Load - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Load - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// List возвращает бронирования по фильтру (локация, период, email)
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("slot_date ASC, start_time ASC, id ASC")

	if filter.Location != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"lab_location": string(*filter.Location)})
	}
	if filter.Email != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr("LOWER(email) = LOWER(?)", *filter.Email))
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"slot_date": *filter.EndDate})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Append добавляет одну строку в журнал
func (r *Repository) Append(ctx context.Context, b *domain.Booking) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.insertBuilder(b).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if err != nil {
		return fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return nil
}

// Overwrite заменяет содержимое журнала целиком
// Вызывается только внутри транзакции: удаление и вставка видны другим
// читателям как одна атомарная замена, промежуточного состояния нет.
func (r *Repository) Overwrite(ctx context.Context, all []*domain.Booking) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").ToSql()
	if err != nil {
		return fmt.Errorf("%w: Overwrite - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Overwrite - execute delete: %v", ErrExecQuery, err)
	}

	for _, b := range all {
		query, args, err := r.insertBuilder(b).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: Overwrite - build insert query: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.ID); err != nil {
			return fmt.Errorf("%w: Overwrite - execute insert: %v", ErrExecQuery, err)
		}
	}

	return nil
}

func (r *Repository) insertBuilder(b *domain.Booking) squirrel.InsertBuilder {
	createdAt := interface{}(squirrel.Expr("NOW()"))
	if !b.CreatedAt.IsZero() {
		createdAt = b.CreatedAt
	}

	return psqlbuilder.Insert("bookings").
		Columns(
			"booking_group_id",
			"name",
			"email",
			"student_id",
			"dsps",
			"lab_location",
			"slot_date",
			"start_time",
			"end_time",
			"exam_number",
			"grade",
			"graded_by",
			"created_at",
		).
		Values(
			b.GroupID,
			b.Name,
			b.Email,
			b.StudentID,
			b.DSPS,
			string(b.Slot.Location),
			b.Slot.Date(),
			types.NewTimeString(b.Slot.Start).String(),
			types.NewTimeString(b.Slot.End).String(),
			b.Exam,
			b.Grade,
			b.GradedBy,
			createdAt,
		)
}

// scanBookings сканирует строки запроса и восстанавливает структурные слоты
// Строка, не интерпретируемая как валидный слот, считается порчей данных:
// возвращается ErrCorruptedRow, а не «слот занят» или «слот в прошлом»
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var (
			b                  domain.Booking
			location           string
			slotDate           time.Time
			startStr, endStr   string
			createdAt, updated sql.NullTime
		)

		err := rows.Scan(
			&b.ID,
			&b.GroupID,
			&b.Name,
			&b.Email,
			&b.StudentID,
			&b.DSPS,
			&location,
			&slotDate,
			&startStr,
			&endStr,
			&b.Exam,
			&b.Grade,
			&b.GradedBy,
			&createdAt,
			&updated,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		slot, err := r.buildSlot(domain.Location(location), slotDate, startStr, endStr)
		if err != nil {
			return nil, fmt.Errorf("%w: booking id=%d: %v", ErrCorruptedRow, b.ID, err)
		}

		b.Slot = slot
		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updated.Time

		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func (r *Repository) buildSlot(location domain.Location, date time.Time, startStr, endStr string) (domain.Slot, error) {
	start, err := types.NewTimeStringFromString(normalizeClock(startStr))
	if err != nil {
		return domain.Slot{}, fmt.Errorf("start_time %q: %w", startStr, err)
	}
	end, err := types.NewTimeStringFromString(normalizeClock(endStr))
	if err != nil {
		return domain.Slot{}, fmt.Errorf("end_time %q: %w", endStr, err)
	}
	if !start.IsBefore(end) {
		return domain.Slot{}, fmt.Errorf("start_time %q is not before end_time %q", startStr, endStr)
	}

	startMins, err := start.Minutes()
	if err != nil {
		return domain.Slot{}, err
	}
	endMins, err := end.Minutes()
	if err != nil {
		return domain.Slot{}, err
	}

	y, m, d := date.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, r.loc)

	return domain.Slot{
		Location: location,
		Start:    midnight.Add(time.Duration(startMins) * time.Minute),
		End:      midnight.Add(time.Duration(endMins) * time.Minute),
	}, nil
}

// normalizeClock обрезает секунды, если колонка пришла как "HH:MM:SS"
func normalizeClock(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
