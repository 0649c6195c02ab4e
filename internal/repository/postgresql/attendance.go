package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/worktime-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, work_date, shift_id, check_in, check_out,
	regular_hours, overtime_hours, delay_minutes, early_checkout_penalty,
	total_break_minutes, is_on_break, break_started_at, break_reason,
	status, created_at, updated_at
`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	var breakSince *time.Time
	var breakReason *string

	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.WorkDate, &rec.ShiftID, &rec.CheckIn, &rec.CheckOut,
		&rec.RegularHours, &rec.OvertimeHours, &rec.DelayMinutes, &rec.EarlyCheckoutPenalty,
		&rec.TotalBreakMinutes, &rec.Break.OnBreak, &breakSince, &breakReason,
		&rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}

	if rec.Break.OnBreak {
		if breakSince != nil {
			rec.Break.Since = *breakSince
		}
		if breakReason != nil {
			rec.Break.Reason = *breakReason
		}
	}
	return rec, nil
}

const attendanceJoinColumns = `
	r.id, r.employee_id, r.work_date, r.shift_id, r.check_in, r.check_out,
	r.regular_hours, r.overtime_hours, r.delay_minutes, r.early_checkout_penalty,
	r.total_break_minutes, r.is_on_break, r.break_started_at, r.break_reason,
	r.status, r.created_at, r.updated_at, e.full_name
`

func scanRecordWithName(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	var breakSince *time.Time
	var breakReason *string

	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.WorkDate, &rec.ShiftID, &rec.CheckIn, &rec.CheckOut,
		&rec.RegularHours, &rec.OvertimeHours, &rec.DelayMinutes, &rec.EarlyCheckoutPenalty,
		&rec.TotalBreakMinutes, &rec.Break.OnBreak, &breakSince, &breakReason,
		&rec.Status, &rec.CreatedAt, &rec.UpdatedAt, &rec.EmployeeName,
	)
	if err != nil {
		return attendance.Record{}, err
	}

	if rec.Break.OnBreak {
		if breakSince != nil {
			rec.Break.Since = *breakSince
		}
		if breakReason != nil {
			rec.Break.Reason = *breakReason
		}
	}
	return rec, nil
}

// Create implements attendance.Repository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, work_date, shift_id, check_in, status
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		record.WorkDate,
		record.ShiftID,
		record.CheckIn,
		record.Status,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE id = $1`

	rec, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	if err := a.loadSessions(ctx, []*attendance.Record{&rec}); err != nil {
		return attendance.Record{}, err
	}
	return rec, nil
}

// GetOpenByEmployeeAndDate implements attendance.Repository.
func (a *attendanceRepository) GetOpenByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND work_date = $2
		  AND check_out IS NULL
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, workDate))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrNoOpenRecord
		}
		return attendance.Record{}, fmt.Errorf("failed to get open attendance record: %w", err)
	}

	if err := a.loadSessions(ctx, []*attendance.Record{&rec}); err != nil {
		return attendance.Record{}, err
	}
	return rec, nil
}

// HasRecordForDate implements attendance.Repository.
func (a *attendanceRepository) HasRecordForDate(ctx context.Context, employeeID string, workDate time.Time) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendance_records
			WHERE employee_id = $1 AND work_date = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, workDate).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance record existence: %w", err)
	}
	return exists, nil
}

// Close implements attendance.Repository. Clears the break state columns (a
// closed record is never on break) and, when a dangling session was closed at
// check-out, inserts it in the same transaction.
func (a *attendanceRepository) Close(ctx context.Context, record attendance.Record, danglingSession *attendance.BreakSession) error {
	return WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		if danglingSession != nil {
			if err := insertBreakSession(ctx, tx, *danglingSession); err != nil {
				return err
			}
		}

		query := `
			UPDATE attendance_records
			SET check_out = $2,
				status = $3,
				regular_hours = $4,
				overtime_hours = $5,
				delay_minutes = $6,
				early_checkout_penalty = $7,
				total_break_minutes = $8,
				is_on_break = FALSE,
				break_started_at = NULL,
				break_reason = NULL,
				updated_at = NOW()
			WHERE id = $1
			  AND check_out IS NULL
		`

		tag, err := tx.Exec(ctx, query,
			record.ID,
			record.CheckOut,
			record.Status,
			record.RegularHours,
			record.OvertimeHours,
			record.DelayMinutes,
			record.EarlyCheckoutPenalty,
			record.TotalBreakMinutes,
		)
		if err != nil {
			return fmt.Errorf("failed to close attendance record: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return attendance.ErrRecordNotFound
		}
		return nil
	})
}

// ListClosed implements attendance.Repository.
func (a *attendanceRepository) ListClosed(ctx context.Context, filter attendance.ClosedRecordFilter) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceJoinColumns + `
		FROM attendance_records r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.check_out IS NOT NULL
	`
	args := []interface{}{}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND r.work_date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND r.work_date <= $%d", len(args))
	}
	query += " ORDER BY r.work_date ASC, r.check_in ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list closed attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecordWithName(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}
	return records, nil
}

// ListByEmployeeAndRange implements attendance.Repository. Break sessions are
// attached so listings can show the full break history.
func (a *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceJoinColumns + `
		FROM attendance_records r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.employee_id = $1
		  AND r.work_date >= $2
		  AND r.work_date <= $3
		ORDER BY r.work_date ASC, r.check_in ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecordWithName(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	refs := make([]*attendance.Record, len(records))
	for i := range records {
		refs[i] = &records[i]
	}
	if err := a.loadSessions(ctx, refs); err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateAccounting implements attendance.Repository.
func (a *attendanceRepository) UpdateAccounting(ctx context.Context, recordID string, fields attendance.AccountingFields) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET regular_hours = $2,
			overtime_hours = $3,
			delay_minutes = $4,
			early_checkout_penalty = $5,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		recordID,
		fields.RegularHours,
		fields.OvertimeHours,
		fields.DelayMinutes,
		fields.EarlyCheckoutPenalty,
	)
	if err != nil {
		return fmt.Errorf("failed to update accounting fields: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// EndBreak implements attendance.Repository. The state clear, the session
// insert and the total update commit together; a failure on any of them rolls
// the whole transition back, leaving the break open.
func (a *attendanceRepository) EndBreak(ctx context.Context, session attendance.BreakSession, totalBreakMinutes int) error {
	return WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		clearQuery := `
			UPDATE attendance_records
			SET is_on_break = FALSE,
				break_started_at = NULL,
				break_reason = NULL,
				total_break_minutes = $2,
				updated_at = NOW()
			WHERE id = $1
			  AND check_out IS NULL
			  AND is_on_break = TRUE
		`

		tag, err := tx.Exec(ctx, clearQuery, session.RecordID, totalBreakMinutes)
		if err != nil {
			return fmt.Errorf("failed to clear break state: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return attendance.ErrNotOnBreak
		}

		return insertBreakSession(ctx, tx, session)
	})
}

func insertBreakSession(ctx context.Context, tx pgx.Tx, session attendance.BreakSession) error {
	query := `
		INSERT INTO break_sessions (
			id, record_id, start_time, end_time, duration_minutes, reason
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.Exec(ctx, query,
		session.ID,
		session.RecordID,
		session.StartTime,
		session.EndTime,
		session.DurationMinutes,
		session.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to insert break session: %w", err)
	}
	return nil
}

// BeginBreak implements attendance.Repository. The WHERE clause requires the
// stored record to still be open and working, so two racing break starts on
// the same record cannot both succeed.
func (a *attendanceRepository) BeginBreak(ctx context.Context, recordID string, state attendance.BreakState) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET is_on_break = TRUE,
			break_started_at = $2,
			break_reason = $3,
			updated_at = NOW()
		WHERE id = $1
		  AND check_out IS NULL
		  AND is_on_break = FALSE
	`

	tag, err := q.Exec(ctx, query, recordID, state.Since, state.Reason)
	if err != nil {
		return fmt.Errorf("failed to begin break: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyOnBreak
	}
	return nil
}

// loadSessions attaches break sessions to the given records in one query.
func (a *attendanceRepository) loadSessions(ctx context.Context, records []*attendance.Record) error {
	if len(records) == 0 {
		return nil
	}

	q := GetQuerier(ctx, a.db)

	ids := make([]string, 0, len(records))
	byID := make(map[string]*attendance.Record, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
		byID[rec.ID] = rec
	}

	query := `
		SELECT id, record_id, start_time, end_time, duration_minutes, reason, created_at
		FROM break_sessions
		WHERE record_id = ANY($1)
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to list break sessions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var session attendance.BreakSession
		err := rows.Scan(
			&session.ID, &session.RecordID, &session.StartTime, &session.EndTime,
			&session.DurationMinutes, &session.Reason, &session.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to scan break session: %w", err)
		}
		if rec, ok := byID[session.RecordID]; ok {
			rec.Sessions = append(rec.Sessions, session)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate break sessions: %w", err)
	}
	return nil
}
