package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/worktime-backend-go/internal/pkg/database"
)

type shiftAssignmentRepository struct {
	db *database.DB
}

func NewShiftAssignmentRepository(db *database.DB) shift.AssignmentRepository {
	return &shiftAssignmentRepository{db: db}
}

// Upsert implements shift.AssignmentRepository. The (employee_id, work_date)
// unique constraint makes re-assignment replace the previous row.
func (s *shiftAssignmentRepository) Upsert(ctx context.Context, assignment shift.Assignment) (shift.Assignment, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO shift_assignments (
			id, employee_id, work_date, shift_id, is_day_off
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, work_date) DO UPDATE
		SET shift_id = EXCLUDED.shift_id,
			is_day_off = EXCLUDED.is_day_off,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		assignment.ID,
		assignment.EmployeeID,
		assignment.WorkDate,
		assignment.ShiftID,
		assignment.IsDayOff,
	).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.UpdatedAt)

	if err != nil {
		return shift.Assignment{}, fmt.Errorf("failed to upsert shift assignment: %w", err)
	}
	return assignment, nil
}

const assignmentJoinColumns = `
	a.id, a.employee_id, a.work_date, a.shift_id, a.is_day_off, a.created_at, a.updated_at,
	d.id, d.name, d.category, d.start_time, d.end_time, d.all_time_overtime, d.created_at, d.updated_at
`

func scanAssignment(row pgx.Row) (shift.Assignment, error) {
	var assignment shift.Assignment
	var defID, defName, defCategory, defStart, defEnd *string
	var defAllOT *bool
	var defCreated, defUpdated *time.Time

	err := row.Scan(
		&assignment.ID, &assignment.EmployeeID, &assignment.WorkDate,
		&assignment.ShiftID, &assignment.IsDayOff, &assignment.CreatedAt, &assignment.UpdatedAt,
		&defID, &defName, &defCategory, &defStart, &defEnd, &defAllOT, &defCreated, &defUpdated,
	)
	if err != nil {
		return shift.Assignment{}, err
	}

	if defID != nil {
		assignment.Shift = &shift.Definition{
			ID:              *defID,
			Name:            *defName,
			Category:        shift.Category(*defCategory),
			StartTime:       *defStart,
			EndTime:         *defEnd,
			AllTimeOvertime: *defAllOT,
			CreatedAt:       *defCreated,
			UpdatedAt:       *defUpdated,
		}
	}
	return assignment, nil
}

// GetByEmployeeAndDate implements shift.AssignmentRepository.
func (s *shiftAssignmentRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (shift.Assignment, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT ` + assignmentJoinColumns + `
		FROM shift_assignments a
		LEFT JOIN shift_definitions d ON d.id = a.shift_id
		WHERE a.employee_id = $1
		  AND a.work_date = $2
	`

	assignment, err := scanAssignment(q.QueryRow(ctx, query, employeeID, workDate))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Assignment{}, shift.ErrAssignmentNotFound
		}
		return shift.Assignment{}, fmt.Errorf("failed to get shift assignment: %w", err)
	}
	return assignment, nil
}

// ListByDate implements shift.AssignmentRepository.
func (s *shiftAssignmentRepository) ListByDate(ctx context.Context, workDate time.Time) ([]shift.Assignment, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT ` + assignmentJoinColumns + `
		FROM shift_assignments a
		LEFT JOIN shift_definitions d ON d.id = a.shift_id
		WHERE a.work_date = $1
		ORDER BY a.employee_id ASC
	`

	rows, err := q.Query(ctx, query, workDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift assignments: %w", err)
	}
	defer rows.Close()

	var assignments []shift.Assignment
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift assignments: %w", err)
	}
	return assignments, nil
}

// Delete implements shift.AssignmentRepository.
func (s *shiftAssignmentRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, s.db)

	tag, err := q.Exec(ctx, `DELETE FROM shift_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrAssignmentNotFound
	}
	return nil
}
