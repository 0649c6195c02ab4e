package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/worktime-backend-go/internal/pkg/database"
)

type shiftDefinitionRepository struct {
	db *database.DB
}

func NewShiftDefinitionRepository(db *database.DB) shift.DefinitionRepository {
	return &shiftDefinitionRepository{db: db}
}

// Create implements shift.DefinitionRepository.
func (s *shiftDefinitionRepository) Create(ctx context.Context, def shift.Definition) (shift.Definition, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO shift_definitions (
			id, name, category, start_time, end_time, all_time_overtime
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		def.ID,
		def.Name,
		string(def.Category),
		def.StartTime,
		def.EndTime,
		def.AllTimeOvertime,
	).Scan(&def.CreatedAt, &def.UpdatedAt)

	if err != nil {
		return shift.Definition{}, fmt.Errorf("failed to create shift definition: %w", err)
	}
	return def, nil
}

// GetByID implements shift.DefinitionRepository.
func (s *shiftDefinitionRepository) GetByID(ctx context.Context, id string) (shift.Definition, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, name, category, start_time, end_time, all_time_overtime, created_at, updated_at
		FROM shift_definitions
		WHERE id = $1
	`

	var def shift.Definition
	err := q.QueryRow(ctx, query, id).Scan(
		&def.ID, &def.Name, &def.Category, &def.StartTime, &def.EndTime,
		&def.AllTimeOvertime, &def.CreatedAt, &def.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Definition{}, shift.ErrShiftNotFound
		}
		return shift.Definition{}, fmt.Errorf("failed to get shift definition: %w", err)
	}
	return def, nil
}

// List implements shift.DefinitionRepository.
func (s *shiftDefinitionRepository) List(ctx context.Context) ([]shift.Definition, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, name, category, start_time, end_time, all_time_overtime, created_at, updated_at
		FROM shift_definitions
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift definitions: %w", err)
	}
	defer rows.Close()

	var defs []shift.Definition
	for rows.Next() {
		var def shift.Definition
		err := rows.Scan(
			&def.ID, &def.Name, &def.Category, &def.StartTime, &def.EndTime,
			&def.AllTimeOvertime, &def.CreatedAt, &def.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift definition: %w", err)
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift definitions: %w", err)
	}
	return defs, nil
}

// Update implements shift.DefinitionRepository.
func (s *shiftDefinitionRepository) Update(ctx context.Context, def shift.Definition) error {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE shift_definitions
		SET name = $2,
			category = $3,
			start_time = $4,
			end_time = $5,
			all_time_overtime = $6,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		def.ID, def.Name, string(def.Category), def.StartTime, def.EndTime, def.AllTimeOvertime,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift definition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}

// Delete implements shift.DefinitionRepository.
func (s *shiftDefinitionRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, s.db)

	tag, err := q.Exec(ctx, `DELETE FROM shift_definitions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift definition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}
