package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/shift"
)

// Service manages shift definitions and per-date assignments.
type Service interface {
	CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error)
	ListShifts(ctx context.Context) ([]shift.ShiftResponse, error)
	UpdateShift(ctx context.Context, id string, req shift.CreateShiftRequest) (shift.ShiftResponse, error)
	DeleteShift(ctx context.Context, id string) error
	AssignShift(ctx context.Context, req shift.AssignShiftRequest) (shift.AssignmentResponse, error)
	GetAssignment(ctx context.Context, employeeID string, workDate time.Time) (*shift.Assignment, error)
	ListAssignments(ctx context.Context, workDate time.Time) ([]shift.AssignmentResponse, error)
	UnassignShift(ctx context.Context, assignmentID string) error
}

type ServiceImpl struct {
	definitionRepo shift.DefinitionRepository
	assignmentRepo shift.AssignmentRepository
}

func NewService(definitionRepo shift.DefinitionRepository, assignmentRepo shift.AssignmentRepository) Service {
	return &ServiceImpl{
		definitionRepo: definitionRepo,
		assignmentRepo: assignmentRepo,
	}
}

// CreateShift implements Service.
func (s *ServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	def := shift.Definition{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Category:        shift.Category(req.Category),
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		AllTimeOvertime: req.AllTimeOvertime,
	}

	created, err := s.definitionRepo.Create(ctx, def)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift definition: %w", err)
	}

	return MapShiftToResponse(created), nil
}

// ListShifts implements Service.
func (s *ServiceImpl) ListShifts(ctx context.Context) ([]shift.ShiftResponse, error) {
	defs, err := s.definitionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift definitions: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(defs))
	for _, def := range defs {
		responses = append(responses, MapShiftToResponse(def))
	}
	return responses, nil
}

// UpdateShift implements Service. Changing start/end or category does not
// touch stored attendance; the recalculation pass re-derives affected records.
func (s *ServiceImpl) UpdateShift(ctx context.Context, id string, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	existing, err := s.definitionRepo.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	existing.Name = req.Name
	existing.Category = shift.Category(req.Category)
	existing.StartTime = req.StartTime
	existing.EndTime = req.EndTime
	existing.AllTimeOvertime = req.AllTimeOvertime

	if err := s.definitionRepo.Update(ctx, existing); err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to update shift definition: %w", err)
	}

	updated, err := s.definitionRepo.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return MapShiftToResponse(updated), nil
}

// DeleteShift implements Service.
func (s *ServiceImpl) DeleteShift(ctx context.Context, id string) error {
	if err := s.definitionRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete shift definition: %w", err)
	}
	return nil
}

// AssignShift implements Service. One assignment per (employee, work_date);
// re-assigning replaces the previous one.
func (s *ServiceImpl) AssignShift(ctx context.Context, req shift.AssignShiftRequest) (shift.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.AssignmentResponse{}, err
	}

	workDate, _ := time.Parse("2006-01-02", req.WorkDate)

	if req.ShiftID != nil {
		if _, err := s.definitionRepo.GetByID(ctx, *req.ShiftID); err != nil {
			return shift.AssignmentResponse{}, err
		}
	}

	assignment := shift.Assignment{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		WorkDate:   workDate,
		ShiftID:    req.ShiftID,
		IsDayOff:   req.IsDayOff,
	}

	saved, err := s.assignmentRepo.Upsert(ctx, assignment)
	if err != nil {
		return shift.AssignmentResponse{}, fmt.Errorf("failed to upsert shift assignment: %w", err)
	}

	resp := shift.AssignmentResponse{
		ID:         saved.ID,
		EmployeeID: saved.EmployeeID,
		WorkDate:   saved.WorkDate.Format("2006-01-02"),
		IsDayOff:   saved.IsDayOff,
	}
	if saved.Shift != nil {
		shiftResp := MapShiftToResponse(*saved.Shift)
		resp.Shift = &shiftResp
	}
	return resp, nil
}

// GetAssignment implements Service. Returns nil (not an error) when the
// employee simply has no assignment for the date.
func (s *ServiceImpl) GetAssignment(ctx context.Context, employeeID string, workDate time.Time) (*shift.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByEmployeeAndDate(ctx, employeeID, workDate)
	if err != nil {
		if errors.Is(err, shift.ErrAssignmentNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shift assignment: %w", err)
	}
	return &assignment, nil
}

// ListAssignments implements Service. Admin view of one day's roster.
func (s *ServiceImpl) ListAssignments(ctx context.Context, workDate time.Time) ([]shift.AssignmentResponse, error) {
	assignments, err := s.assignmentRepo.ListByDate(ctx, workDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift assignments: %w", err)
	}

	responses := make([]shift.AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		resp := shift.AssignmentResponse{
			ID:         assignment.ID,
			EmployeeID: assignment.EmployeeID,
			WorkDate:   assignment.WorkDate.Format("2006-01-02"),
			IsDayOff:   assignment.IsDayOff,
		}
		if assignment.Shift != nil {
			shiftResp := MapShiftToResponse(*assignment.Shift)
			resp.Shift = &shiftResp
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// UnassignShift implements Service.
func (s *ServiceImpl) UnassignShift(ctx context.Context, assignmentID string) error {
	if err := s.assignmentRepo.Delete(ctx, assignmentID); err != nil {
		return fmt.Errorf("failed to delete shift assignment: %w", err)
	}
	return nil
}

// MapShiftToResponse converts a Definition entity to ShiftResponse
func MapShiftToResponse(def shift.Definition) shift.ShiftResponse {
	return shift.ShiftResponse{
		ID:              def.ID,
		Name:            def.Name,
		Category:        string(def.Category),
		StartTime:       def.StartTime,
		EndTime:         def.EndTime,
		AllTimeOvertime: def.AllTimeOvertime,
		CreatedAt:       def.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:       def.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
