package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/auth"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/employee"
	"github.com/shiftwise-hq/worktime-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type ServiceImpl struct {
	employeeRepo employee.Repository
	jwtService   jwt.Service
}

func NewService(employeeRepo employee.Repository, jwtService jwt.Service) auth.Service {
	return &ServiceImpl{
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
	}
}

// Login implements auth.Service.
func (a *ServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := a.employeeRepo.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	if !emp.IsActive {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(emp)
}

// Refresh implements auth.Service. The presented refresh token is rotated:
// validated, revoked, and replaced by a fresh pair.
func (a *ServiceImpl) Refresh(ctx context.Context, req auth.RefreshRequest) (auth.TokenResponse, error) {
	employeeID, err := a.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	emp, err := a.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	a.jwtService.RevokeToken(req.RefreshToken)

	return a.issueTokens(emp)
}

// Logout implements auth.Service.
func (a *ServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	a.jwtService.RevokeToken(refreshToken)
	return nil
}

func (a *ServiceImpl) issueTokens(emp employee.Employee) (auth.TokenResponse, error) {
	accessToken, expiresAt, err := a.jwtService.GenerateAccessToken(emp.ID, emp.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, _, err := a.jwtService.GenerateRefreshToken(emp.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		EmployeeID:   emp.ID,
		FullName:     emp.FullName,
		Role:         string(emp.Role),
	}, nil
}
