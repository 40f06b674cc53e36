package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
)

// CreateProjectRequest defines data for creating a project.
type CreateProjectRequest struct {
	ClientID    string               `json:"clientID" binding:"required"`
	Name        string               `json:"name" binding:"required"`
	Code        string               `json:"code"`
	BillingType domain.BillingType   `json:"billingType" binding:"required,oneof=hourly fixed"`
	HourlyRate  decimal.Decimal      `json:"hourlyRate"`
	FixedAmount decimal.Decimal      `json:"fixedAmount"`
	Status      domain.ProjectStatus `json:"status" binding:"omitempty,oneof=active completed on-hold"`
}

// UpdateProjectRequest defines data for updating a project. Nil fields are untouched.
type UpdateProjectRequest struct {
	Name        *string               `json:"name"`
	Code        *string               `json:"code"`
	BillingType *domain.BillingType   `json:"billingType" binding:"omitempty,oneof=hourly fixed"`
	HourlyRate  *decimal.Decimal      `json:"hourlyRate"`
	FixedAmount *decimal.Decimal      `json:"fixedAmount"`
	Status      *domain.ProjectStatus `json:"status" binding:"omitempty,oneof=active completed on-hold"`
}

// ProjectResponse defines data returned for a project.
type ProjectResponse struct {
	ProjectID   string               `json:"projectID"`
	WorkspaceID string               `json:"workspaceID"`
	ClientID    string               `json:"clientID"`
	Name        string               `json:"name"`
	Code        string               `json:"code"`
	BillingType domain.BillingType   `json:"billingType"`
	HourlyRate  decimal.Decimal      `json:"hourlyRate"`
	FixedAmount decimal.Decimal      `json:"fixedAmount"`
	Status      domain.ProjectStatus `json:"status"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// ToProjectResponse converts domain.Project to DTO.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:   p.ProjectID,
		WorkspaceID: p.WorkspaceID,
		ClientID:    p.ClientID,
		Name:        p.Name,
		Code:        p.Code,
		BillingType: p.BillingType,
		HourlyRate:  p.HourlyRate,
		FixedAmount: p.FixedAmount,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
	}
}

// ToListProjectsResponse converts a slice of domain.Project to DTOs.
func ToListProjectsResponse(ps []domain.Project) []ProjectResponse {
	list := make([]ProjectResponse, len(ps))
	for i, p := range ps {
		list[i] = ToProjectResponse(&p)
	}
	return list
}

// MarkCreditedRequest defines data for manually crediting a fixed project.
type MarkCreditedRequest struct {
	ProjectID    string           `json:"projectID" binding:"required"`
	CreditedDate time.Time        `json:"creditedDate" binding:"required" time_format:"2006-01-02"`
	Amount       *decimal.Decimal `json:"amount"`
	Notes        string           `json:"notes"`
}
