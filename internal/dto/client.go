package dto

import (
	"time"

	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
)

// CreateClientRequest defines data for creating a client.
type CreateClientRequest struct {
	Name         string              `json:"name" binding:"required"`
	ContactName  string              `json:"contactName"`
	ContactEmail string              `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone string              `json:"contactPhone"`
	Address      string              `json:"address"`
	Status       domain.ClientStatus `json:"status" binding:"omitempty,oneof=active completed prospect"`
}

// UpdateClientRequest defines data for updating a client. Nil fields are untouched.
type UpdateClientRequest struct {
	Name         *string              `json:"name"`
	ContactName  *string              `json:"contactName"`
	ContactEmail *string              `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone *string              `json:"contactPhone"`
	Address      *string              `json:"address"`
	Status       *domain.ClientStatus `json:"status" binding:"omitempty,oneof=active completed prospect"`
}

// ClientResponse defines data returned for a client.
type ClientResponse struct {
	ClientID     string              `json:"clientID"`
	WorkspaceID  string              `json:"workspaceID"`
	Name         string              `json:"name"`
	ContactName  string              `json:"contactName"`
	ContactEmail string              `json:"contactEmail"`
	ContactPhone string              `json:"contactPhone"`
	Address      string              `json:"address"`
	Status       domain.ClientStatus `json:"status"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// ToClientResponse converts domain.Client to DTO.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:     c.ClientID,
		WorkspaceID:  c.WorkspaceID,
		Name:         c.Name,
		ContactName:  c.ContactName,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		Address:      c.Address,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
	}
}

// ToListClientsResponse converts a slice of domain.Client to DTOs.
func ToListClientsResponse(cs []domain.Client) []ClientResponse {
	list := make([]ClientResponse, len(cs))
	for i, c := range cs {
		list[i] = ToClientResponse(&c)
	}
	return list
}
