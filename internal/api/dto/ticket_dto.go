package dto

import (
	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/service"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      domain.TicketStatus   `json:"status"`
	Priority    domain.TicketPriority `json:"priority"`
	RequesterID int                   `json:"requester_id"`
	CategoryID  *int                  `json:"category_id"`
}

// UpdateTicketRequest is a partial update; nil fields stay untouched.
type UpdateTicketRequest struct {
	Title        *string                `json:"title"`
	Description  *string                `json:"description"`
	Status       *domain.TicketStatus   `json:"status"`
	Priority     *domain.TicketPriority `json:"priority"`
	AssignedToID *int                   `json:"assigned_to_id"`
}

// TicketView decorates a ticket with display metadata for its requester and
// assignee.
type TicketView struct {
	domain.Ticket
	Requester service.RoleInfo  `json:"requester"`
	Assignee  *service.RoleInfo `json:"assignee,omitempty"`
}

// TicketListResponse is the filtered dashboard view.
type TicketListResponse struct {
	Data   []TicketView   `json:"data"`
	Filter string         `json:"filter"`
	Counts map[string]int `json:"counts"`
}
