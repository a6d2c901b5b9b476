package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-dashboard/internal/api/dto"
	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/repository"
	"github.com/spec-kit/ticket-dashboard/internal/service"
	"github.com/spec-kit/ticket-dashboard/internal/session"
	"github.com/spec-kit/ticket-dashboard/internal/store"
	"github.com/spec-kit/ticket-dashboard/pkg/util/errorutil"
)

// TicketsHandler serves the dashboard's ticket endpoints.
type TicketsHandler struct {
	store     *store.Store
	session   *session.Session
	directory *service.Directory
}

// NewTicketsHandler constructs the handler.
func NewTicketsHandler(st *store.Store, sess *session.Session, directory *service.Directory) *TicketsHandler {
	return &TicketsHandler{store: st, session: sess, directory: directory}
}

// ListTickets GET /tickets?filter=<name>. Refreshes the collection, then
// applies the visibility filter for the session user.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	if err := h.store.LoadTickets(c.UserContext()); err != nil {
		return err
	}

	current := h.session.Current()
	filter := c.Query("filter", service.FilterAll)
	snapshot := h.store.Snapshot()
	visible := service.FilterTickets(snapshot.Tickets, current, filter)

	views := make([]dto.TicketView, 0, len(visible))
	for _, ticket := range visible {
		views = append(views, h.ticketView(ticket))
	}
	return c.JSON(dto.TicketListResponse{
		Data:   views,
		Filter: filter,
		Counts: service.CountByFilter(snapshot.Tickets, current),
	})
}

// GetTicket GET /tickets/:id. Requesters may only fetch their own tickets.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	current := h.session.Current()
	if current == nil {
		return errorutil.NewForbidden("no current user")
	}

	snapshot := h.store.Snapshot()
	for _, ticket := range snapshot.Tickets {
		if ticket.ID == id {
			if len(service.FilterTickets([]domain.Ticket{ticket}, current, service.FilterAll)) == 0 {
				return errorutil.NewNotFound("ticket", map[string]any{"ticket_id": id})
			}
			return c.JSON(fiber.Map{"data": h.ticketView(ticket)})
		}
	}
	return errorutil.NewNotFound("ticket", map[string]any{"ticket_id": id})
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	input := repository.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		RequesterID: req.RequesterID,
		CategoryID:  req.CategoryID,
	}
	if input.RequesterID == 0 {
		if current := h.session.Current(); current != nil {
			input.RequesterID = current.ID
		}
	}

	ticket, err := h.store.AddTicket(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": h.ticketView(*ticket)})
}

// UpdateTicket PATCH /tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	patch := repository.TicketPatch{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		AssignedToID: req.AssignedToID,
	}
	ticket, err := h.store.EditTicket(c.UserContext(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.ticketView(*ticket)})
}

// DeleteTicket DELETE /tickets/:id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	if err := h.store.RemoveTicket(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *TicketsHandler) ticketView(ticket domain.Ticket) dto.TicketView {
	view := dto.TicketView{
		Ticket:    ticket,
		Requester: h.directory.RoleInfo(ticket.RequesterID),
	}
	if ticket.AssignedToID != nil {
		info := h.directory.RoleInfo(*ticket.AssignedToID)
		view.Assignee = &info
	}
	return view
}

func ticketID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, errorutil.NewValidationError("invalid ticket id", nil)
	}
	return id, nil
}
