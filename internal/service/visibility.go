package service

import "github.com/spec-kit/ticket-dashboard/internal/domain"

// Named filters understood by the visibility logic. Any other name means an
// exact status match for agents and admins, and no extra narrowing for
// requesters.
const (
	FilterAll        = "all"
	FilterOpen       = "open"
	FilterClosed     = "closed"
	FilterMyOpen     = "my_open"
	FilterMyClosed   = "my_closed"
	FilterMyAssigned = "my_assigned"
)

// FilterTickets computes the subset of tickets a user may see under a named
// filter. It is pure and order-preserving. No current user means no
// visibility at all: the filter fails closed, never open.
//
// Requesters are hard-restricted to tickets they created before any named
// filter applies. Agents and admins see all tickets, and their "open" view
// deliberately folds in_progress into open.
func FilterTickets(tickets []domain.Ticket, current *domain.User, filter string) []domain.Ticket {
	if current == nil {
		return []domain.Ticket{}
	}

	out := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if visible(ticket, *current, filter) {
			out = append(out, ticket)
		}
	}
	return out
}

func visible(ticket domain.Ticket, user domain.User, filter string) bool {
	switch user.Role {
	case domain.RoleRequester:
		if ticket.RequesterID != user.ID {
			return false
		}
		switch filter {
		case FilterMyOpen:
			return ticket.Status == domain.TicketStatusOpen || ticket.Status == domain.TicketStatusInProgress
		case FilterMyClosed:
			return ticket.Status == domain.TicketStatusClosed
		default:
			return true
		}

	case domain.RoleAgent:
		switch filter {
		case FilterAll:
			return true
		case FilterOpen:
			return ticket.Status == domain.TicketStatusOpen || ticket.Status == domain.TicketStatusInProgress
		case FilterMyAssigned:
			return ticket.AssignedToID != nil && *ticket.AssignedToID == user.ID &&
				ticket.Status != domain.TicketStatusClosed
		case FilterClosed:
			return ticket.Status == domain.TicketStatusClosed
		default:
			return ticket.Status == domain.TicketStatus(filter)
		}

	case domain.RoleAdmin:
		switch filter {
		case FilterAll:
			return true
		case FilterOpen:
			return ticket.Status == domain.TicketStatusOpen || ticket.Status == domain.TicketStatusInProgress
		default:
			return ticket.Status == domain.TicketStatus(filter)
		}
	}
	return false
}

// FilterNames lists the named views offered to a role, in display order.
func FilterNames(role domain.Role) []string {
	switch role {
	case domain.RoleRequester:
		return []string{FilterAll, FilterMyOpen, FilterMyClosed}
	case domain.RoleAgent:
		return []string{FilterAll, FilterOpen, FilterMyAssigned, FilterClosed}
	case domain.RoleAdmin:
		return []string{FilterAll, FilterOpen, FilterClosed}
	}
	return nil
}

// CountByFilter reports how many tickets each of the role's named views
// would show, for the dashboard's filter badges.
func CountByFilter(tickets []domain.Ticket, current *domain.User) map[string]int {
	counts := map[string]int{}
	if current == nil {
		return counts
	}
	for _, name := range FilterNames(current.Role) {
		counts[name] = len(FilterTickets(tickets, current, name))
	}
	return counts
}
