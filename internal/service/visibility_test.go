package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

func ticketFixture(id, requesterID int, status domain.TicketStatus, assignedTo *int) domain.Ticket {
	return domain.Ticket{
		ID:           id,
		Title:        "ticket",
		Status:       status,
		Priority:     domain.TicketPriorityMedium,
		RequesterID:  requesterID,
		AssignedToID: assignedTo,
	}
}

func intPtr(v int) *int { return &v }

func TestFilterTickets_NoCurrentUserSeesNothing(t *testing.T) {
	tickets := []domain.Ticket{ticketFixture(1, 7, domain.TicketStatusOpen, nil)}

	got := FilterTickets(tickets, nil, FilterAll)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterTickets_RequesterSeesOnlyOwnTickets(t *testing.T) {
	requester := &domain.User{ID: 7, Role: domain.RoleRequester}
	tickets := []domain.Ticket{
		ticketFixture(1, 7, domain.TicketStatusOpen, nil),
		ticketFixture(2, 7, domain.TicketStatusClosed, nil),
		ticketFixture(3, 9, domain.TicketStatusOpen, nil),
	}

	got := FilterTickets(tickets, requester, FilterAll)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[1].ID)
}

func TestFilterTickets_RequesterNamedFilters(t *testing.T) {
	requester := &domain.User{ID: 7, Role: domain.RoleRequester}
	tickets := []domain.Ticket{
		ticketFixture(1, 7, domain.TicketStatusOpen, nil),
		ticketFixture(2, 7, domain.TicketStatusInProgress, nil),
		ticketFixture(3, 7, domain.TicketStatusClosed, nil),
		ticketFixture(4, 9, domain.TicketStatusOpen, nil),
	}

	tests := []struct {
		filter string
		want   []int
	}{
		{FilterMyOpen, []int{1, 2}},
		{FilterMyClosed, []int{3}},
		{"bogus", []int{1, 2, 3}},
	}
	for _, tc := range tests {
		t.Run(tc.filter, func(t *testing.T) {
			got := FilterTickets(tickets, requester, tc.filter)
			assert.Equal(t, tc.want, ticketIDs(got))
		})
	}
}

func TestFilterTickets_AgentViews(t *testing.T) {
	agent := &domain.User{ID: 3, Role: domain.RoleAgent}
	tickets := []domain.Ticket{
		ticketFixture(1, 7, domain.TicketStatusOpen, intPtr(3)),
		ticketFixture(2, 7, domain.TicketStatusClosed, intPtr(3)),
		ticketFixture(3, 9, domain.TicketStatusOpen, intPtr(4)),
		ticketFixture(4, 9, domain.TicketStatusInProgress, nil),
	}

	tests := []struct {
		filter string
		want   []int
	}{
		{FilterAll, []int{1, 2, 3, 4}},
		{FilterOpen, []int{1, 3, 4}},
		{FilterMyAssigned, []int{1}},
		{FilterClosed, []int{2}},
		{"in_progress", []int{4}},
	}
	for _, tc := range tests {
		t.Run(tc.filter, func(t *testing.T) {
			got := FilterTickets(tickets, agent, tc.filter)
			assert.Equal(t, tc.want, ticketIDs(got))
		})
	}
}

func TestFilterTickets_AdminOpenFoldsInProgress(t *testing.T) {
	admin := &domain.User{ID: 1, Role: domain.RoleAdmin}
	tickets := []domain.Ticket{
		ticketFixture(1, 7, domain.TicketStatusOpen, nil),
		ticketFixture(2, 7, domain.TicketStatusInProgress, nil),
		ticketFixture(3, 7, domain.TicketStatusClosed, nil),
	}

	assert.Equal(t, []int{1, 2}, ticketIDs(FilterTickets(tickets, admin, FilterOpen)))
	assert.Equal(t, []int{3}, ticketIDs(FilterTickets(tickets, admin, FilterClosed)))
	assert.Equal(t, []int{1, 2, 3}, ticketIDs(FilterTickets(tickets, admin, FilterAll)))
}

func TestFilterNames(t *testing.T) {
	assert.Equal(t, []string{FilterAll, FilterMyOpen, FilterMyClosed}, FilterNames(domain.RoleRequester))
	assert.Equal(t, []string{FilterAll, FilterOpen, FilterMyAssigned, FilterClosed}, FilterNames(domain.RoleAgent))
	assert.Equal(t, []string{FilterAll, FilterOpen, FilterClosed}, FilterNames(domain.RoleAdmin))
}

func TestCountByFilter(t *testing.T) {
	agent := &domain.User{ID: 3, Role: domain.RoleAgent}
	tickets := []domain.Ticket{
		ticketFixture(1, 7, domain.TicketStatusOpen, intPtr(3)),
		ticketFixture(2, 7, domain.TicketStatusClosed, nil),
	}

	counts := CountByFilter(tickets, agent)
	assert.Equal(t, map[string]int{
		FilterAll:        2,
		FilterOpen:       1,
		FilterMyAssigned: 1,
		FilterClosed:     1,
	}, counts)

	assert.Empty(t, CountByFilter(tickets, nil))
}

func ticketIDs(tickets []domain.Ticket) []int {
	ids := make([]int, 0, len(tickets))
	for _, ticket := range tickets {
		ids = append(ids, ticket.ID)
	}
	return ids
}
