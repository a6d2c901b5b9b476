package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

func stateTicket(id int, title string) domain.Ticket {
	return domain.Ticket{
		ID:          id,
		Title:       title,
		Status:      domain.TicketStatusOpen,
		Priority:    domain.TicketPriorityMedium,
		RequesterID: 7,
	}
}

func TestReduce_LoadingLifecycle(t *testing.T) {
	state := InitialState()
	assert.False(t, state.Loading)

	state = Reduce(state, BeginLoading{})
	assert.True(t, state.Loading)

	terminal := []struct {
		name   string
		action Action
	}{
		{"set_tickets", SetTickets{Tickets: []domain.Ticket{stateTicket(1, "a")}}},
		{"set_error", SetError{Message: "boom"}},
		{"add_ticket", AddTicket{Ticket: stateTicket(2, "b")}},
		{"update_ticket", UpdateTicket{Ticket: stateTicket(1, "a2")}},
		{"delete_ticket", DeleteTicket{ID: 1}},
	}
	for _, tc := range terminal {
		t.Run(tc.name, func(t *testing.T) {
			loading := Reduce(InitialState(), BeginLoading{})
			got := Reduce(loading, tc.action)
			assert.False(t, got.Loading)
			assert.NotEqual(t, ResultNone, got.LastResult.Kind)
		})
	}
}

func TestReduce_ErrorCoexistsWithLoadedData(t *testing.T) {
	state := Reduce(InitialState(), SetTickets{Tickets: []domain.Ticket{stateTicket(1, "a")}})
	state = Reduce(state, BeginLoading{})
	state = Reduce(state, SetError{Message: "refresh failed"})

	assert.Len(t, state.Tickets, 1, "a failed operation keeps previously loaded tickets")
	assert.Equal(t, ResultError, state.LastResult.Kind)
	assert.Equal(t, "refresh failed", state.LastResult.Message)
}

func TestReduce_SetTicketsClearsError(t *testing.T) {
	state := Reduce(InitialState(), SetError{Message: "boom"})
	state = Reduce(state, SetTickets{Tickets: []domain.Ticket{}})

	assert.Equal(t, ResultSuccess, state.LastResult.Kind)
	assert.Empty(t, state.LastResult.Message)
}

func TestReduce_AddTicketPrependsAndClosesForm(t *testing.T) {
	state := Reduce(InitialState(), SetTickets{Tickets: []domain.Ticket{stateTicket(1, "old")}})
	state = Reduce(state, OpenForm{})
	state = Reduce(state, AddTicket{Ticket: stateTicket(2, "new")})

	require.Len(t, state.Tickets, 2)
	assert.Equal(t, 2, state.Tickets[0].ID)
	assert.Equal(t, 1, state.Tickets[1].ID)
	assert.False(t, state.FormOpen)
	assert.Equal(t, ResultSuccess, state.LastResult.Kind)
}

func TestReduce_UpdateTicketReplacesByIDAndClearsEditing(t *testing.T) {
	original := stateTicket(1, "old title")
	state := Reduce(InitialState(), SetTickets{Tickets: []domain.Ticket{original, stateTicket(2, "other")}})
	state = Reduce(state, SetEditing{Ticket: &original})

	updated := stateTicket(1, "new title")
	state = Reduce(state, UpdateTicket{Ticket: updated})

	require.Len(t, state.Tickets, 2)
	assert.Equal(t, "new title", state.Tickets[0].Title)
	assert.Equal(t, "other", state.Tickets[1].Title)
	assert.Nil(t, state.Editing)
}

func TestReduce_UpdateUnknownIDLeavesCollection(t *testing.T) {
	state := Reduce(InitialState(), SetTickets{Tickets: []domain.Ticket{stateTicket(1, "a")}})
	state = Reduce(state, UpdateTicket{Ticket: stateTicket(99, "ghost")})

	require.Len(t, state.Tickets, 1)
	assert.Equal(t, "a", state.Tickets[0].Title)
}

func TestReduce_DeleteTicketRemovesByID(t *testing.T) {
	state := Reduce(InitialState(), SetTickets{Tickets: []domain.Ticket{stateTicket(1, "a"), stateTicket(2, "b")}})
	state = Reduce(state, DeleteTicket{ID: 1})

	require.Len(t, state.Tickets, 1)
	assert.Equal(t, 2, state.Tickets[0].ID)
}

func TestReduce_FormAndEditingMutuallyExclusive(t *testing.T) {
	editing := stateTicket(1, "a")

	state := Reduce(InitialState(), SetEditing{Ticket: &editing})
	require.NotNil(t, state.Editing)

	state = Reduce(state, OpenForm{})
	assert.True(t, state.FormOpen)
	assert.Nil(t, state.Editing, "opening the create form drops the edit target")

	state = Reduce(state, SetEditing{Ticket: &editing})
	assert.False(t, state.FormOpen, "picking an edit target closes the create form")
	require.NotNil(t, state.Editing)

	state = Reduce(state, CloseForm{})
	assert.False(t, state.FormOpen)
	assert.Nil(t, state.Editing)
}

func TestReduce_DoesNotAliasInputSlices(t *testing.T) {
	input := []domain.Ticket{stateTicket(1, "a")}
	state := Reduce(InitialState(), SetTickets{Tickets: input})

	input[0].Title = "mutated"
	assert.Equal(t, "a", state.Tickets[0].Title)

	before := state
	after := Reduce(state, DeleteTicket{ID: 1})
	assert.Len(t, before.Tickets, 1, "reducing never mutates the prior state")
	assert.Empty(t, after.Tickets)
}
