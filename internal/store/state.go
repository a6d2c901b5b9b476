// Package store holds the dashboard's in-memory ticket collection and UI
// transaction flags, mutated only through tagged actions folded over an
// immutable state record.
package store

import "github.com/spec-kit/ticket-dashboard/internal/domain"

// ResultKind discriminates the outcome slot of the last operation. Pairing
// one kind with one message keeps "loading ended" and "how it ended" from
// drifting apart as two independently-settable flags.
type ResultKind string

const (
	ResultNone    ResultKind = "none"
	ResultSuccess ResultKind = "success"
	ResultError   ResultKind = "error"
)

// Result is the discriminated outcome of the most recent operation.
// Message is populated only for ResultError.
type Result struct {
	Kind    ResultKind
	Message string
}

// State is the dashboard state record. Values returned by Reduce share no
// mutable structure with their inputs.
type State struct {
	Tickets []domain.Ticket
	Loading bool
	// LastResult survives across loads: a failed operation does not wipe
	// previously loaded tickets, and a populated error can coexist with data.
	LastResult Result
	FormOpen   bool
	Editing    *domain.Ticket
}

// InitialState is the empty dashboard.
func InitialState() State {
	return State{Tickets: []domain.Ticket{}, LastResult: Result{Kind: ResultNone}}
}

// Action is the sealed tagged union of state transitions.
type Action interface {
	isAction()
}

// BeginLoading marks the start of one operation's loading transaction.
type BeginLoading struct{}

// SetTickets replaces the collection; ends loading, clears any error.
type SetTickets struct{ Tickets []domain.Ticket }

// SetError records a failure message; ends loading, keeps loaded data.
type SetError struct{ Message string }

// AddTicket prepends a created ticket; closes the form, ends loading.
type AddTicket struct{ Ticket domain.Ticket }

// UpdateTicket replaces the matching ticket by id; clears the edit target.
type UpdateTicket struct{ Ticket domain.Ticket }

// DeleteTicket removes the matching ticket by id.
type DeleteTicket struct{ ID int }

// OpenForm shows the create form; mutually exclusive with editing.
type OpenForm struct{}

// CloseForm hides the create form and clears the edit target.
type CloseForm struct{}

// SetEditing selects the ticket being edited; closes the create form.
type SetEditing struct{ Ticket *domain.Ticket }

func (BeginLoading) isAction() {}
func (SetTickets) isAction()   {}
func (SetError) isAction()     {}
func (AddTicket) isAction()    {}
func (UpdateTicket) isAction() {}
func (DeleteTicket) isAction() {}
func (OpenForm) isAction()     {}
func (CloseForm) isAction()    {}
func (SetEditing) isAction()   {}

// Reduce folds one action over the state. Loading is true only between
// BeginLoading and a terminal action (SetTickets, SetError, AddTicket,
// UpdateTicket, DeleteTicket); no path leaves it stuck.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case BeginLoading:
		state.Loading = true
		return state

	case SetTickets:
		state.Tickets = copyTickets(a.Tickets)
		state.Loading = false
		state.LastResult = Result{Kind: ResultSuccess}
		return state

	case SetError:
		state.Loading = false
		state.LastResult = Result{Kind: ResultError, Message: a.Message}
		return state

	case AddTicket:
		tickets := make([]domain.Ticket, 0, len(state.Tickets)+1)
		tickets = append(tickets, a.Ticket)
		tickets = append(tickets, state.Tickets...)
		state.Tickets = tickets
		state.FormOpen = false
		state.Loading = false
		state.LastResult = Result{Kind: ResultSuccess}
		return state

	case UpdateTicket:
		tickets := copyTickets(state.Tickets)
		for i := range tickets {
			if tickets[i].ID == a.Ticket.ID {
				tickets[i] = a.Ticket
			}
		}
		state.Tickets = tickets
		state.Editing = nil
		state.Loading = false
		state.LastResult = Result{Kind: ResultSuccess}
		return state

	case DeleteTicket:
		tickets := make([]domain.Ticket, 0, len(state.Tickets))
		for _, ticket := range state.Tickets {
			if ticket.ID != a.ID {
				tickets = append(tickets, ticket)
			}
		}
		state.Tickets = tickets
		state.Loading = false
		state.LastResult = Result{Kind: ResultSuccess}
		return state

	case OpenForm:
		state.FormOpen = true
		state.Editing = nil
		return state

	case CloseForm:
		state.FormOpen = false
		state.Editing = nil
		return state

	case SetEditing:
		state.Editing = a.Ticket
		state.FormOpen = false
		return state
	}
	return state
}

func copyTickets(tickets []domain.Ticket) []domain.Ticket {
	out := make([]domain.Ticket, len(tickets))
	copy(out, tickets)
	return out
}
