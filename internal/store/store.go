package store

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/events"
	"github.com/spec-kit/ticket-dashboard/internal/repository"
	"github.com/spec-kit/ticket-dashboard/internal/service"
	"github.com/spec-kit/ticket-dashboard/pkg/util/errorutil"
)

// Store drives the dashboard's asynchronous operations and folds their
// outcomes into the state record. Each user-initiated action runs as one
// serialized loading transaction; repository failures land in the error
// slot and never propagate as panics past this boundary (callers still get
// the error value for their own surfacing).
type Store struct {
	tickets    repository.TicketRepository
	assignment *service.AssignmentService
	dispatcher events.Dispatcher
	logger     *zap.Logger

	// opMu serializes operations; stateMu guards the fold.
	opMu    sync.Mutex
	stateMu sync.RWMutex
	state   State
}

// Dependencies bundles the store's collaborators.
type Dependencies struct {
	TicketRepo repository.TicketRepository
	Assignment *service.AssignmentService
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// New creates a store with empty initial state.
func New(deps Dependencies) *Store {
	return &Store{
		tickets:    deps.TicketRepo,
		assignment: deps.Assignment,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		state:      InitialState(),
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	state := s.state
	state.Tickets = copyTickets(s.state.Tickets)
	return state
}

func (s *Store) dispatch(action Action) {
	s.stateMu.Lock()
	s.state = Reduce(s.state, action)
	s.stateMu.Unlock()
}

// LoadTickets refreshes the collection from the backend.
func (s *Store) LoadTickets(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.dispatch(BeginLoading{})
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return s.fail(err)
	}
	s.dispatch(SetTickets{Tickets: tickets})
	return nil
}

// AddTicket validates and creates a ticket, prepending it on success.
func (s *Store) AddTicket(ctx context.Context, input repository.TicketCreateInput) (*domain.Ticket, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.dispatch(BeginLoading{})
	ticket, err := s.tickets.Create(ctx, input)
	if err != nil {
		return nil, s.fail(err)
	}
	s.dispatch(AddTicket{Ticket: *ticket})
	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  ticket.RequesterID,
		Payload:  events.TicketCreatedPayload{Title: ticket.Title, Priority: ticket.Priority},
	})
	return ticket, nil
}

// EditTicket applies a partial update and replaces the ticket in place.
func (s *Store) EditTicket(ctx context.Context, id int, patch repository.TicketPatch) (*domain.Ticket, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.dispatch(BeginLoading{})
	ticket, err := s.tickets.Update(ctx, id, patch)
	if err != nil {
		return nil, s.fail(err)
	}
	s.dispatch(UpdateTicket{Ticket: *ticket})
	return ticket, nil
}

// RemoveTicket deletes the ticket and drops it from the collection.
func (s *Store) RemoveTicket(ctx context.Context, id int) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.dispatch(BeginLoading{})
	if err := s.tickets.Remove(ctx, id); err != nil {
		return s.fail(err)
	}
	s.dispatch(DeleteTicket{ID: id})
	s.publish(ctx, events.Event{Type: events.EventTicketDeleted, TicketID: id})
	return nil
}

// SubmitComment runs the comment-plus-assignment workflow. When the
// workflow assigned the ticket, the refreshed ticket replaces the stale
// collection entry so the dashboard reflects the new assignee.
func (s *Store) SubmitComment(ctx context.Context, input repository.CommentCreateInput, actor domain.User) (*domain.Comment, error) {
	if strings.TrimSpace(input.Comment) == "" {
		return nil, errorutil.NewValidationError("comment text is required", nil)
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.dispatch(BeginLoading{})
	comment, err := s.assignment.CreateCommentWithAssignment(ctx, input, actor)
	if err != nil {
		return nil, s.fail(err)
	}

	if actor.Role == domain.RoleAgent {
		if ticket, err := s.tickets.GetByID(ctx, input.TicketID); err == nil {
			s.dispatch(UpdateTicket{Ticket: *ticket})
			return comment, nil
		}
	}
	s.dispatch(SetTickets{Tickets: s.Snapshot().Tickets})
	return comment, nil
}

// OpenForm shows the create form.
func (s *Store) OpenForm() { s.dispatch(OpenForm{}) }

// CloseForm hides the create form.
func (s *Store) CloseForm() { s.dispatch(CloseForm{}) }

// SetEditing selects the ticket under edit.
func (s *Store) SetEditing(ticket *domain.Ticket) { s.dispatch(SetEditing{Ticket: ticket}) }

// ClearError dismisses the error banner.
func (s *Store) ClearError() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if s.state.LastResult.Kind == ResultError {
		s.state.LastResult = Result{Kind: ResultNone}
	}
}

func (s *Store) fail(err error) error {
	s.logger.Warn("store operation failed", zap.Error(err))
	s.dispatch(SetError{Message: err.Error()})
	return err
}

func (s *Store) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func validateCreate(input repository.TicketCreateInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return errorutil.NewValidationError("title is required", nil)
	}
	if len(strings.TrimSpace(input.Description)) < 10 {
		return errorutil.NewValidationError("description must be at least 10 characters", nil)
	}
	if input.Status != "" && !domain.ValidStatus(input.Status) {
		return errorutil.NewValidationError("unknown status", map[string]any{"status": input.Status})
	}
	if input.Priority != "" && !domain.ValidPriority(input.Priority) {
		return errorutil.NewValidationError("unknown priority", map[string]any{"priority": input.Priority})
	}
	if input.RequesterID == 0 {
		return errorutil.NewValidationError("requester_id is required", nil)
	}
	return nil
}

func validatePatch(patch repository.TicketPatch) error {
	if patch.Status != nil && !domain.ValidStatus(*patch.Status) {
		return errorutil.NewValidationError("unknown status", map[string]any{"status": *patch.Status})
	}
	if patch.Priority != nil && !domain.ValidPriority(*patch.Priority) {
		return errorutil.NewValidationError("unknown priority", map[string]any{"priority": *patch.Priority})
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return errorutil.NewValidationError("title cannot be empty", nil)
	}
	return nil
}
