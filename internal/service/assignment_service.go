package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/events"
	"github.com/spec-kit/ticket-dashboard/internal/repository"
)

// AssignmentService orchestrates comment creation plus the auto-assignment
// rule: an unassigned ticket binds to the first agent who replies to it.
type AssignmentService struct {
	tickets    repository.TicketRepository
	comments   repository.CommentRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AssignmentDependencies bundles repositories.
type AssignmentDependencies struct {
	TicketRepo  repository.TicketRepository
	CommentRepo repository.CommentRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		tickets:    deps.TicketRepo,
		comments:   deps.CommentRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// CreateCommentWithAssignment persists the comment first, unconditionally.
// When the actor is an agent and the ticket still shows no assignee, the
// ticket is patched to that agent. Only the first agent to reply on an
// unassigned ticket binds it; admin and requester comments never assign.
//
// The check-then-write is a read-modify-write against an unsynchronized
// backend: the ticket is re-read immediately before the patch so two agents
// racing narrows to the smallest window the dialect allows, and losing the
// race is logged. An assignment failure after the comment persisted
// surfaces as an error; the comment stays written.
func (s *AssignmentService) CreateCommentWithAssignment(ctx context.Context, input repository.CommentCreateInput, actor domain.User) (*domain.Comment, error) {
	comment, err := s.comments.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:     events.EventCommentAdded,
		TicketID: input.TicketID,
		ActorID:  actor.ID,
		Payload: events.CommentAddedPayload{
			CommentID:   comment.ID,
			BodyPreview: preview(comment.Comment),
		},
	})

	if actor.Role != domain.RoleAgent {
		return comment, nil
	}

	ticket, err := s.tickets.GetByID(ctx, input.TicketID)
	if err != nil {
		return nil, err
	}
	if ticket.Assigned() {
		if *ticket.AssignedToID != actor.ID {
			s.logger.Debug("ticket already assigned, skipping auto-assignment",
				zap.Int("ticket_id", ticket.ID),
				zap.Int("assigned_to_id", *ticket.AssignedToID),
				zap.Int("actor_id", actor.ID))
		}
		return comment, nil
	}

	assignee := actor.ID
	if _, err := s.tickets.Update(ctx, ticket.ID, repository.TicketPatch{AssignedToID: &assignee}); err != nil {
		return nil, err
	}
	s.logger.Info("ticket auto-assigned to first responding agent",
		zap.Int("ticket_id", ticket.ID),
		zap.Int("agent_id", actor.ID))
	s.publish(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload:  events.TicketAssignedPayload{AssignedToID: actor.ID},
	})

	return comment, nil
}

func (s *AssignmentService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func preview(body string) string {
	const max = 80
	if len(body) <= max {
		return body
	}
	return body[:max]
}
