package service

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/events"
	"github.com/spec-kit/ticket-dashboard/internal/repository"
	"github.com/spec-kit/ticket-dashboard/pkg/util/errorutil"
)

// fakeTicketRepo is an in-memory TicketRepository backed by a map, with
// per-call error hooks for failure injection.
type fakeTicketRepo struct {
	mu        sync.Mutex
	tickets   map[int]domain.Ticket
	nextID    int
	updateErr error
	getErr    error
	updates   []repository.TicketPatch
}

func newFakeTicketRepo(tickets ...domain.Ticket) *fakeTicketRepo {
	repo := &fakeTicketRepo{tickets: map[int]domain.Ticket{}, nextID: 1}
	for _, ticket := range tickets {
		repo.tickets[ticket.ID] = ticket
		if ticket.ID >= repo.nextID {
			repo.nextID = ticket.ID + 1
		}
	}
	return repo
}

func (f *fakeTicketRepo) List(ctx context.Context) ([]domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Ticket, 0, len(f.tickets))
	for _, ticket := range f.tickets {
		out = append(out, ticket)
	}
	return out, nil
}

func (f *fakeTicketRepo) GetByID(ctx context.Context, id int) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, errorutil.NewAPIError(404, "record not found")
	}
	return &ticket, nil
}

func (f *fakeTicketRepo) Create(ctx context.Context, input repository.TicketCreateInput) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket := domain.Ticket{
		ID:          f.nextID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		RequesterID: input.RequesterID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.nextID++
	f.tickets[ticket.ID] = ticket
	return &ticket, nil
}

func (f *fakeTicketRepo) Update(ctx context.Context, id int, patch repository.TicketPatch) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, patch)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, errorutil.NewAPIError(404, "record not found")
	}
	if patch.Title != nil {
		ticket.Title = *patch.Title
	}
	if patch.Status != nil {
		ticket.Status = *patch.Status
	}
	if patch.Priority != nil {
		ticket.Priority = *patch.Priority
	}
	if patch.AssignedToID != nil {
		assignee := *patch.AssignedToID
		ticket.AssignedToID = &assignee
	}
	f.tickets[id] = ticket
	return &ticket, nil
}

func (f *fakeTicketRepo) Remove(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tickets[id]; !ok {
		return errorutil.NewAPIError(404, "record not found")
	}
	delete(f.tickets, id)
	return nil
}

func (f *fakeTicketRepo) ticket(id int) domain.Ticket {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tickets[id]
}

// fakeCommentRepo records created comments.
type fakeCommentRepo struct {
	mu        sync.Mutex
	comments  []domain.Comment
	nextID    int
	createErr error
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{nextID: 1}
}

func (f *fakeCommentRepo) ListForTicket(ctx context.Context, ticketID int) ([]domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Comment{}
	for _, comment := range f.comments {
		if comment.TicketID == ticketID {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) ListAll(ctx context.Context) ([]domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Comment{}, f.comments...), nil
}

func (f *fakeCommentRepo) Create(ctx context.Context, input repository.CommentCreateInput) (*domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	comment := domain.Comment{
		ID:        f.nextID,
		TicketID:  input.TicketID,
		UserID:    input.UserID,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}
	f.nextID++
	f.comments = append(f.comments, comment)
	return &comment, nil
}

// recordingDispatcher captures published events.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}
