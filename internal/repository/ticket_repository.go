package repository

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/config"
	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/normalize"
	"github.com/spec-kit/ticket-dashboard/internal/transport"
	"github.com/spec-kit/ticket-dashboard/pkg/util/errorutil"
)

// TicketCreateInput captures the fields a caller may set at creation.
type TicketCreateInput struct {
	Title       string
	Description string
	Status      domain.TicketStatus
	Priority    domain.TicketPriority
	RequesterID int
	CategoryID  *int
}

func (in TicketCreateInput) payload() map[string]any {
	status := in.Status
	if status == "" {
		status = domain.TicketStatusOpen
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	payload := map[string]any{
		"title":        in.Title,
		"description":  in.Description,
		"status":       status,
		"priority":     priority,
		"requester_id": in.RequesterID,
	}
	if in.CategoryID != nil {
		payload["category_id"] = *in.CategoryID
	}
	return payload
}

// TicketPatch is a partial update. Nil fields are left untouched; requester
// identity is immutable and deliberately absent.
type TicketPatch struct {
	Title        *string
	Description  *string
	Status       *domain.TicketStatus
	Priority     *domain.TicketPriority
	AssignedToID *int
}

func (p TicketPatch) payload() map[string]any {
	payload := map[string]any{}
	if p.Title != nil {
		payload["title"] = *p.Title
	}
	if p.Description != nil {
		payload["description"] = *p.Description
	}
	if p.Status != nil {
		payload["status"] = *p.Status
	}
	if p.Priority != nil {
		payload["priority"] = *p.Priority
	}
	if p.AssignedToID != nil {
		payload["assigned_to_id"] = *p.AssignedToID
	}
	return payload
}

// TicketRepository exposes ticket CRUD over the tabular backend.
type TicketRepository interface {
	List(ctx context.Context) ([]domain.Ticket, error)
	GetByID(ctx context.Context, id int) (*domain.Ticket, error)
	Create(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error)
	Update(ctx context.Context, id int, patch TicketPatch) (*domain.Ticket, error)
	Remove(ctx context.Context, id int) error
}

type ticketRepository struct {
	api    transport.Requester
	cfg    config.BackendConfig
	logger *zap.Logger
	chain  []writeStrategy
}

// NewTicketRepository instantiates the repository.
func NewTicketRepository(api transport.Requester, cfg config.BackendConfig, logger *zap.Logger) TicketRepository {
	return &ticketRepository{
		api:    api,
		cfg:    cfg,
		logger: logger,
		chain:  updateFallbackChain,
	}
}

func (r *ticketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	raw, err := r.api.Request(ctx, r.cfg.TableEndpoint(r.cfg.TicketsTable), http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	rows, err := decodeRows(raw)
	if err != nil {
		return nil, err
	}
	tickets := make([]domain.Ticket, 0, len(rows))
	for _, row := range rows {
		tickets = append(tickets, normalize.Ticket(row))
	}
	return tickets, nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int) (*domain.Ticket, error) {
	endpoint := r.cfg.TableEndpoint(r.cfg.TicketsTable, strconv.Itoa(id))
	raw, err := r.api.Request(ctx, endpoint, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	row, err := decodeRow(raw)
	if err != nil {
		return nil, err
	}
	ticket := normalize.Ticket(row)
	return &ticket, nil
}

// Create posts a single-element batch and repairs truncated echoes: when the
// backend returns only the primary key on insert, the authoritative record
// is refetched by id.
func (r *ticketRepository) Create(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	envelope := resourceEnvelope{Resource: []map[string]any{input.payload()}}
	raw, err := r.api.Request(ctx, r.cfg.TableEndpoint(r.cfg.TicketsTable), http.MethodPost, envelope)
	if err != nil {
		return nil, err
	}
	rows, err := decodeRows(raw)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errorutil.NewAPIError(http.StatusBadGateway, "backend returned no rows for insert")
	}
	created := rows[0]
	if _, hasCreated := created["created_at"]; !hasCreated {
		return r.GetByID(ctx, intID(created))
	}
	if _, hasUpdated := created["updated_at"]; !hasUpdated {
		return r.GetByID(ctx, intID(created))
	}
	ticket := normalize.Ticket(created)
	return &ticket, nil
}

// Update walks the write-verb fallback chain, swallowing intermediate
// failures. A successful echo with only the id triggers a GetByID refetch
// instead of trusting the response body.
func (r *ticketRepository) Update(ctx context.Context, id int, patch TicketPatch) (*domain.Ticket, error) {
	endpoint := r.cfg.TableEndpoint(r.cfg.TicketsTable, strconv.Itoa(id))
	payload := patch.payload()

	var lastErr error
	for _, strategy := range r.chain {
		raw, err := r.api.Request(ctx, endpoint, strategy.Verb, strategy.body(payload))
		if err != nil {
			r.logger.Debug("update dialect rejected, falling through",
				zap.String("verb", strategy.Verb),
				zap.Bool("wrapped", strategy.Wrapped),
				zap.Int("ticket_id", id),
				zap.Error(err))
			lastErr = err
			continue
		}
		row, err := decodeRow(raw)
		if err != nil {
			lastErr = err
			continue
		}
		if truncatedRow(row) {
			return r.GetByID(ctx, id)
		}
		ticket := normalize.Ticket(row)
		return &ticket, nil
	}
	return nil, lastErr
}

// Remove deletes the row. Any non-error response counts as success; deleting
// an id the backend no longer knows surfaces its APIError untouched.
func (r *ticketRepository) Remove(ctx context.Context, id int) error {
	endpoint := r.cfg.TableEndpoint(r.cfg.TicketsTable, strconv.Itoa(id))
	_, err := r.api.Request(ctx, endpoint, http.MethodDelete, nil)
	return err
}

func intID(row normalize.Raw) int {
	switch v := row["id"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}
