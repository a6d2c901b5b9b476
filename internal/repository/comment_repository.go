package repository

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/config"
	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/normalize"
	"github.com/spec-kit/ticket-dashboard/internal/transport"
	"github.com/spec-kit/ticket-dashboard/pkg/util/errorutil"
)

// CommentCreateInput captures a new reply on a ticket.
type CommentCreateInput struct {
	TicketID int
	UserID   int
	Comment  string
}

func (in CommentCreateInput) payload() map[string]any {
	return map[string]any{
		"ticket_id": in.TicketID,
		"user_id":   in.UserID,
		"comment":   in.Comment,
	}
}

// CommentRepository exposes comment reads and creation. Comments are
// append-only; deletion is a backend cascade and not modeled here.
type CommentRepository interface {
	ListForTicket(ctx context.Context, ticketID int) ([]domain.Comment, error)
	ListAll(ctx context.Context) ([]domain.Comment, error)
	Create(ctx context.Context, input CommentCreateInput) (*domain.Comment, error)
}

type commentRepository struct {
	api    transport.Requester
	cfg    config.BackendConfig
	logger *zap.Logger
}

// NewCommentRepository instantiates the repository.
func NewCommentRepository(api transport.Requester, cfg config.BackendConfig, logger *zap.Logger) CommentRepository {
	return &commentRepository{api: api, cfg: cfg, logger: logger}
}

// ListForTicket filters server-side by ticket and returns comments sorted
// ascending by creation time, stable for equal timestamps.
func (r *commentRepository) ListForTicket(ctx context.Context, ticketID int) ([]domain.Comment, error) {
	endpoint := fmt.Sprintf("%s?filter=ticket_id=%d", r.cfg.TableEndpoint(r.cfg.CommentsTable), ticketID)
	return r.list(ctx, endpoint)
}

func (r *commentRepository) ListAll(ctx context.Context) ([]domain.Comment, error) {
	return r.list(ctx, r.cfg.TableEndpoint(r.cfg.CommentsTable))
}

func (r *commentRepository) list(ctx context.Context, endpoint string) ([]domain.Comment, error) {
	raw, err := r.api.Request(ctx, endpoint, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	rows, err := decodeRows(raw)
	if err != nil {
		return nil, err
	}
	comments := make([]domain.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, normalize.Comment(row))
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

// Create posts a single-element batch. Insert echoes are often sparse, so
// the known request fields are back-filled rather than refetched; only the
// id and timestamp come from the backend.
func (r *commentRepository) Create(ctx context.Context, input CommentCreateInput) (*domain.Comment, error) {
	envelope := resourceEnvelope{Resource: []map[string]any{input.payload()}}
	raw, err := r.api.Request(ctx, r.cfg.TableEndpoint(r.cfg.CommentsTable), http.MethodPost, envelope)
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
	echo := rows[0]

	comment := normalize.Comment(normalize.Raw{
		"id":         echo["id"],
		"ticket_id":  input.TicketID,
		"user_id":    input.UserID,
		"comment":    input.Comment,
		"created_at": echo["created_at"],
	})
	return &comment, nil
}
