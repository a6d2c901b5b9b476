package repository

import (
	"context"
	"net/http"
	"strconv"

	"github.com/spec-kit/ticket-dashboard/internal/config"
	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/normalize"
	"github.com/spec-kit/ticket-dashboard/internal/transport"
)

// UserRepository reads the backend's user table. Users are read-only from
// this system's perspective; there are no write operations.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int) (*domain.User, error)
}

type userRepository struct {
	api transport.Requester
	cfg config.BackendConfig
}

// NewUserRepository instantiates the repository.
func NewUserRepository(api transport.Requester, cfg config.BackendConfig) UserRepository {
	return &userRepository{api: api, cfg: cfg}
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	raw, err := r.api.Request(ctx, r.cfg.TableEndpoint(r.cfg.UsersTable), http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	rows, err := decodeRows(raw)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, normalize.User(row))
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	endpoint := r.cfg.TableEndpoint(r.cfg.UsersTable, strconv.Itoa(id))
	raw, err := r.api.Request(ctx, endpoint, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	row, err := decodeRow(raw)
	if err != nil {
		return nil, err
	}
	user := normalize.User(row)
	return &user, nil
}
