package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/repository"
	"github.com/spec-kit/ticket-dashboard/internal/session"
)

// RoleInfo is display metadata for a user id, with fallbacks for ids the
// directory has never seen.
type RoleInfo struct {
	Name       string      `json:"name"`
	Role       domain.Role `json:"role"`
	RoleLabel  string      `json:"role_label"`
	Department string      `json:"department,omitempty"`
}

// Directory loads the read-only user table and manages the switchable demo
// identity held in the session.
type Directory struct {
	users   repository.UserRepository
	session *session.Session
	logger  *zap.Logger

	mu     sync.RWMutex
	loaded []domain.User
}

// NewDirectory creates the directory.
func NewDirectory(users repository.UserRepository, sess *session.Session, logger *zap.Logger) *Directory {
	return &Directory{users: users, session: sess, logger: logger}
}

// Load fetches users and seeds the session with a default identity: the
// first agent, else the first user. An empty table leaves the session empty.
func (d *Directory) Load(ctx context.Context) error {
	fetched, err := d.users.List(ctx)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.loaded = fetched
	d.mu.Unlock()

	if d.session.Current() != nil {
		return nil
	}
	for _, user := range fetched {
		if user.Role == domain.RoleAgent {
			d.session.Set(user)
			return nil
		}
	}
	if len(fetched) > 0 {
		d.session.Set(fetched[0])
	}
	return nil
}

// Users returns the loaded user list.
func (d *Directory) Users() []domain.User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.User, len(d.loaded))
	copy(out, d.loaded)
	return out
}

// Switch swaps the session identity to the given user id.
func (d *Directory) Switch(ctx context.Context, id int) (*domain.User, error) {
	user, err := d.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.session.Set(*user)
	d.logger.Info("switched current user",
		zap.Int("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return user, nil
}

// RoleInfo resolves display metadata for a user id, falling back to a
// placeholder requester identity when the id is unknown.
func (d *Directory) RoleInfo(userID int) RoleInfo {
	if userID == 0 {
		return RoleInfo{Name: "Unknown User", Role: domain.RoleRequester, RoleLabel: domain.RoleRequester.Label()}
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, user := range d.loaded {
		if user.ID == userID {
			name := user.Name
			if name == "" {
				name = "Unknown User"
			}
			return RoleInfo{
				Name:       name,
				Role:       user.Role,
				RoleLabel:  user.Role.Label(),
				Department: user.Department,
			}
		}
	}
	return RoleInfo{
		Name:      fmt.Sprintf("User #%d", userID),
		Role:      domain.RoleRequester,
		RoleLabel: domain.RoleRequester.Label(),
	}
}
