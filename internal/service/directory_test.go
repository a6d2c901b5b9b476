package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/session"
	"github.com/spec-kit/ticket-dashboard/pkg/util/errorutil"
)

type fakeUserRepo struct {
	users   []domain.User
	listErr error
}

func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.users, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (*domain.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return &user, nil
		}
	}
	return nil, errorutil.NewAPIError(404, "record not found")
}

var directoryUsers = []domain.User{
	{ID: 1, Name: "Ada Admin", Role: domain.RoleAdmin},
	{ID: 3, Name: "Avery Agent", Role: domain.RoleAgent, Department: "Support"},
	{ID: 7, Name: "Casey Customer", Role: domain.RoleRequester},
}

func newTestDirectory(users []domain.User) (*Directory, *session.Session) {
	sess := session.New()
	dir := NewDirectory(&fakeUserRepo{users: users}, sess, zap.NewNop())
	return dir, sess
}

func TestDirectory_LoadDefaultsToFirstAgent(t *testing.T) {
	dir, sess := newTestDirectory(directoryUsers)

	require.NoError(t, dir.Load(context.Background()))

	current := sess.Current()
	require.NotNil(t, current)
	assert.Equal(t, 3, current.ID)
	assert.Equal(t, domain.RoleAgent, current.Role)
	assert.Len(t, dir.Users(), 3)
}

func TestDirectory_LoadFallsBackToFirstUser(t *testing.T) {
	users := []domain.User{
		{ID: 1, Name: "Ada Admin", Role: domain.RoleAdmin},
		{ID: 7, Name: "Casey Customer", Role: domain.RoleRequester},
	}
	dir, sess := newTestDirectory(users)

	require.NoError(t, dir.Load(context.Background()))

	current := sess.Current()
	require.NotNil(t, current)
	assert.Equal(t, 1, current.ID)
}

func TestDirectory_LoadKeepsExistingIdentity(t *testing.T) {
	dir, sess := newTestDirectory(directoryUsers)
	sess.Set(domain.User{ID: 7, Role: domain.RoleRequester})

	require.NoError(t, dir.Load(context.Background()))

	assert.Equal(t, 7, sess.Current().ID)
}

func TestDirectory_LoadEmptyTableLeavesSessionEmpty(t *testing.T) {
	dir, sess := newTestDirectory(nil)

	require.NoError(t, dir.Load(context.Background()))
	assert.Nil(t, sess.Current())
}

func TestDirectory_Switch(t *testing.T) {
	dir, sess := newTestDirectory(directoryUsers)
	require.NoError(t, dir.Load(context.Background()))

	user, err := dir.Switch(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleRequester, user.Role)
	assert.Equal(t, 7, sess.Current().ID)

	_, err = dir.Switch(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, 7, sess.Current().ID, "failed switch keeps the prior identity")
}

func TestDirectory_RoleInfo(t *testing.T) {
	dir, _ := newTestDirectory(directoryUsers)
	require.NoError(t, dir.Load(context.Background()))

	info := dir.RoleInfo(3)
	assert.Equal(t, "Avery Agent", info.Name)
	assert.Equal(t, "Agent", info.RoleLabel)
	assert.Equal(t, "Support", info.Department)

	info = dir.RoleInfo(7)
	assert.Equal(t, "Customer", info.RoleLabel, "requesters are labelled Customer in the UI")

	info = dir.RoleInfo(0)
	assert.Equal(t, "Unknown User", info.Name)
	assert.Equal(t, domain.RoleRequester, info.Role)

	info = dir.RoleInfo(42)
	assert.Equal(t, "User #42", info.Name)
	assert.Equal(t, domain.RoleRequester, info.Role)
}
