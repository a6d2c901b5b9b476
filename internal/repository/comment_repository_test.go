package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCommentRepo(backend *fakeBackend) CommentRepository {
	return NewCommentRepository(backend, testBackendConfig(), zap.NewNop())
}

func TestCommentRepository_ListForTicketSortsAscending(t *testing.T) {
	backend := &fakeBackend{handler: func(call backendCall) (json.RawMessage, error) {
		return json.RawMessage(`{"resource":[
			{"id":3,"ticket_id":5,"user_id":2,"comment":"latest","created_at":"2024-03-03T12:00:00Z"},
			{"id":1,"ticket_id":5,"user_id":7,"comment":"first","created_at":"2024-03-01T12:00:00Z"},
			{"id":2,"ticket_id":5,"user_id":2,"comment":"second","created_at":"2024-03-02T12:00:00Z"}
		]}`), nil
	}}
	repo := newTestCommentRepo(backend)

	comments, err := repo.ListForTicket(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, "/db/_table/ticket_comments?filter=ticket_id=5", backend.calls[0].Endpoint)
	require.Len(t, comments, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{comments[0].ID, comments[1].ID, comments[2].ID})
}

func TestCommentRepository_ListSortIsStable(t *testing.T) {
	// equal timestamps keep backend order
	backend := &fakeBackend{handler: func(call backendCall) (json.RawMessage, error) {
		return json.RawMessage(`{"resource":[
			{"id":9,"ticket_id":5,"user_id":2,"comment":"a","created_at":"2024-03-01T12:00:00Z"},
			{"id":4,"ticket_id":5,"user_id":2,"comment":"b","created_at":"2024-03-01T12:00:00Z"}
		]}`), nil
	}}
	repo := newTestCommentRepo(backend)

	comments, err := repo.ListForTicket(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, 9, comments[0].ID)
	assert.Equal(t, 4, comments[1].ID)
}

func TestCommentRepository_CreateBackfillsRequestFields(t *testing.T) {
	backend := &fakeBackend{handler: func(call backendCall) (json.RawMessage, error) {
		return json.RawMessage(`{"resource":[{"id":42,"created_at":"2024-03-05T08:30:00Z"}]}`), nil
	}}
	repo := newTestCommentRepo(backend)

	comment, err := repo.Create(context.Background(), CommentCreateInput{
		TicketID: 5,
		UserID:   2,
		Comment:  "looking into it",
	})
	require.NoError(t, err)

	require.Len(t, backend.calls, 1, "sparse insert echoes are back-filled, not refetched")
	envelope, ok := backend.calls[0].Body.(resourceEnvelope)
	require.True(t, ok)
	require.Len(t, envelope.Resource, 1)
	assert.Equal(t, 5, envelope.Resource[0]["ticket_id"])
	assert.Equal(t, "looking into it", envelope.Resource[0]["comment"])

	assert.Equal(t, 42, comment.ID)
	assert.Equal(t, 5, comment.TicketID)
	assert.Equal(t, 2, comment.UserID)
	assert.Equal(t, "looking into it", comment.Comment)
	assert.Equal(t, "2024-03-05T08:30:00Z", comment.CreatedAt.Format("2006-01-02T15:04:05Z"))
}

func TestCommentRepository_ListAllUsesBareTableEndpoint(t *testing.T) {
	backend := &fakeBackend{handler: func(call backendCall) (json.RawMessage, error) {
		return json.RawMessage(`{"resource":[]}`), nil
	}}
	repo := newTestCommentRepo(backend)

	comments, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, comments)
	assert.Equal(t, "/db/_table/ticket_comments", backend.calls[0].Endpoint)
}
