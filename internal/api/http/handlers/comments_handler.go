package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-dashboard/internal/api/dto"
	"github.com/spec-kit/ticket-dashboard/internal/repository"
	"github.com/spec-kit/ticket-dashboard/internal/service"
	"github.com/spec-kit/ticket-dashboard/internal/session"
	"github.com/spec-kit/ticket-dashboard/internal/store"
	"github.com/spec-kit/ticket-dashboard/pkg/util/errorutil"
)

// CommentsHandler serves ticket comment endpoints.
type CommentsHandler struct {
	store     *store.Store
	comments  repository.CommentRepository
	session   *session.Session
	directory *service.Directory
}

// NewCommentsHandler constructs the handler.
func NewCommentsHandler(st *store.Store, comments repository.CommentRepository, sess *session.Session, directory *service.Directory) *CommentsHandler {
	return &CommentsHandler{store: st, comments: comments, session: sess, directory: directory}
}

// ListComments GET /tickets/:id/comments. Always sorted ascending by
// creation time.
func (h *CommentsHandler) ListComments(c *fiber.Ctx) error {
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	comments, err := h.comments.ListForTicket(c.UserContext(), id)
	if err != nil {
		return err
	}
	views := make([]dto.CommentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, dto.CommentView{
			Comment: comment,
			Author:  h.directory.RoleInfo(comment.UserID),
		})
	}
	return c.JSON(fiber.Map{"data": views})
}

// CreateComment POST /tickets/:id/comments. Runs the auto-assignment
// workflow with the session user as the acting author.
func (h *CommentsHandler) CreateComment(c *fiber.Ctx) error {
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	current := h.session.Current()
	if current == nil {
		return errorutil.NewForbidden("no current user")
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Comment) == "" {
		return errorutil.NewValidationError("comment text is required", nil)
	}

	input := repository.CommentCreateInput{
		TicketID: id,
		UserID:   current.ID,
		Comment:  req.Comment,
	}
	comment, err := h.store.SubmitComment(c.UserContext(), input, *current)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CommentView{
		Comment: *comment,
		Author:  h.directory.RoleInfo(comment.UserID),
	}})
}
