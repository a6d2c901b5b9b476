package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-dashboard/internal/service"
	"github.com/spec-kit/ticket-dashboard/internal/session"
	"github.com/spec-kit/ticket-dashboard/pkg/util/errorutil"
)

// UsersHandler serves the user directory and the demo identity switcher.
type UsersHandler struct {
	directory *service.Directory
	session   *session.Session
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(directory *service.Directory, sess *session.Session) *UsersHandler {
	return &UsersHandler{directory: directory, session: sess}
}

// ListUsers GET /users.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.directory.Users()})
}

// GetSession GET /session.
func (h *UsersHandler) GetSession(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.session.Current()})
}

// SwitchUser PUT /session/user/:id.
func (h *UsersHandler) SwitchUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return errorutil.NewValidationError("invalid user id", nil)
	}
	user, err := h.directory.Switch(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}
