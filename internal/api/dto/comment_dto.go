package dto

import (
	"github.com/spec-kit/ticket-dashboard/internal/domain"
	"github.com/spec-kit/ticket-dashboard/internal/service"
)

// CreateCommentRequest payload. The author is the session user.
type CreateCommentRequest struct {
	Comment string `json:"comment"`
}

// CommentView decorates a comment with its author's display metadata.
type CommentView struct {
	domain.Comment
	Author service.RoleInfo `json:"author"`
}
