// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"

	"github.com/crimsonlab/crimson/comments/errors"
	"github.com/crimsonlab/crimson/comments/services"
	"github.com/crimsonlab/crimson/internal/types"
)

// CommentHandler handles all comment-related HTTP requests
type CommentHandler struct {
	commentService services.CommentService
}

// NewCommentHandler creates a new CommentHandler with injected dependencies
func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest represents the request body for creating a comment
type CreateCommentRequest struct {
	PostID string `json:"postId"`
	Text   string `json:"text"`
}

// Create handles comment creation
// Endpoint: POST /comments
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	postID, err := uuid.FromString(req.PostID)
	if err != nil {
		return errors.HandleUUIDError(c, "postId")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	comment, err := h.commentService.CreateComment(c.Context(), user.UserID, user.DisplayName, postID, req.Text)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(comment)
}

// List retrieves a post's comments, newest first
// Endpoint: GET /comments?postId=uuid&limit=10&offset=0
func (h *CommentHandler) List(c *fiber.Ctx) error {
	postID, err := uuid.FromString(c.Query("postId"))
	if err != nil {
		return errors.HandleUUIDError(c, "postId")
	}

	limit := c.QueryInt("limit", 10)
	offset := c.QueryInt("offset", 0)
	if limit < 1 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	comments, err := h.commentService.GetComments(c.Context(), postID, limit, offset)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"comments": comments,
	})
}

// Delete removes a comment
// Endpoint: DELETE /comments/:commentId
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	commentID, err := uuid.FromString(c.Params("commentId"))
	if err != nil {
		return errors.HandleUUIDError(c, "commentId")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	if err := h.commentService.DeleteComment(c.Context(), user.UserID, commentID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Comment deleted",
	})
}
