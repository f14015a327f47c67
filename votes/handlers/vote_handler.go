// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"

	"github.com/crimsonlab/crimson/internal/types"
	"github.com/crimsonlab/crimson/votes/errors"
	"github.com/crimsonlab/crimson/votes/services"
)

// VoteHandler handles all vote-related HTTP requests
type VoteHandler struct {
	voteService services.VoteService
}

// NewVoteHandler creates a new VoteHandler with injected dependencies
func NewVoteHandler(voteService services.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// VoteRequest represents the request body for voting
type VoteRequest struct {
	PostID      string `json:"postId"`
	CommunityID string `json:"communityId"`
	Value       int    `json:"voteValue"` // +1 or -1
}

// Vote handles one press of the up or down control
// Endpoint: POST /votes
// Body: {"postId": "uuid", "communityId": "uuid", "voteValue": 1}
func (h *VoteHandler) Vote(c *fiber.Ctx) error {
	var req VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	if req.PostID == "" {
		return errors.HandleInvalidRequestError(c, "postId is required")
	}
	postID, err := uuid.FromString(req.PostID)
	if err != nil {
		return errors.HandleUUIDError(c, "postId")
	}

	if req.CommunityID == "" {
		return errors.HandleInvalidRequestError(c, "communityId is required")
	}
	communityID, err := uuid.FromString(req.CommunityID)
	if err != nil {
		return errors.HandleUUIDError(c, "communityId")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	if err := h.voteService.Vote(c.Context(), user.UserID, postID, communityID, req.Value); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Vote recorded successfully",
	})
}

// MyVotes returns the actor's stored votes and warms the local cache
// Endpoint: GET /votes/my
func (h *VoteHandler) MyVotes(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	votes, err := h.voteService.LoadVotes(c.Context(), user.UserID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"votes": votes,
	})
}

// ClearVotes drops the actor's cached votes on sign-out
// Endpoint: DELETE /votes/my/cache
func (h *VoteHandler) ClearVotes(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	h.voteService.ClearVotes(user.UserID)

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Cached votes cleared",
	})
}
