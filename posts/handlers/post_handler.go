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
	"github.com/crimsonlab/crimson/posts/errors"
	"github.com/crimsonlab/crimson/posts/models"
	"github.com/crimsonlab/crimson/posts/services"
	voteServices "github.com/crimsonlab/crimson/votes/services"
)

// PostHandler handles all post-related HTTP requests
type PostHandler struct {
	postService services.PostService
	voteService voteServices.VoteService
}

// NewPostHandler creates a new PostHandler with injected dependencies.
// The vote service enriches post lists with the actor's vote status.
func NewPostHandler(postService services.PostService, voteService voteServices.VoteService) *PostHandler {
	return &PostHandler{
		postService: postService,
		voteService: voteService,
	}
}

// CreatePostRequest represents the request body for creating a post
type CreatePostRequest struct {
	CommunityID string `json:"communityId"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	ImageURL    string `json:"imageURL"`
}

// Create handles post creation
// Endpoint: POST /posts
func (h *PostHandler) Create(c *fiber.Ctx) error {
	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	communityID, err := uuid.FromString(req.CommunityID)
	if err != nil {
		return errors.HandleUUIDError(c, "communityId")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	post, err := h.postService.CreatePost(c.Context(), user.UserID, user.DisplayName, communityID, req.Title, req.Body, req.ImageURL)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(post)
}

// Get retrieves a single post
// Endpoint: GET /posts/:postId
func (h *PostHandler) Get(c *fiber.Ctx) error {
	postID, err := uuid.FromString(c.Params("postId"))
	if err != nil {
		return errors.HandleUUIDError(c, "postId")
	}

	post, err := h.postService.GetPost(c.Context(), postID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(post)
}

// List retrieves posts, newest first. With a communityId query it
// returns the community feed, otherwise the cross-community feed. When
// the caller is signed in the response carries their vote per post.
// Endpoint: GET /posts?communityId=uuid&limit=10&offset=0
func (h *PostHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	offset := c.QueryInt("offset", 0)
	if limit < 1 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	var (
		result interface{}
		err    error
	)

	communityParam := c.Query("communityId")
	if communityParam != "" {
		communityID, parseErr := uuid.FromString(communityParam)
		if parseErr != nil {
			return errors.HandleUUIDError(c, "communityId")
		}
		result, err = h.listWithVotes(c, func() (interface{}, []uuid.UUID, error) {
			list, e := h.postService.GetCommunityPosts(c.Context(), communityID, limit, offset)
			return list, postIDs(list), e
		})
	} else {
		result, err = h.listWithVotes(c, func() (interface{}, []uuid.UUID, error) {
			list, e := h.postService.GetRecentPosts(c.Context(), limit, offset)
			return list, postIDs(list), e
		})
	}
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

// Delete removes a post
// Endpoint: DELETE /posts/:postId
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	postID, err := uuid.FromString(c.Params("postId"))
	if err != nil {
		return errors.HandleUUIDError(c, "postId")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	if err := h.postService.DeletePost(c.Context(), user.UserID, postID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Post deleted",
	})
}

// listWithVotes wraps a post list with the caller's vote status when a
// user context is present.
func (h *PostHandler) listWithVotes(c *fiber.Ctx, load func() (interface{}, []uuid.UUID, error)) (interface{}, error) {
	list, ids, err := load()
	if err != nil {
		return nil, err
	}

	response := fiber.Map{"posts": list}

	if user, ok := c.Locals(types.UserCtxName).(types.UserContext); ok && len(ids) > 0 {
		votes, err := h.voteService.GetVotesForPosts(c.Context(), ids, user.UserID)
		if err == nil {
			myVotes := make(map[string]int, len(votes))
			for id, value := range votes {
				myVotes[id.String()] = value
			}
			response["myVotes"] = myVotes
		}
	}

	return response, nil
}

// postIDs collects the IDs of a post list for the bulk vote lookup.
func postIDs(posts []*models.Post) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ObjectId)
	}
	return ids
}
