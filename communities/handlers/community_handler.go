// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"

	"github.com/crimsonlab/crimson/communities/errors"
	"github.com/crimsonlab/crimson/communities/services"
	"github.com/crimsonlab/crimson/internal/types"
)

// CommunityHandler handles all community-related HTTP requests
type CommunityHandler struct {
	communityService services.CommunityService
}

// NewCommunityHandler creates a new CommunityHandler with injected dependencies
func NewCommunityHandler(communityService services.CommunityService) *CommunityHandler {
	return &CommunityHandler{communityService: communityService}
}

// CreateCommunityRequest represents the request body for creating a community
type CreateCommunityRequest struct {
	Name        string `json:"name"`
	PrivacyType string `json:"privacyType"`
	ImageURL    string `json:"imageURL"`
}

// Create handles community creation
// Endpoint: POST /communities
func (h *CommunityHandler) Create(c *fiber.Ctx) error {
	var req CreateCommunityRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	community, err := h.communityService.CreateCommunity(c.Context(), user.UserID, req.Name, req.PrivacyType, req.ImageURL)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(community)
}

// Get retrieves a single community
// Endpoint: GET /communities/:communityId
func (h *CommunityHandler) Get(c *fiber.Ctx) error {
	communityID, err := uuid.FromString(c.Params("communityId"))
	if err != nil {
		return errors.HandleUUIDError(c, "communityId")
	}

	community, err := h.communityService.GetCommunity(c.Context(), communityID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(community)
}

// List retrieves communities, largest first
// Endpoint: GET /communities?limit=10&offset=0
func (h *CommunityHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	offset := c.QueryInt("offset", 0)
	if limit < 1 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	communities, err := h.communityService.ListCommunities(c.Context(), limit, offset)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"communities": communities,
	})
}

// Join adds the actor to a community
// Endpoint: POST /communities/:communityId/members
func (h *CommunityHandler) Join(c *fiber.Ctx) error {
	communityID, err := uuid.FromString(c.Params("communityId"))
	if err != nil {
		return errors.HandleUUIDError(c, "communityId")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	if err := h.communityService.Join(c.Context(), user.UserID, communityID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Joined community",
	})
}

// Leave removes the actor from a community
// Endpoint: DELETE /communities/:communityId/members
func (h *CommunityHandler) Leave(c *fiber.Ctx) error {
	communityID, err := uuid.FromString(c.Params("communityId"))
	if err != nil {
		return errors.HandleUUIDError(c, "communityId")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	if err := h.communityService.Leave(c.Context(), user.UserID, communityID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Left community",
	})
}

// MyMemberships returns the actor's memberships and warms the local cache
// Endpoint: GET /communities/memberships/my
func (h *CommunityHandler) MyMemberships(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	memberships, err := h.communityService.LoadMemberships(c.Context(), user.UserID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"memberships": memberships,
	})
}

// ClearMemberships drops the actor's cached memberships on sign-out
// Endpoint: DELETE /communities/memberships/my/cache
func (h *CommunityHandler) ClearMemberships(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	h.communityService.ClearMemberships(user.UserID)

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Cached memberships cleared",
	})
}
