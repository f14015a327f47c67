// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package communities

import (
	"github.com/gofiber/fiber/v2"

	"github.com/crimsonlab/crimson/communities/handlers"
	"github.com/crimsonlab/crimson/internal/middleware/authjwt"
	"github.com/crimsonlab/crimson/internal/middleware/ratelimit"
	platformconfig "github.com/crimsonlab/crimson/internal/platform/config"
	"github.com/crimsonlab/crimson/internal/types"
)

// CommunitiesHandlers holds all the handlers this router needs
type CommunitiesHandlers struct {
	CommunityHandler *handlers.CommunityHandler
}

// RegisterRoutes is the single entry point for setting up community
// routes. Reads are public; membership mutations require an
// authenticated actor and carry the per-actor submit guard.
func RegisterRoutes(app *fiber.App, h *CommunitiesHandlers, cfg *platformconfig.Config) {
	authMiddleware := authjwt.New(authjwt.Config{
		PublicKey:   cfg.JWT.PublicKey,
		ClaimKey:    "claim",
		UserCtxName: types.UserCtxName,
	})
	submitGuard := ratelimit.New(ratelimit.DefaultConfig())

	group := app.Group("/communities")

	group.Get("/", h.CommunityHandler.List)
	group.Get("/:communityId", h.CommunityHandler.Get)

	group.Post("/", authMiddleware, h.CommunityHandler.Create)
	group.Post("/:communityId/members", authMiddleware, submitGuard, h.CommunityHandler.Join)
	group.Delete("/:communityId/members", authMiddleware, submitGuard, h.CommunityHandler.Leave)
	group.Get("/memberships/my", authMiddleware, h.CommunityHandler.MyMemberships)
	group.Delete("/memberships/my/cache", authMiddleware, h.CommunityHandler.ClearMemberships)
}
