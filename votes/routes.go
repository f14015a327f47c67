// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package votes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/crimsonlab/crimson/internal/middleware/authjwt"
	"github.com/crimsonlab/crimson/internal/middleware/ratelimit"
	platformconfig "github.com/crimsonlab/crimson/internal/platform/config"
	"github.com/crimsonlab/crimson/internal/types"
	"github.com/crimsonlab/crimson/votes/handlers"
)

// VotesHandlers holds all the handlers this router needs
type VotesHandlers struct {
	VoteHandler *handlers.VoteHandler
}

// RegisterRoutes is the single entry point for setting up votes routes.
// Every vote route requires an authenticated actor, and the mutation
// endpoint carries a per-actor submit guard so rapid double-presses are
// serialized.
func RegisterRoutes(app *fiber.App, h *VotesHandlers, cfg *platformconfig.Config) {
	authMiddleware := authjwt.New(authjwt.Config{
		PublicKey:   cfg.JWT.PublicKey,
		ClaimKey:    "claim",
		UserCtxName: types.UserCtxName,
	})

	group := app.Group("/votes", authMiddleware)

	group.Post("/", ratelimit.New(ratelimit.DefaultConfig()), h.VoteHandler.Vote)
	group.Get("/my", h.VoteHandler.MyVotes)
	group.Delete("/my/cache", h.VoteHandler.ClearVotes)
}
