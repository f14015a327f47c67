// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package posts

import (
	"github.com/gofiber/fiber/v2"

	"github.com/crimsonlab/crimson/internal/middleware/authjwt"
	platformconfig "github.com/crimsonlab/crimson/internal/platform/config"
	"github.com/crimsonlab/crimson/internal/types"
	"github.com/crimsonlab/crimson/posts/handlers"
)

// PostsHandlers holds all the handlers this router needs
type PostsHandlers struct {
	PostHandler *handlers.PostHandler
}

// RegisterRoutes is the single entry point for setting up posts routes.
// Reads are public; creating and deleting require an authenticated
// actor. The list route runs optional auth so signed-in callers get
// their votes folded into the response without shutting anonymous
// callers out.
func RegisterRoutes(app *fiber.App, h *PostsHandlers, cfg *platformconfig.Config) {
	authConfig := authjwt.Config{
		PublicKey:   cfg.JWT.PublicKey,
		ClaimKey:    "claim",
		UserCtxName: types.UserCtxName,
	}
	authMiddleware := authjwt.New(authConfig)
	optionalAuth := authjwt.NewOptional(authConfig)

	group := app.Group("/posts")

	group.Get("/", optionalAuth, h.PostHandler.List)
	group.Get("/:postId", h.PostHandler.Get)

	group.Post("/", authMiddleware, h.PostHandler.Create)
	group.Delete("/:postId", authMiddleware, h.PostHandler.Delete)
}
