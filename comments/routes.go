// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package comments

import (
	"github.com/gofiber/fiber/v2"

	"github.com/crimsonlab/crimson/comments/handlers"
	"github.com/crimsonlab/crimson/internal/middleware/authjwt"
	platformconfig "github.com/crimsonlab/crimson/internal/platform/config"
	"github.com/crimsonlab/crimson/internal/types"
)

// CommentsHandlers holds all the handlers this router needs
type CommentsHandlers struct {
	CommentHandler *handlers.CommentHandler
}

// RegisterRoutes is the single entry point for setting up comments
// routes. Reads are public; writing requires an authenticated actor.
func RegisterRoutes(app *fiber.App, h *CommentsHandlers, cfg *platformconfig.Config) {
	authMiddleware := authjwt.New(authjwt.Config{
		PublicKey:   cfg.JWT.PublicKey,
		ClaimKey:    "claim",
		UserCtxName: types.UserCtxName,
	})

	group := app.Group("/comments")

	group.Get("/", h.CommentHandler.List)

	group.Post("/", authMiddleware, h.CommentHandler.Create)
	group.Delete("/:commentId", authMiddleware, h.CommentHandler.Delete)
}
