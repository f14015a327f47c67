// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package ratelimit guards the mutation endpoints against rapid
// double-submits. The consistency engine does not deduplicate
// overlapping transactions itself, so the transport layer serializes
// them per actor instead.
package ratelimit

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/crimsonlab/crimson/internal/types"
)

// Config holds the configuration for the submit guard middleware
type Config struct {
	// Max is the number of requests allowed per window
	Max int

	// Window is the sliding window duration
	Window time.Duration

	// KeyGenerator derives the limiter key; defaults to actor+route so
	// one user hammering one endpoint does not throttle anyone else
	KeyGenerator func(c *fiber.Ctx) string

	// Next defines a function to skip this middleware when returned true
	Next func(c *fiber.Ctx) bool
}

// DefaultConfig returns the default submit-guard configuration:
// 5 mutations per second per actor per route.
func DefaultConfig() Config {
	return Config{
		Max:    5,
		Window: time.Second,
	}
}

// New creates a submit-guard middleware from the given config
func New(cfg Config) fiber.Handler {
	if cfg.Max <= 0 {
		cfg.Max = DefaultConfig().Max
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultConfig().Window
	}

	keyGen := cfg.KeyGenerator
	if keyGen == nil {
		keyGen = actorRouteKey
	}

	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Window,
		Next:       cfg.Next,
		KeyGenerator: func(c *fiber.Ctx) string {
			return keyGen(c)
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"code":    "TOO_MANY_REQUESTS",
				"message": "Please wait before repeating this action",
			})
		},
	})
}

// actorRouteKey keys the limiter by authenticated actor and route,
// falling back to the client IP for unauthenticated requests.
func actorRouteKey(c *fiber.Ctx) string {
	if user, ok := c.Locals(types.UserCtxName).(types.UserContext); ok {
		return fmt.Sprintf("%s:%s %s", user.UserID.String(), c.Method(), c.Path())
	}
	return fmt.Sprintf("%s:%s %s", c.IP(), c.Method(), c.Path())
}
