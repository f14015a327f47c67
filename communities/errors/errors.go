// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Community service specific errors
var (
	ErrCommunityNotFound    = errors.New("community not found")
	ErrCommunityNameTaken   = errors.New("community name is taken")
	ErrInvalidCommunityName = errors.New("invalid community name")
	ErrInvalidPrivacyType   = errors.New("invalid privacy type")
	ErrMembershipNotFound   = errors.New("membership not found")
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrInvalidUUID          = errors.New("invalid UUID format")
	ErrMissingUserContext   = errors.New("missing user context")
	ErrMembershipConflict   = errors.New("membership conflicts with a concurrent write")
	ErrDatabaseOperation    = errors.New("database operation failed")
)

// Error codes
const (
	CodeCommunityNotFound    = "COMMUNITY_NOT_FOUND"
	CodeCommunityNameTaken   = "COMMUNITY_NAME_TAKEN"
	CodeInvalidCommunityName = "INVALID_COMMUNITY_NAME"
	CodeInvalidPrivacyType   = "INVALID_PRIVACY_TYPE"
	CodeMembershipNotFound   = "MEMBERSHIP_NOT_FOUND"
	CodeUnauthenticated      = "UNAUTHENTICATED"
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeInvalidUUID          = "INVALID_UUID"
	CodeMissingUserContext   = "MISSING_USER_CONTEXT"
	CodeMembershipConflict   = "MEMBERSHIP_CONFLICT"
	CodeDatabaseError        = "DATABASE_ERROR"
)

// ErrorResponse represents the standardized error response format
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// HandleServiceError handles service errors and returns appropriate HTTP responses
func HandleServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrCommunityNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeCommunityNotFound,
			Message: "Community not found",
			Details: err.Error(),
		})
	case errors.Is(err, ErrCommunityNameTaken):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Code:    CodeCommunityNameTaken,
			Message: "That community name is already taken",
			Details: err.Error(),
		})
	case errors.Is(err, ErrInvalidCommunityName):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidCommunityName,
			Message: "Community names must be 3-21 characters, letters, numbers, dots or underscores",
			Details: err.Error(),
		})
	case errors.Is(err, ErrInvalidPrivacyType):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidPrivacyType,
			Message: "Privacy type must be public, restricted or private",
			Details: err.Error(),
		})
	case errors.Is(err, ErrMembershipNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeMembershipNotFound,
			Message: "Membership not found",
			Details: err.Error(),
		})
	case errors.Is(err, ErrUnauthenticated):
		return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
			Code:    CodeUnauthenticated,
			Message: "Sign in to manage memberships",
			Details: err.Error(),
		})
	case errors.Is(err, ErrMembershipConflict):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Code:    CodeMembershipConflict,
			Message: "Membership conflicted with a concurrent change, try again",
			Details: err.Error(),
		})
	case errors.Is(err, ErrDatabaseOperation):
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Code:    CodeDatabaseError,
			Message: "Database operation failed",
			Details: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "An unexpected error occurred",
			Details: err.Error(),
		})
	}
}

// HandleUserContextError handles user context errors with 401 Unauthorized
func HandleUserContextError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
		Code:    CodeMissingUserContext,
		Message: message,
		Details: message,
	})
}

// HandleInvalidRequestError handles invalid request errors with 400 Bad Request
func HandleInvalidRequestError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeInvalidRequest,
		Message: message,
		Details: message,
	})
}

// HandleUUIDError handles UUID parsing errors with 400 Bad Request
func HandleUUIDError(c *fiber.Ctx, fieldName string) error {
	message := fmt.Sprintf("Invalid %s format", fieldName)
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeInvalidUUID,
		Message: message,
		Details: message,
	})
}
