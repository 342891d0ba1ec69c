package server

import (
	"context"
	"errors"
	"log/slog"

	"momentzero/internal/middleware"
	"momentzero/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const (
	maxPaginationLimit = 100
)

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// requestContext derives the storage deadline for one request and tags it
// with the username being acted on.
func (s *Server) requestContext(c *fiber.Ctx, username string) (context.Context, context.CancelFunc) {
	ctx := c.UserContext()
	if username != "" {
		ctx = middleware.WithUsername(ctx, username)
	}
	return context.WithTimeout(ctx, s.config.RequestTimeout())
}

// mapServiceError maps an error kind to its HTTP status. Timeouts and
// anything unclassified are internal errors.
func mapServiceError(err error) int {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fiber.StatusInternalServerError
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeValidation:
			return fiber.StatusBadRequest
		case models.CodeConflict:
			return fiber.StatusConflict
		case models.CodeNotFound:
			return fiber.StatusNotFound
		}
	}
	return fiber.StatusInternalServerError
}

// outcome labels err for the operation counter.
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case models.IsCode(err, models.CodeValidation):
		return "invalid"
	case models.IsCode(err, models.CodeConflict):
		return "conflict"
	case models.IsCode(err, models.CodeNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// respondServiceError writes err with its mapped status. Errors that are not
// AppErrors (timeouts, driver errors) are logged and hidden behind an internal error.
func respondServiceError(ctx context.Context, c *fiber.Ctx, err error) error {
	status := mapServiceError(err)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || status == fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(ctx, "request failed",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
		if appErr == nil || appErr.Code != models.CodeInternal {
			err = models.NewInternalError(err)
		}
	}
	return models.RespondWithError(c, status, err)
}

func invalidBody() error {
	return models.NewValidationError("Invalid request body")
}
