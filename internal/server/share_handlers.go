package server

import (
	"strings"

	"momentzero/internal/countdown"
	"momentzero/internal/models"
	"momentzero/internal/service"
	"momentzero/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type shareResponse struct {
	*service.ShareView
	URL string `json:"url,omitempty"`
}

// ShareMoment handles GET /api/u/:username
// @Summary Public share view
// @Description Moment fields with a countdown to its target year. Private moments are not found.
// @Tags share
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} service.ShareView
// @Failure 404 {object} models.ErrorResponse
// @Router /u/{username} [get]
func (s *Server) ShareMoment(c *fiber.Ctx) error {
	username := c.Params("username")
	ctx, cancel := s.requestContext(c, username)
	defer cancel()

	view, err := s.momentService.ShareView(ctx, username)
	if err != nil {
		return respondServiceError(ctx, c, err)
	}
	return c.JSON(shareResponse{ShareView: view, URL: s.shareURL(username)})
}

func (s *Server) shareURL(username string) string {
	base := strings.TrimRight(s.config.PublicBaseURL, "/")
	if base == "" {
		return ""
	}
	return base + "/u/" + username
}

// Countdown handles GET /api/countdown
// @Summary Countdown to New Year
// @Tags share
// @Produce json
// @Param year query int false "Target year (defaults to next year)"
// @Success 200 {object} object{year=int,target=string,countdown=countdown.Remaining}
// @Failure 400 {object} models.ErrorResponse
// @Router /countdown [get]
func (s *Server) Countdown(c *fiber.Ctx) error {
	now := s.now()
	year := c.QueryInt("year", countdown.NextYear(now))
	if err := validation.ValidateTargetYear(year); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError([]models.FieldError{{Field: "year", Message: err.Error()}}))
	}

	return c.JSON(fiber.Map{
		"year":      year,
		"target":    countdown.Target(now, year),
		"countdown": countdown.Until(now, year),
	})
}
