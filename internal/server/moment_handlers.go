package server

import (
	"momentzero/internal/featureflags"
	"momentzero/internal/middleware"
	"momentzero/internal/models"
	"momentzero/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createMomentRequest struct {
	Username   string `json:"username"`
	Theme      string `json:"theme"`
	Atmosphere string `json:"atmosphere"`
	Typography string `json:"typography"`
	Message    string `json:"message"`
	TargetYear *int   `json:"targetYear"`
	IsPublic   *bool  `json:"isPublic"`
}

type updateMomentRequest struct {
	Username   string  `json:"username"`
	Message    *string `json:"message"`
	Theme      *string `json:"theme"`
	Atmosphere *string `json:"atmosphere"`
	Typography *string `json:"typography"`
	IsPublic   *bool   `json:"isPublic"`
}

// CreateMoment handles POST /api/moments
// @Summary Seal a moment
// @Description Claim a username and store its moment
// @Tags moments
// @Accept json
// @Produce json
// @Param request body object{username=string,theme=string,atmosphere=string,typography=string,message=string,targetYear=int,isPublic=bool} true "Moment"
// @Success 201 {object} object{success=bool,username=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /moments [post]
func (s *Server) CreateMoment(c *fiber.Ctx) error {
	var req createMomentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, invalidBody())
	}

	ctx, cancel := s.requestContext(c, req.Username)
	defer cancel()

	res, err := s.momentService.CreateMoment(ctx, service.CreateMomentInput{
		Username:   req.Username,
		Theme:      req.Theme,
		Atmosphere: req.Atmosphere,
		Typography: req.Typography,
		Message:    req.Message,
		TargetYear: req.TargetYear,
		IsPublic:   req.IsPublic,
	})
	middleware.RecordMomentOperation("create", outcome(err))
	if err != nil {
		return respondServiceError(ctx, c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"username": res.Username,
	})
}

// GetMoment handles GET /api/moments/:username
// @Summary Get a moment
// @Tags moments
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} models.MomentView
// @Failure 404 {object} models.ErrorResponse
// @Router /moments/{username} [get]
func (s *Server) GetMoment(c *fiber.Ctx) error {
	username := c.Params("username")
	ctx, cancel := s.requestContext(c, username)
	defer cancel()

	view, err := s.momentService.GetMoment(ctx, username)
	middleware.RecordMomentOperation("get", outcome(err))
	if err != nil {
		return respondServiceError(ctx, c, err)
	}
	return c.JSON(view)
}

// UpdateMoment handles PUT /api/moments
// @Summary Update a moment
// @Description Change message, style or visibility. A deleted moment is recreated with defaults.
// @Tags moments
// @Accept json
// @Produce json
// @Param request body object{username=string,message=string,theme=string,atmosphere=string,typography=string,isPublic=bool} true "Changes"
// @Success 200 {object} models.MomentView
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /moments [put]
func (s *Server) UpdateMoment(c *fiber.Ctx) error {
	var req updateMomentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, invalidBody())
	}
	return s.applyUpdate(c, req)
}

// PatchMoment handles PATCH /api/moments/:username
// @Summary Update a moment by path
// @Tags moments
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param request body object{message=string,theme=string,atmosphere=string,typography=string,isPublic=bool} true "Changes"
// @Success 200 {object} models.MomentView
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /moments/{username} [patch]
func (s *Server) PatchMoment(c *fiber.Ctx) error {
	var req updateMomentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, invalidBody())
	}
	req.Username = c.Params("username")
	return s.applyUpdate(c, req)
}

func (s *Server) applyUpdate(c *fiber.Ctx, req updateMomentRequest) error {
	ctx, cancel := s.requestContext(c, req.Username)
	defer cancel()

	view, err := s.momentService.UpdateMoment(ctx, service.UpdateMomentInput{
		Username:   req.Username,
		Message:    req.Message,
		Theme:      req.Theme,
		Atmosphere: req.Atmosphere,
		Typography: req.Typography,
		IsPublic:   req.IsPublic,
	})
	middleware.RecordMomentOperation("update", outcome(err))
	if err != nil {
		return respondServiceError(ctx, c, err)
	}
	return c.JSON(view)
}

// DeleteMoment handles DELETE /api/moments/:username
// @Summary Delete a moment
// @Description Idempotent; the account and its username are kept.
// @Tags moments
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} object{success=bool}
// @Failure 500 {object} models.ErrorResponse
// @Router /moments/{username} [delete]
func (s *Server) DeleteMoment(c *fiber.Ctx) error {
	username := c.Params("username")
	ctx, cancel := s.requestContext(c, username)
	defer cancel()

	err := s.momentService.DeleteMoment(ctx, username)
	middleware.RecordMomentOperation("delete", outcome(err))
	if err != nil {
		return respondServiceError(ctx, c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// DeleteAccount handles DELETE /api/accounts/:username
// @Summary Delete an account
// @Description Removes the account with its moments and frees the username.
// @Tags accounts
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} object{success=bool}
// @Failure 500 {object} models.ErrorResponse
// @Router /accounts/{username} [delete]
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	username := c.Params("username")
	ctx, cancel := s.requestContext(c, username)
	defer cancel()

	err := s.momentService.DeleteAccount(ctx, username)
	middleware.RecordMomentOperation("delete_account", outcome(err))
	if err != nil {
		return respondServiceError(ctx, c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// CheckUsername handles GET /api/usernames/:username
// @Summary Check username availability
// @Tags accounts
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} service.UsernameStatus
// @Router /usernames/{username} [get]
func (s *Server) CheckUsername(c *fiber.Ctx) error {
	username := c.Params("username")
	ctx, cancel := s.requestContext(c, username)
	defer cancel()

	status, err := s.momentService.CheckUsername(ctx, username)
	if err != nil {
		return respondServiceError(ctx, c, err)
	}
	return c.JSON(status)
}

// ListPublicMoments handles GET /api/moments
// @Summary List public moments
// @Tags moments
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} service.PublicPage
// @Failure 404 {object} models.ErrorResponse
// @Router /moments [get]
func (s *Server) ListPublicMoments(c *fiber.Ctx) error {
	if !s.featureFlags.Enabled(featureflags.PublicFeed, c.IP()) {
		return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("Route", c.Path()))
	}

	ctx, cancel := s.requestContext(c, "")
	defer cancel()

	page := parsePagination(c, 20)
	result, err := s.momentService.ListPublic(ctx, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(ctx, c, err)
	}
	return c.JSON(result)
}
