package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"momentzero/internal/models"

	"github.com/gofiber/fiber/v2"
)

// APIError describes a failed API call. IsNetwork is set when no response was
// received; IsDuplicate when the server rejected the username as taken.
// Fields carries per-field validation failures.
type APIError struct {
	Status      int
	Message     string
	Fields      []models.FieldError
	IsDuplicate bool
	IsNetwork   bool
}

func (e *APIError) Error() string {
	if e.IsNetwork {
		return "network error: " + e.Message
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsDuplicate reports whether err is an APIError for a taken username.
func IsDuplicate(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsDuplicate
}

// IsValidation reports whether err is an APIError for rejected input.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && !apiErr.IsNetwork && apiErr.Status == fiber.StatusBadRequest
}

// Summary joins the field failures as "field: message" pairs, or returns
// Message when there are none.
func (e *APIError) Summary() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return strings.Join(parts, "; ")
}

// SavePayload is the body of a create request.
type SavePayload struct {
	Username   string `json:"username"`
	Theme      string `json:"theme"`
	Atmosphere string `json:"atmosphere"`
	Typography string `json:"typography"`
	Message    string `json:"message,omitempty"`
	TargetYear int    `json:"targetYear,omitempty"`
	IsPublic   *bool  `json:"isPublic,omitempty"`
}

// UpdatePayload is the body of an update request. Nil fields are left unchanged.
type UpdatePayload struct {
	Username   string  `json:"username"`
	Message    *string `json:"message,omitempty"`
	Theme      *string `json:"theme,omitempty"`
	Atmosphere *string `json:"atmosphere,omitempty"`
	Typography *string `json:"typography,omitempty"`
	IsPublic   *bool   `json:"isPublic,omitempty"`
}

// MomentAPI is the server surface the Syncer depends on.
type MomentAPI interface {
	SaveMoment(ctx context.Context, p SavePayload) (string, error)
	UpdateMoment(ctx context.Context, p UpdatePayload) (*models.MomentView, error)
	GetMoment(ctx context.Context, username string) (*models.MomentView, error)
	DeleteMoment(ctx context.Context, username string) error
}

// APIClient calls the moment API over HTTP.
type APIClient struct {
	baseURL string
	timeout time.Duration
	http    *fiber.Client
}

var _ MomentAPI = (*APIClient)(nil)

// NewAPIClient returns a client for the API rooted at baseURL (e.g. http://host:8375/api).
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &fiber.Client{UserAgent: "momentzero-client"},
	}
}

// SaveMoment creates a moment and returns the username the server stored.
func (c *APIClient) SaveMoment(ctx context.Context, p SavePayload) (string, error) {
	var out struct {
		Success  bool   `json:"success"`
		Username string `json:"username"`
	}
	if err := c.do(ctx, fiber.MethodPost, "/moments", p, &out); err != nil {
		return "", err
	}
	return out.Username, nil
}

// UpdateMoment applies p and returns the stored moment.
func (c *APIClient) UpdateMoment(ctx context.Context, p UpdatePayload) (*models.MomentView, error) {
	var out models.MomentView
	if err := c.do(ctx, fiber.MethodPut, "/moments", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMoment fetches the moment owned by username.
func (c *APIClient) GetMoment(ctx context.Context, username string) (*models.MomentView, error) {
	var out models.MomentView
	if err := c.do(ctx, fiber.MethodGet, "/moments/"+url.PathEscape(username), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMoment removes the moment owned by username.
func (c *APIClient) DeleteMoment(ctx context.Context, username string) error {
	return c.do(ctx, fiber.MethodDelete, "/moments/"+url.PathEscape(username), nil, nil)
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	if err := ctx.Err(); err != nil {
		return &APIError{Message: err.Error(), IsNetwork: true}
	}

	agent := c.agent(method, c.baseURL+path)
	agent.Timeout(c.timeoutFor(ctx))
	if body != nil {
		agent.JSON(body)
	}

	status, raw, errs := agent.Bytes()
	if len(errs) > 0 {
		return &APIError{Message: errors.Join(errs...).Error(), IsNetwork: true}
	}
	if status >= fiber.StatusBadRequest {
		return decodeError(status, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *APIClient) agent(method, uri string) *fiber.Agent {
	switch method {
	case fiber.MethodPost:
		return c.http.Post(uri)
	case fiber.MethodPut:
		return c.http.Put(uri)
	case fiber.MethodDelete:
		return c.http.Delete(uri)
	default:
		return c.http.Get(uri)
	}
}

// timeoutFor shortens the client timeout to ctx's deadline when that comes first.
func (c *APIClient) timeoutFor(ctx context.Context) time.Duration {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	return timeout
}

func decodeError(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status, Message: fiber.ErrInternalServerError.Message}
	var body models.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Fields = body.Fields
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		apiErr.Message = text
	}
	apiErr.IsDuplicate = status == fiber.StatusConflict || apiErr.Message == models.MsgUsernameTaken
	return apiErr
}
