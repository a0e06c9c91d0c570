package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/companyhq/company-api/internal/core/domain"
	"github.com/companyhq/company-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type listUsersResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Users      []*domain.User `json:"users"`
		Pagination pagination     `json:"pagination"`
	} `json:"data"`
}

type userResponse struct {
	Success bool         `json:"success"`
	Data    *domain.User `json:"data"`
}

type updateStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// List returns a page of users. Admin only (enforced by the RBAC gate at
// route registration).
func (h *UserHandler) List(c echo.Context) error {
	filter := ports.ListUsersFilter{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 10),
	}
	// Clamp here too so the echoed pagination block matches what ran.
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	if roleParam := c.QueryParam("role"); roleParam != "" {
		role, err := domain.ParseRole(roleParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid role filter")
		}
		filter.Role = role
	}
	if activeParam := c.QueryParam("isActive"); activeParam != "" {
		active, err := strconv.ParseBool(activeParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid isActive filter")
		}
		filter.IsActive = &active
	}

	users, total, err := h.userService.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	resp := listUsersResponse{Success: true}
	resp.Data.Users = users
	resp.Data.Pagination = pagination{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}
	return c.JSON(http.StatusOK, resp)
}

// Profile returns the caller's own user record.
func (h *UserHandler) Profile(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetByID(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, Data: user})
}

// GetByID returns a user by id. Admin only.
func (h *UserHandler) GetByID(c echo.Context) error {
	user, err := h.userService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, Data: user})
}

// UpdateStatus activates or deactivates an account. Admin only.
// Deactivation revokes the subject's access on their next gated request.
func (h *UserHandler) UpdateStatus(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.IsActive == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "isActive is required")
	}

	user, err := h.userService.SetActive(c.Request().Context(), identity, c.Param("id"), *req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, Data: user})
}

func queryInt(c echo.Context, name string, fallback int) int {
	v := c.QueryParam(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
