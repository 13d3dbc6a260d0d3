package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/selim-ammari/user-management/internal/core/domain"
	"github.com/selim-ammari/user-management/internal/core/ports"
)

type UserHandler struct {
	users ports.UserRepository
}

func NewUserHandler(users ports.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

type userRequest struct {
	Lastname  string `json:"lastname"`
	Firstname string `json:"firstname"`
}

type roleRequest struct {
	Role string `json:"role"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type createUserResponse struct {
	Success bool        `json:"success"`
	User    domain.User `json:"user"`
}

// List returns every stored user.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      500  {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Create adds a user with role "user".
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      userRequest  true  "Names of the new user"
// @Success      200   {object}  createUserResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	user, err := h.users.Create(c.Request().Context(), req.Lastname, req.Firstname)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, createUserResponse{Success: true, User: user})
}

// Update replaces the names of a user. Unknown ids succeed without effect.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "User ID"
// @Param        body  body      userRequest  true  "New names"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	if err := h.users.Update(c.Request().Context(), c.Param("id"), req.Lastname, req.Firstname); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Delete removes a user. The superadmin cannot be deleted.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  successResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// SetRole changes the role of a user.
//
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "User ID"
// @Param        body  body      roleRequest  true  "user or admin"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/users/{id}/role [put]
func (h *UserHandler) SetRole(c echo.Context) error {
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	if err := h.users.SetRole(c.Request().Context(), c.Param("id"), domain.Role(req.Role)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
