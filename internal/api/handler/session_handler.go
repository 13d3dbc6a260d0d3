package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/selim-ammari/user-management/internal/core/domain"
	"github.com/selim-ammari/user-management/internal/core/ports"
)

type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type sessionRequest struct {
	Lastname  string `json:"lastname"`
	Firstname string `json:"firstname"`
}

type sessionResponse struct {
	User    domain.User `json:"user"`
	Matched bool        `json:"matched"`
	Token   string      `json:"token,omitempty"`
}

// Create resolves a name pair to a session identity. Unknown names yield a
// guest identity without an id.
//
// @Summary      Open a session
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      sessionRequest  true  "Login names"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/session [post]
func (h *SessionHandler) Create(c echo.Context) error {
	var req sessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	res, err := h.sessions.Resolve(c.Request().Context(), req.Lastname, req.Firstname)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: res.User, Matched: res.Matched, Token: res.Token})
}
