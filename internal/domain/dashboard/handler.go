package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Beggas2/Alento/internal/domain/identity"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/dashboard", h.GetDashboard)
}

func (h *Handler) GetDashboard(c echo.Context) error {
	role := c.QueryParam("role")
	if role == "" {
		role = identity.RoleProfessional
	}

	resp, err := h.svc.Dashboard(c.Request().Context(), role)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, resp)
}
