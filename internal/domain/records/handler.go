package records

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Beggas2/Alento/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, requireUser echo.MiddlewareFunc) {
	e.POST("/records", h.CreateRecord, requireUser)
}

func (h *Handler) CreateRecord(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c.Request().Context())
	if !ok {
		c.Response().Header().Set("WWW-Authenticate", "Bearer")
		return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
	}

	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rec, err := h.svc.Create(c.Request().Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrNotPatient) {
			return echo.NewHTTPError(http.StatusNotFound, "Paciente não encontrado")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, rec)
}
