package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"realestate-crm.com/realestate-crm/internal/services"
)

type Handler struct {
	collaborators *services.CollaboratorService
	properties    *services.PropertyService
	clients       *services.ClientService
	tasks         *services.TaskService
	dashboard     *services.DashboardService
}

func NewHandler(s *services.Services) *Handler {
	return &Handler{
		collaborators: s.Collaborators,
		properties:    s.Properties,
		clients:       s.Clients,
		tasks:         s.Tasks,
		dashboard:     s.Dashboard,
	}
}

func (h *Handler) Home(c echo.Context) error {
	stats, err := h.dashboard.Stats(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, stats)
}
