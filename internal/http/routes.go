package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "realestate-crm.com/realestate-crm/internal/http/middlewares"
)

// NewServer builds the echo instance serving h.
func NewServer(h *Handler, rateLimitPerMinute int) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = SonicSerializer{}

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.AccessLog())

	Register(e, h, rateLimitPerMinute)
	return e
}

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.GET("/", h.Home).Name = "home"

	crud(e, "properties", "property", resource{
		list: h.ListProperties, detail: h.GetProperty,
		newForm: h.NewPropertyForm, create: h.CreateProperty,
		editForm: h.EditPropertyForm, update: h.UpdateProperty,
		confirmDelete: h.ConfirmDeleteProperty, delete: h.DeleteProperty,
	})
	e.GET("/properties/available", h.AvailableProperties)
	e.GET("/properties/statistics", h.PropertyStatistics)
	e.GET("/properties/:id/tasks", h.PropertyTasks)
	e.POST("/properties/:id/mark-sold", h.MarkPropertySold)
	e.POST("/properties/:id/mark-pending", h.MarkPropertyPending)

	crud(e, "clients", "client", resource{
		list: h.ListClients, detail: h.GetClient,
		newForm: h.NewClientForm, create: h.CreateClient,
		editForm: h.EditClientForm, update: h.UpdateClient,
		confirmDelete: h.ConfirmDeleteClient, delete: h.DeleteClient,
	})
	e.GET("/clients/buyers", h.Buyers)
	e.GET("/clients/sellers", h.Sellers)
	e.GET("/clients/:id/tasks", h.ClientTasks)

	crud(e, "tasks", "task", resource{
		list: h.ListTasks, detail: h.GetTask,
		newForm: h.NewTaskForm, create: h.CreateTask,
		editForm: h.EditTaskForm, update: h.UpdateTask,
		confirmDelete: h.ConfirmDeleteTask, delete: h.DeleteTask,
	})
	e.GET("/tasks/pending", h.PendingTasks)
	e.GET("/tasks/overdue", h.OverdueTasks)
	e.POST("/tasks/:id/complete", h.CompleteTask)
	e.POST("/tasks/:id/start", h.StartTask)

	crud(e, "collaborators", "collaborator", resource{
		list: h.ListCollaborators, detail: h.GetCollaborator,
		newForm: h.NewCollaboratorForm, create: h.CreateCollaborator,
		editForm: h.EditCollaboratorForm, update: h.UpdateCollaborator,
		confirmDelete: h.ConfirmDeleteCollaborator, delete: h.DeleteCollaborator,
	})
	e.GET("/collaborators/agents", h.Agents)
	e.GET("/collaborators/:id/workload", h.CollaboratorWorkload)
	e.GET("/collaborators/:id/properties", h.CollaboratorProperties)
}

type resource struct {
	list, detail          echo.HandlerFunc
	newForm, create       echo.HandlerFunc
	editForm, update      echo.HandlerFunc
	confirmDelete, delete echo.HandlerFunc
}

// crud registers the list/detail/create/update/delete routes of one entity.
// Routes are named <name>_list, <name>_detail and so on.
func crud(e *echo.Echo, prefix, name string, r resource) {
	base := "/" + prefix

	e.GET(base, r.list).Name = name + "_list"
	e.GET(base+"/create", r.newForm).Name = name + "_create"
	e.POST(base+"/create", r.create)
	e.GET(base+"/:id", r.detail).Name = name + "_detail"
	e.GET(base+"/:id/update", r.editForm).Name = name + "_update"
	e.Match([]string{http.MethodPost, http.MethodPut}, base+"/:id/update", r.update)
	e.GET(base+"/:id/delete", r.confirmDelete).Name = name + "_delete"
	e.Match([]string{http.MethodPost, http.MethodDelete}, base+"/:id/delete", r.delete)
}
