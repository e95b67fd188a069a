package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"realestate-crm.com/realestate-crm/internal/constants"
	dto "realestate-crm.com/realestate-crm/internal/data_models"
	apperrors "realestate-crm.com/realestate-crm/internal/errors"
	"realestate-crm.com/realestate-crm/internal/http/validators"
	repository "realestate-crm.com/realestate-crm/internal/repositories"
)

func taskChoices() Choices {
	return Choices{
		"status":   constants.TaskStatusChoices(),
		"priority": constants.TaskPriorityChoices(),
	}
}

func (h *Handler) ListTasks(c echo.Context) error {
	var q dto.TaskListQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	filter := repository.TaskFilter{
		Status:   constants.TaskStatus(q.Status),
		Priority: constants.TaskPriority(q.Priority),
		Search:   q.Search,
	}
	if q.AssignedTo != "" {
		id, err := strconv.ParseUint(q.AssignedTo, 10, 0)
		if err != nil {
			return fail(apperrors.ErrInvalidFilter)
		}
		filter.AssignedTo = uint(id)
	}

	ctx := c.Request().Context()
	tasks, err := h.tasks.Filter(filter).All(ctx)
	if err != nil {
		return fail(err)
	}
	collaborators, err := h.collaborators.Filter(repository.CollaboratorFilter{}).All(ctx)
	if err != nil {
		return fail(err)
	}

	choices := taskChoices()
	choices["assigned_to"] = collaborators
	return c.JSON(http.StatusOK, echo.Map{
		"count":   len(tasks),
		"tasks":   tasks,
		"filters": q,
		"choices": choices,
	})
}

func (h *Handler) PendingTasks(c echo.Context) error {
	tasks, err := h.tasks.Pending().All(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(tasks), "tasks": tasks})
}

func (h *Handler) OverdueTasks(c echo.Context) error {
	tasks, err := h.tasks.Overdue().All(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(tasks), "tasks": tasks})
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	detail, err := h.tasks.Detail(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, detail)
}

const createTaskTitle = "Create New Task"

func (h *Handler) NewTaskForm(c echo.Context) error {
	form := dto.TaskRequest{
		Status:   dto.Value(constants.DefaultTaskStatus),
		Priority: dto.Value(constants.DefaultTaskPriority),
	}
	return renderForm(c, http.StatusOK, createTaskTitle, form, nil, taskChoices())
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.TaskRequest
	if err := bindForm(c, &req); err != nil {
		return err
	}
	req = req.Normalized()

	task, errs := validators.ParseTask(req)
	if !errs.Empty() {
		errs.Fill(h.tasks.Check(task, true))
		return renderForm(c, http.StatusUnprocessableEntity, createTaskTitle, req, errs, taskChoices())
	}
	if err := h.tasks.Create(c.Request().Context(), task); err != nil {
		return submitFailed(c, err, createTaskTitle, req, taskChoices())
	}
	return redirect(c, fmt.Sprintf(constants.TaskCreated, task.Title), "task_detail", task.ID)
}

func (h *Handler) EditTaskForm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	task, err := h.tasks.Get(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return renderForm(c, http.StatusOK, "Update Task: "+task.Title, taskForm(task), nil, taskChoices())
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	ctx := c.Request().Context()
	current, err := h.tasks.Get(ctx, id)
	if err != nil {
		return fail(err)
	}
	title := "Update Task: " + current.Title

	var req dto.TaskRequest
	if err := bindForm(c, &req); err != nil {
		return err
	}
	req = req.Normalized()

	in, errs := validators.ParseTask(req)
	if !errs.Empty() {
		errs.Fill(h.tasks.Check(in, false))
		return renderForm(c, http.StatusUnprocessableEntity, title, req, errs, taskChoices())
	}
	task, err := h.tasks.Update(ctx, id, in)
	if err != nil {
		return submitFailed(c, err, title, req, taskChoices())
	}
	return redirect(c, fmt.Sprintf(constants.TaskUpdated, task.Title), "task_detail", task.ID)
}

func (h *Handler) ConfirmDeleteTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	task, err := h.tasks.Get(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"title": "Delete Task", "task": task})
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	task, err := h.tasks.Delete(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return redirect(c, fmt.Sprintf(constants.TaskDeleted, task.Title), "task_list")
}

func (h *Handler) CompleteTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	task, err := h.tasks.MarkComplete(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return redirect(c, fmt.Sprintf(constants.TaskCompleted, task.Title), "task_detail", task.ID)
}

func (h *Handler) StartTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	task, err := h.tasks.MarkInProgress(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return redirect(c, fmt.Sprintf(constants.TaskInProgress, task.Title), "task_detail", task.ID)
}
