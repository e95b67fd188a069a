package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"realestate-crm.com/realestate-crm/internal/constants"
	dto "realestate-crm.com/realestate-crm/internal/data_models"
	"realestate-crm.com/realestate-crm/internal/http/validators"
	repository "realestate-crm.com/realestate-crm/internal/repositories"
)

func collaboratorChoices() Choices {
	return Choices{"role": constants.RoleChoices()}
}

func (h *Handler) ListCollaborators(c echo.Context) error {
	var q dto.CollaboratorListQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	collaborators, err := h.collaborators.Filter(repository.CollaboratorFilter{
		Role:   constants.CollaboratorRole(q.Role),
		Search: q.Search,
	}).All(c.Request().Context())
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":         len(collaborators),
		"collaborators": collaborators,
		"filters":       q,
		"choices":       collaboratorChoices(),
	})
}

func (h *Handler) Agents(c echo.Context) error {
	agents, err := h.collaborators.Agents().All(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(agents), "collaborators": agents})
}

func (h *Handler) GetCollaborator(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	detail, err := h.collaborators.Detail(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *Handler) CollaboratorWorkload(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	workload, err := h.collaborators.Workload(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"collaborator_id": id, "workload": workload})
}

func (h *Handler) CollaboratorProperties(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	ctx := c.Request().Context()
	if _, err := h.collaborators.Get(ctx, id); err != nil {
		return fail(err)
	}
	properties, err := h.properties.ByCollaborator(id).All(ctx)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(properties), "properties": properties})
}

const createCollaboratorTitle = "Add New Collaborator"

func (h *Handler) NewCollaboratorForm(c echo.Context) error {
	form := dto.CollaboratorRequest{Role: dto.Value(constants.DefaultCollaboratorRole)}
	return renderForm(c, http.StatusOK, createCollaboratorTitle, form, nil, collaboratorChoices())
}

func (h *Handler) CreateCollaborator(c echo.Context) error {
	var req dto.CollaboratorRequest
	if err := bindForm(c, &req); err != nil {
		return err
	}
	req = req.Normalized()

	collaborator, errs := validators.ParseCollaborator(req)
	if !errs.Empty() {
		errs.Fill(h.collaborators.Check(collaborator, true))
		return renderForm(c, http.StatusUnprocessableEntity, createCollaboratorTitle, req, errs, collaboratorChoices())
	}
	if err := h.collaborators.Create(c.Request().Context(), collaborator); err != nil {
		return submitFailed(c, err, createCollaboratorTitle, req, collaboratorChoices())
	}
	return redirect(c, fmt.Sprintf(constants.CollaboratorCreated, collaborator.Name), "collaborator_detail", collaborator.ID)
}

func (h *Handler) EditCollaboratorForm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	collaborator, err := h.collaborators.Get(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	title := "Update Collaborator: " + collaborator.Name
	return renderForm(c, http.StatusOK, title, collaboratorForm(collaborator), nil, collaboratorChoices())
}

func (h *Handler) UpdateCollaborator(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	ctx := c.Request().Context()
	current, err := h.collaborators.Get(ctx, id)
	if err != nil {
		return fail(err)
	}
	title := "Update Collaborator: " + current.Name

	var req dto.CollaboratorRequest
	if err := bindForm(c, &req); err != nil {
		return err
	}
	req = req.Normalized()

	in, errs := validators.ParseCollaborator(req)
	if !errs.Empty() {
		errs.Fill(h.collaborators.Check(in, false))
		return renderForm(c, http.StatusUnprocessableEntity, title, req, errs, collaboratorChoices())
	}
	collaborator, err := h.collaborators.Update(ctx, id, in)
	if err != nil {
		return submitFailed(c, err, title, req, collaboratorChoices())
	}
	return redirect(c, fmt.Sprintf(constants.CollaboratorUpdated, collaborator.Name), "collaborator_detail", collaborator.ID)
}

func (h *Handler) ConfirmDeleteCollaborator(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	collaborator, err := h.collaborators.Get(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"title": "Delete Collaborator", "collaborator": collaborator})
}

func (h *Handler) DeleteCollaborator(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	collaborator, err := h.collaborators.Delete(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return redirect(c, fmt.Sprintf(constants.CollaboratorDeleted, collaborator.Name), "collaborator_list")
}
