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

func clientChoices() Choices {
	return Choices{"client_type": constants.ClientTypeChoices()}
}

func (h *Handler) ListClients(c echo.Context) error {
	var q dto.ClientListQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	clients, err := h.clients.Filter(repository.ClientFilter{
		ClientType: constants.ClientType(q.ClientType),
		Search:     q.Search,
	}).All(c.Request().Context())
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":   len(clients),
		"clients": clients,
		"filters": q,
		"choices": clientChoices(),
	})
}

func (h *Handler) Buyers(c echo.Context) error {
	clients, err := h.clients.Buyers().All(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(clients), "clients": clients})
}

func (h *Handler) Sellers(c echo.Context) error {
	clients, err := h.clients.Sellers().All(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(clients), "clients": clients})
}

func (h *Handler) GetClient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	detail, err := h.clients.Detail(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *Handler) ClientTasks(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	ctx := c.Request().Context()
	if _, err := h.clients.Get(ctx, id); err != nil {
		return fail(err)
	}
	tasks, err := h.tasks.ByClient(id).All(ctx)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(tasks), "tasks": tasks})
}

const createClientTitle = "Add New Client"

func (h *Handler) NewClientForm(c echo.Context) error {
	form := dto.ClientRequest{InterestedPropertyIDs: []dto.Value{}, OwnedPropertyIDs: []dto.Value{}}
	return renderForm(c, http.StatusOK, createClientTitle, form, nil, clientChoices())
}

func (h *Handler) CreateClient(c echo.Context) error {
	var req dto.ClientRequest
	if err := bindForm(c, &req); err != nil {
		return err
	}
	req = req.Normalized()

	client, links, errs := validators.ParseClient(req)
	if !errs.Empty() {
		errs.Fill(h.clients.Check(client))
		return renderForm(c, http.StatusUnprocessableEntity, createClientTitle, req, errs, clientChoices())
	}
	if err := h.clients.Create(c.Request().Context(), client, links); err != nil {
		return submitFailed(c, err, createClientTitle, req, clientChoices())
	}
	return redirect(c, fmt.Sprintf(constants.ClientCreated, client.Name), "client_detail", client.ID)
}

func (h *Handler) EditClientForm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	client, err := h.clients.Get(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return renderForm(c, http.StatusOK, "Edit Client: "+client.Name, clientForm(client), nil, clientChoices())
}

func (h *Handler) UpdateClient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	ctx := c.Request().Context()
	current, err := h.clients.Get(ctx, id)
	if err != nil {
		return fail(err)
	}
	title := "Edit Client: " + current.Name

	var req dto.ClientRequest
	if err := bindForm(c, &req); err != nil {
		return err
	}
	req = req.Normalized()

	in, links, errs := validators.ParseClient(req)
	if !errs.Empty() {
		errs.Fill(h.clients.Check(in))
		return renderForm(c, http.StatusUnprocessableEntity, title, req, errs, clientChoices())
	}
	client, err := h.clients.Update(ctx, id, in, links)
	if err != nil {
		return submitFailed(c, err, title, req, clientChoices())
	}
	return redirect(c, fmt.Sprintf(constants.ClientUpdated, client.Name), "client_detail", client.ID)
}

func (h *Handler) ConfirmDeleteClient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	client, err := h.clients.Get(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"title": "Delete Client", "client": client})
}

func (h *Handler) DeleteClient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	client, err := h.clients.Delete(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return redirect(c, fmt.Sprintf(constants.ClientDeleted, client.Name), "client_list")
}
