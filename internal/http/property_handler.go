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

func propertyChoices() Choices {
	return Choices{
		"status":        constants.PropertyStatusChoices(),
		"property_type": constants.PropertyTypeChoices(),
	}
}

func (h *Handler) ListProperties(c echo.Context) error {
	var q dto.PropertyListQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	properties, err := h.properties.Filter(repository.PropertyFilter{
		Status:       constants.PropertyStatus(q.Status),
		PropertyType: constants.PropertyType(q.PropertyType),
		Search:       q.Search,
	}).All(c.Request().Context())
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":      len(properties),
		"properties": properties,
		"filters":    q,
		"choices":    propertyChoices(),
	})
}

func (h *Handler) AvailableProperties(c echo.Context) error {
	properties, err := h.properties.Available().All(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(properties), "properties": properties})
}

func (h *Handler) PropertyStatistics(c echo.Context) error {
	stats, err := h.properties.Statistics(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetProperty(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	detail, err := h.properties.Detail(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *Handler) PropertyTasks(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	ctx := c.Request().Context()
	if _, err := h.properties.Get(ctx, id); err != nil {
		return fail(err)
	}
	tasks, err := h.tasks.ByProperty(id).All(ctx)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(tasks), "tasks": tasks})
}

const createPropertyTitle = "Create New Property"

func (h *Handler) NewPropertyForm(c echo.Context) error {
	form := dto.PropertyRequest{Status: dto.Value(constants.DefaultPropertyStatus)}
	return renderForm(c, http.StatusOK, createPropertyTitle, form, nil, propertyChoices())
}

func (h *Handler) CreateProperty(c echo.Context) error {
	var req dto.PropertyRequest
	if err := bindForm(c, &req); err != nil {
		return err
	}
	req = req.Normalized()

	p, errs := validators.ParseProperty(req)
	if !errs.Empty() {
		errs.Fill(h.properties.Check(p, true))
		return renderForm(c, http.StatusUnprocessableEntity, createPropertyTitle, req, errs, propertyChoices())
	}
	if err := h.properties.Create(c.Request().Context(), p); err != nil {
		return submitFailed(c, err, createPropertyTitle, req, propertyChoices())
	}
	return redirect(c, fmt.Sprintf(constants.PropertyCreated, p.Address), "property_detail", p.ID)
}

func (h *Handler) EditPropertyForm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	p, err := h.properties.Get(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	title := "Update Property: " + p.Address
	return renderForm(c, http.StatusOK, title, propertyForm(p), nil, propertyChoices())
}

func (h *Handler) UpdateProperty(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	ctx := c.Request().Context()
	current, err := h.properties.Get(ctx, id)
	if err != nil {
		return fail(err)
	}
	title := "Update Property: " + current.Address

	var req dto.PropertyRequest
	if err := bindForm(c, &req); err != nil {
		return err
	}
	req = req.Normalized()

	in, errs := validators.ParseProperty(req)
	if !errs.Empty() {
		errs.Fill(h.properties.Check(in, false))
		return renderForm(c, http.StatusUnprocessableEntity, title, req, errs, propertyChoices())
	}
	p, err := h.properties.Update(ctx, id, in)
	if err != nil {
		return submitFailed(c, err, title, req, propertyChoices())
	}
	return redirect(c, fmt.Sprintf(constants.PropertyUpdated, p.Address), "property_detail", p.ID)
}

func (h *Handler) ConfirmDeleteProperty(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	p, err := h.properties.Get(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"title": "Delete Property", "property": p})
}

func (h *Handler) DeleteProperty(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	p, err := h.properties.Delete(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return redirect(c, fmt.Sprintf(constants.PropertyDeleted, p.Address), "property_list")
}

func (h *Handler) MarkPropertySold(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	p, err := h.properties.MarkAsSold(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return redirect(c, fmt.Sprintf(constants.PropertySoldMsg, p.Address), "property_detail", p.ID)
}

func (h *Handler) MarkPropertyPending(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(err)
	}
	p, err := h.properties.MarkAsPending(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return redirect(c, fmt.Sprintf(constants.PropertyPendMsg, p.Address), "property_detail", p.ID)
}
