package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	apperrors "realestate-crm.com/realestate-crm/internal/errors"
	"realestate-crm.com/realestate-crm/internal/validation"
)

const HeaderMessage = "X-Message"

// Choices lists the enumerations a page offers, keyed by field name.
type Choices map[string]interface{}

// FormPage is the payload of every create and update page, and of a
// rejected submission.
type FormPage struct {
	Title          string              `json:"title"`
	Form           interface{}         `json:"form"`
	Errors         map[string][]string `json:"errors"`
	NonFieldErrors []string            `json:"non_field_errors"`
	Choices        Choices             `json:"choices,omitempty"`
}

func renderForm(c echo.Context, status int, title string, form interface{}, errs *validation.Errors, choices Choices) error {
	page := FormPage{
		Title:          title,
		Form:           form,
		Errors:         map[string][]string{},
		NonFieldErrors: []string{},
		Choices:        choices,
	}
	if !errs.Empty() {
		for field, msgs := range errs.Fields {
			page.Errors[field] = msgs
		}
		page.NonFieldErrors = append(page.NonFieldErrors, errs.NonField...)
	}
	return c.JSON(status, page)
}

// submitFailed answers a rejected write: 422 with the re-presented form for
// validation failures, the mapped status for everything else.
func submitFailed(c echo.Context, err error, title string, form interface{}, choices Choices) error {
	var verrs *validation.Errors
	if errors.As(err, &verrs) {
		return renderForm(c, http.StatusUnprocessableEntity, title, form, verrs, choices)
	}
	return fail(err)
}

func fail(err error) error {
	if code := apperrors.StatusCode(err); code != http.StatusInternalServerError {
		return echo.NewHTTPError(code, err.Error())
	}
	log.WithError(err).Error("request failed")
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
}

// redirect sends the client to the named route after a successful write.
func redirect(c echo.Context, message, route string, params ...interface{}) error {
	c.Response().Header().Set(HeaderMessage, message)
	return c.Redirect(http.StatusSeeOther, c.Echo().Reverse(route, params...))
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, apperrors.ErrInvalidID
	}
	return uint(id), nil
}

func bindForm(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return nil
}
