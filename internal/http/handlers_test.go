package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "realestate-crm.com/realestate-crm/internal/models"
	"realestate-crm.com/realestate-crm/internal/services"
)

var today = time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)

func setupServer(t *testing.T) *echo.Echo {
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Collaborator{}, &model.Property{}, &model.Client{}, &model.Task{}))

	svc := services.New(db, nil)
	svc.SetClock(func() time.Time { return today })
	return NewServer(NewHandler(svc), 1000)
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doForm(e *echo.Echo, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func decodeForm(t *testing.T, rec *httptest.ResponseRecorder) FormPage {
	t.Helper()

	var page FormPage
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &page), rec.Body.String())
	return page
}

const propertyJSON = `{"address":"1 Main St","price":450000,"property_type":"HOUSE","listing_date":"2026-05-01","bedrooms":"3"}`

func TestCreateProperty_RedirectsWithMessage(t *testing.T) {
	e := setupServer(t)

	rec := doJSON(e, http.MethodPost, "/properties/create", propertyJSON)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "/properties/1", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, `Property "1 Main St" created successfully!`, rec.Header().Get(HeaderMessage))

	rec = doJSON(e, http.MethodGet, "/properties/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "1 Main St", body["address"])
	assert.Equal(t, "Available", body["status_label"])
	assert.Equal(t, "House", body["property_type_label"])
	assert.Equal(t, true, body["is_available"])
	assert.EqualValues(t, 3, body["bedrooms"])
}

func TestCreateProperty_FormErrorsReturn422(t *testing.T) {
	e := setupServer(t)

	rec := doForm(e, "/properties/create", url.Values{
		"address":       {"  2 Elm St  "},
		"price":         {"abc"},
		"property_type": {"HOUSE"},
		"listing_date":  {"not a date"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	page := decodeForm(t, rec)
	assert.Equal(t, "Create New Property", page.Title)
	assert.Equal(t, []string{"Enter a number."}, page.Errors["price"])
	assert.Equal(t, []string{"Enter a valid date."}, page.Errors["listing_date"])
	assert.Empty(t, page.NonFieldErrors)
	assert.Contains(t, page.Choices, "property_type")

	form, ok := page.Form.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "2 Elm St", form["address"])
	assert.Equal(t, "abc", form["price"])
}

func TestCreateProperty_DomainRulesReturn422(t *testing.T) {
	e := setupServer(t)

	rec := doJSON(e, http.MethodPost, "/properties/create",
		`{"address":"1 Main St","price":"0","property_type":"HOUSE","listing_date":"2026-06-01"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	page := decodeForm(t, rec)
	assert.Equal(t, []string{"Price must be greater than 0."}, page.Errors["price"])
	assert.Equal(t, []string{"Listing date cannot be in the future."}, page.Errors["listing_date"])

	rec = doJSON(e, http.MethodGet, "/properties", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, decode(t, rec)["count"])
}

func TestCreateProperty_ReportsEveryField(t *testing.T) {
	e := setupServer(t)

	rec := doForm(e, "/properties/create", url.Values{
		"address":      {"   "},
		"price":        {"abc"},
		"listing_date": {"2026-05-01"},
		"bedrooms":     {"-2"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	errs := decodeForm(t, rec).Errors
	assert.Equal(t, []string{"Enter a number."}, errs["price"])
	assert.Equal(t, []string{"This field is required."}, errs["address"])
	assert.Equal(t, []string{"This field is required."}, errs["property_type"])
	assert.Equal(t, []string{"Bedrooms cannot be negative."}, errs["bedrooms"])
}

func TestUpdateProperty_KeepsSoldStatus(t *testing.T) {
	e := setupServer(t)
	require.Equal(t, http.StatusSeeOther, doJSON(e, http.MethodPost, "/properties/create", propertyJSON).Code)
	require.Equal(t, http.StatusSeeOther, doJSON(e, http.MethodPost, "/properties/1/mark-sold", "").Code)

	rec := doJSON(e, http.MethodPost, "/properties/1/update", propertyJSON)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"This field is required."}, decodeForm(t, rec).Errors["status"])

	rec = doJSON(e, http.MethodGet, "/properties/1", "")
	assert.Equal(t, "SOLD", decode(t, rec)["status"])

	rec = doJSON(e, http.MethodPost, "/properties/1/update",
		`{"address":"1 Main St","price":460000,"property_type":"HOUSE","status":"SOLD","listing_date":"2026-05-01"}`)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/properties/1", "")
	assert.Equal(t, "SOLD", decode(t, rec)["status"])
}

func TestUpdateTask_KeepsCompleteStatus(t *testing.T) {
	e := setupServer(t)
	require.Equal(t, http.StatusSeeOther, doJSON(e, http.MethodPost, "/tasks/create",
		`{"title":"Call","due_date":"2026-05-21","status":"COMPLETE"}`).Code)

	rec := doJSON(e, http.MethodPost, "/tasks/1/update", `{"title":"Call back","due_date":"2026-05-21"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decodeForm(t, rec).Errors
	assert.Equal(t, []string{"This field is required."}, errs["status"])
	assert.Equal(t, []string{"This field is required."}, errs["priority"])

	rec = doJSON(e, http.MethodGet, "/tasks/1", "")
	body := decode(t, rec)
	assert.Equal(t, "COMPLETE", body["status"])
	assert.Equal(t, "Call", body["title"])
}

func TestPropertyRoutes_NotFound(t *testing.T) {
	e := setupServer(t)

	for _, target := range []string{"/properties/abc", "/properties/0", "/properties/999", "/properties/999/update", "/properties/999/tasks"} {
		rec := doJSON(e, http.MethodGet, target, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}
	rec := doJSON(e, http.MethodPost, "/properties/999/mark-sold", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMarkPropertySold(t *testing.T) {
	e := setupServer(t)
	require.Equal(t, http.StatusSeeOther, doJSON(e, http.MethodPost, "/properties/create", propertyJSON).Code)

	rec := doJSON(e, http.MethodPost, "/properties/1/mark-sold", "")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, `Property "1 Main St" marked as sold.`, rec.Header().Get(HeaderMessage))

	rec = doJSON(e, http.MethodGet, "/properties/statistics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode(t, rec)
	assert.EqualValues(t, 1, stats["sold"])
	assert.EqualValues(t, 0, stats["available"])

	rec = doJSON(e, http.MethodGet, "/properties?status=SOLD", "")
	assert.EqualValues(t, 1, decode(t, rec)["count"])
	rec = doJSON(e, http.MethodGet, "/properties?status=bogus", "")
	assert.EqualValues(t, 0, decode(t, rec)["count"])
}

func TestListTasks_BadAssigneeFilter(t *testing.T) {
	e := setupServer(t)

	rec := doJSON(e, http.MethodGet, "/tasks?assigned_to=someone", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodGet, "/tasks?assigned_to=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 0, body["count"])
	filters := body["filters"].(map[string]interface{})
	assert.Equal(t, "5", filters["assigned_to"])
}

func TestTaskLifecycle(t *testing.T) {
	e := setupServer(t)
	require.Equal(t, http.StatusSeeOther, doJSON(e, http.MethodPost, "/properties/create", propertyJSON).Code)
	require.Equal(t, http.StatusSeeOther, doJSON(e, http.MethodPost, "/clients/create",
		`{"name":"Ann","email":"ann@example.com","phone":"555 123 4567","client_type":"BUYER"}`).Code)

	rec := doJSON(e, http.MethodPost, "/tasks/create",
		`{"title":"Both","due_date":"2026-05-21","related_property_id":1,"client_id":1}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	page := decodeForm(t, rec)
	assert.Equal(t, []string{"A task can be assigned to either a property or a client, not both."}, page.NonFieldErrors)
	assert.Equal(t, "Create New Task", page.Title)

	rec = doJSON(e, http.MethodPost, "/tasks/create",
		`{"title":"Show house","due_date":"2026-05-21","related_property_id":1,"priority":"HIGH"}`)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "/tasks/1", rec.Header().Get(echo.HeaderLocation))

	rec = doJSON(e, http.MethodGet, "/properties/1/tasks", "")
	assert.EqualValues(t, 1, decode(t, rec)["count"])

	rec = doJSON(e, http.MethodPost, "/tasks/1/complete", "")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, `Task "Show house" marked as complete.`, rec.Header().Get(HeaderMessage))

	rec = doJSON(e, http.MethodGet, "/tasks/1", "")
	body := decode(t, rec)
	assert.Equal(t, "COMPLETE", body["status"])
	assert.Equal(t, "Complete", body["status_label"])
	assert.Equal(t, true, body["is_high_priority"])

	rec = doJSON(e, http.MethodGet, "/tasks/pending", "")
	assert.EqualValues(t, 0, decode(t, rec)["count"])

	rec = doJSON(e, http.MethodGet, "/tasks/1/update", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Update Task: Show house", decodeForm(t, rec).Title)

	rec = doJSON(e, http.MethodDelete, "/tasks/1/delete", "")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/tasks", rec.Header().Get(echo.HeaderLocation))
}

func TestCreateClient_FormWithLinks(t *testing.T) {
	e := setupServer(t)
	require.Equal(t, http.StatusSeeOther, doJSON(e, http.MethodPost, "/properties/create", propertyJSON).Code)

	rec := doForm(e, "/clients/create", url.Values{
		"name":                    {"Bob"},
		"email":                   {"bob@example.com"},
		"phone":                   {"(555) 987-6543"},
		"client_type":             {"BOTH"},
		"interested_property_ids": {"1"},
		"owned_property_ids":      {"1"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, `Client "Bob" has been created.`, rec.Header().Get(HeaderMessage))

	rec = doJSON(e, http.MethodGet, "/clients/1", "")
	body := decode(t, rec)
	assert.EqualValues(t, 1, body["total_properties_interested"])
	assert.Equal(t, true, body["is_seller"])

	rec = doForm(e, "/clients/create", url.Values{
		"name":        {"Bobby"},
		"email":       {"bob@example.com"},
		"phone":       {"5559876543"},
		"client_type": {"BUYER"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	page := decodeForm(t, rec)
	assert.Equal(t, "Add New Client", page.Title)
	assert.Equal(t, []string{"Client with this email already exists."}, page.Errors["email"])

	rec = doJSON(e, http.MethodGet, "/clients/buyers", "")
	assert.EqualValues(t, 1, decode(t, rec)["count"])
}

func TestCollaboratorDelete(t *testing.T) {
	e := setupServer(t)
	rec := doJSON(e, http.MethodPost, "/collaborators/create", `{"name":"Jane","email":"jane@example.com"}`)
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/collaborators/1/delete", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Delete Collaborator", decode(t, rec)["title"])

	rec = doJSON(e, http.MethodPost, "/collaborators/1/delete", "")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/collaborators", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, `Collaborator "Jane" deleted successfully!`, rec.Header().Get(HeaderMessage))

	rec = doJSON(e, http.MethodGet, "/collaborators/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHomeAndTrailingSlash(t *testing.T) {
	e := setupServer(t)
	require.Equal(t, http.StatusSeeOther, doJSON(e, http.MethodPost, "/properties/create", propertyJSON).Code)

	rec := doJSON(e, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 1, body["property_count"])
	assert.EqualValues(t, 1, body["available_properties"])

	rec = doJSON(e, http.MethodGet, "/properties/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestInvalidJSONBody(t *testing.T) {
	e := setupServer(t)

	rec := doJSON(e, http.MethodPost, "/collaborators/create", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
