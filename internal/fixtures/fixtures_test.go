package fixtures

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "realestate-crm.com/realestate-crm/internal/models"
	"realestate-crm.com/realestate-crm/internal/services"
	"realestate-crm.com/realestate-crm/internal/validation"
)

var today = time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)

const seed = `
collaborators:
  - key: alice
    name: Alice Agent
    email: alice@example.com
    role: AGENT
properties:
  - key: elm
    address: 12 Elm St
    price: 450000.00
    property_type: HOUSE
    listed_days_ago: 3
    collaborator: alice
    bedrooms: 3
    bathrooms: 2.5
  - key: oak
    address: 4 Oak Ave
    price: "199000"
    property_type: CONDO
    status: PENDING
    listing_date: 2026-04-01
clients:
  - key: bob
    name: Bob Buyer
    email: bob@example.com
    phone: (555) 123-4567
    client_type: BUYER
    interested: [elm, oak]
tasks:
  - title: Schedule viewing
    due_in_days: 2
    priority: HIGH
    property: elm
    assigned_to: alice
  - title: Call Bob
    due_date: 2026-06-01
    client: bob
`

func setupServices(t *testing.T) (*services.Services, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Collaborator{}, &model.Property{}, &model.Client{}, &model.Task{}))

	svc := services.New(db, nil)
	svc.SetClock(func() time.Time { return today })
	return svc, db
}

func TestParseAndApply(t *testing.T) {
	svc, db := setupServices(t)

	doc, err := Parse(strings.NewReader(seed))
	require.NoError(t, err)

	sum, err := Apply(context.Background(), svc, doc, today)
	require.NoError(t, err)
	assert.Equal(t, Summary{Collaborators: 1, Properties: 2, Clients: 1, Tasks: 2}, sum)

	var elm model.Property
	require.NoError(t, db.Where("address = ?", "12 Elm St").First(&elm).Error)
	assert.Equal(t, today.AddDate(0, 0, -3), elm.ListingDate)
	require.NotNil(t, elm.CollaboratorID)
	assert.Equal(t, "AVAILABLE", string(elm.Status))

	var bob model.Client
	require.NoError(t, db.Preload("InterestedProperties").First(&bob).Error)
	assert.Len(t, bob.InterestedProperties, 2)

	var viewing model.Task
	require.NoError(t, db.Where("title = ?", "Schedule viewing").First(&viewing).Error)
	assert.Equal(t, today.AddDate(0, 0, 2), viewing.DueDate)
	assert.Equal(t, model.PropertyAttachment(elm.ID), viewing.Attachment())
}

func TestApplyUnknownKey(t *testing.T) {
	svc, _ := setupServices(t)

	doc := &Document{Tasks: []Task{{Title: "x", Client: "nobody"}}}
	_, err := Apply(context.Background(), svc, doc, today)
	assert.ErrorContains(t, err, `unknown client "nobody"`)
}

func TestApplyRunsValidation(t *testing.T) {
	svc, _ := setupServices(t)

	doc, err := Parse(strings.NewReader(`
properties:
  - key: bad
    address: 1 Nowhere
    price: -5
    property_type: LAND
`))
	require.NoError(t, err)

	_, err = Apply(context.Background(), svc, doc, today)
	var verrs *validation.Errors
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.Has("price"))
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader("collaborators:\n  - nick: x\n"))
	assert.Error(t, err)
}
