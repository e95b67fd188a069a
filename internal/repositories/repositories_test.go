package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"realestate-crm.com/realestate-crm/internal/constants"
	model "realestate-crm.com/realestate-crm/internal/models"
)

var today = time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
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

	if err := db.AutoMigrate(&model.Collaborator{}, &model.Property{}, &model.Client{}, &model.Task{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newCollaborator(t *testing.T, db *gorm.DB, name, email string, role constants.CollaboratorRole) *model.Collaborator {
	c := &model.Collaborator{Name: name, Email: email, Role: role}
	require.NoError(t, NewCollaboratorRepository(db).Create(context.Background(), c))
	return c
}

func newProperty(t *testing.T, db *gorm.DB, address string, status constants.PropertyStatus, listed time.Time) *model.Property {
	p := &model.Property{
		Address:      address,
		Price:        decimal.RequireFromString("100000"),
		PropertyType: constants.PropertyHouse,
		Status:       status,
		ListingDate:  listed,
	}
	require.NoError(t, NewPropertyRepository(db).Create(context.Background(), p))
	return p
}

func newClient(t *testing.T, db *gorm.DB, name, email string, ct constants.ClientType, links ClientLinks) *model.Client {
	c := &model.Client{Name: name, Email: email, Phone: "5551234567", ClientType: ct, CreatedDate: today}
	require.NoError(t, NewClientRepository(db).Create(context.Background(), c, links))
	return c
}

func newTask(t *testing.T, db *gorm.DB, title string, due time.Time, priority constants.TaskPriority, a model.Attachment) *model.Task {
	task := &model.Task{Title: title, DueDate: due, Status: constants.StatusPending, Priority: priority}
	task.Attach(a)
	require.NoError(t, NewTaskRepository(db).Create(context.Background(), task))
	return task
}

func titles(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestResultSet_ReIterable(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewPropertyRepository(db)

	newProperty(t, db, "1 First St", constants.PropertyAvailable, today)
	set := repo.Available()

	n, err := set.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	newProperty(t, db, "2 Second St", constants.PropertyAvailable, today)

	items, err := set.All(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	n, err = set.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	narrowed := set.Where("address = ?", "1 First St")
	n, err = narrowed.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = set.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n, "narrowing leaves the original set alone")
}

func TestResultSet_EmptyIsNotNil(t *testing.T) {
	db := setupTestDB(t)

	items, err := NewClientRepository(db).Buyers().All(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestPropertyRepository_FilterAndOrder(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewPropertyRepository(db)

	old := newProperty(t, db, "9 Old Rd", constants.PropertyAvailable, today.AddDate(0, -1, 0))
	recent := newProperty(t, db, "3 New Rd", constants.PropertyAvailable, today)
	sold := newProperty(t, db, "5 Sold Ln", constants.PropertySold, today.AddDate(0, 0, -3))

	all, err := repo.Filter(PropertyFilter{}).All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint{recent.ID, sold.ID, old.ID}, []uint{all[0].ID, all[1].ID, all[2].ID})

	avail, err := repo.Filter(PropertyFilter{Status: constants.PropertyAvailable, Search: "RD"}).All(ctx)
	require.NoError(t, err)
	assert.Len(t, avail, 2)

	none, err := repo.Filter(PropertyFilter{PropertyType: constants.PropertyLand}).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, none)

	stats, err := repo.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.PropertyStatistics{Total: 3, Available: 2, Pending: 0, Sold: 1}, stats)
}

func TestSearchEscapesWildcards(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewCollaboratorRepository(db)

	newCollaborator(t, db, "100% Realty", "pct@example.com", constants.RoleAgent)
	newCollaborator(t, db, "Plain Name", "plain_name@example.com", constants.RoleManager)
	newCollaborator(t, db, "Other", "plainxname@example.com", constants.RoleAdmin)

	n, err := repo.Filter(CollaboratorFilter{Search: "%"}).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Filter(CollaboratorFilter{Search: "plain_"}).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	agents, err := repo.Agents().All(ctx)
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, "100% Realty", agents[0].Name)
}

func TestCollaboratorRepository_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCollaboratorRepository(db)
	ctx := context.Background()

	first := newCollaborator(t, db, "A", "a@example.com", constants.RoleAgent)
	err := repo.Create(ctx, &model.Collaborator{Name: "B", Email: "a@example.com", Role: constants.RoleAgent})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	taken, err := repo.EmailTaken(ctx, "a@example.com", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.EmailTaken(ctx, "a@example.com", first.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestCollaboratorRepository_DeleteDetaches(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	agent := newCollaborator(t, db, "Agent", "agent@example.com", constants.RoleAgent)
	p := newProperty(t, db, "1 Main", constants.PropertyAvailable, today)
	p.CollaboratorID = &agent.ID
	require.NoError(t, NewPropertyRepository(db).Update(ctx, p))

	task := newTask(t, db, "Visit", today, constants.PriorityLow, model.NoAttachment())
	task.AssignedToID = &agent.ID
	require.NoError(t, NewTaskRepository(db).Update(ctx, task))

	w, err := NewCollaboratorRepository(db).Workload(ctx, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Workload{Properties: 1, PendingTasks: 1}, w)

	require.NoError(t, NewCollaboratorRepository(db).Delete(ctx, agent.ID))

	gotP, err := NewPropertyRepository(db).FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, gotP.CollaboratorID)

	gotT, err := NewTaskRepository(db).FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, gotT.AssignedToID)

	assert.ErrorIs(t, NewCollaboratorRepository(db).Delete(ctx, agent.ID), gorm.ErrRecordNotFound)
}

func TestPropertyRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	p := newProperty(t, db, "1 Main", constants.PropertyAvailable, today)
	keep := newProperty(t, db, "2 Main", constants.PropertyAvailable, today)
	c := newClient(t, db, "Ann", "ann@example.com", constants.ClientBoth,
		ClientLinks{Interested: []uint{p.ID, keep.ID}, Owned: []uint{p.ID}})
	newTask(t, db, "About p", today, constants.PriorityLow, model.PropertyAttachment(p.ID))

	n, err := NewPropertyRepository(db).InterestedClientsCount(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, NewPropertyRepository(db).Delete(ctx, p.ID))

	tasks, err := NewTaskRepository(db).Filter(TaskFilter{}).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, tasks)

	got, err := NewClientRepository(db).FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got.InterestedProperties, 1)
	assert.Equal(t, keep.ID, got.InterestedProperties[0].ID)
	assert.Empty(t, got.OwnedProperties)
}

func TestPropertyRepository_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewPropertyRepository(db)

	p := newProperty(t, db, "1 Main", constants.PropertyAvailable, today)
	require.NoError(t, repo.UpdateStatus(ctx, p, constants.PropertySold))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.PropertySold, got.Status)
	assert.Equal(t, "1 Main", got.Address)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("100000")))
}

func TestPropertyRepository_MissingIDs(t *testing.T) {
	db := setupTestDB(t)
	p := newProperty(t, db, "1 Main", constants.PropertyAvailable, today)

	missing, err := NewPropertyRepository(db).MissingIDs(context.Background(), []uint{p.ID, 999, 1000})
	require.NoError(t, err)
	assert.Equal(t, []uint{999, 1000}, missing)
}

func TestClientRepository_Links(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewClientRepository(db)

	a := newProperty(t, db, "A St", constants.PropertyAvailable, today)
	b := newProperty(t, db, "B St", constants.PropertyAvailable, today)
	c := newClient(t, db, "Ann", "ann@example.com", constants.ClientBuyer,
		ClientLinks{Interested: []uint{a.ID, a.ID, b.ID}})

	n, err := repo.InterestedPropertiesCount(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n, "duplicate ids are linked once")

	c.Notes = "call after 5pm"
	require.NoError(t, repo.Update(ctx, c, ClientLinks{}))
	n, err = repo.InterestedPropertiesCount(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n, "nil links are kept")

	require.NoError(t, repo.Update(ctx, c, ClientLinks{Interested: []uint{}, Owned: []uint{b.ID}}))
	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, got.InterestedProperties)
	require.Len(t, got.OwnedProperties, 1)
	assert.Equal(t, b.ID, got.OwnedProperties[0].ID)
	assert.Equal(t, "call after 5pm", got.Notes)
}

func TestClientRepository_BuyersSellersAndDelete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewClientRepository(db)

	buyer := newClient(t, db, "Buyer", "b@example.com", constants.ClientBuyer, ClientLinks{})
	newClient(t, db, "Seller", "s@example.com", constants.ClientSeller, ClientLinks{})
	newClient(t, db, "Both", "both@example.com", constants.ClientBoth, ClientLinks{})
	newTask(t, db, "Call buyer", today, constants.PriorityLow, model.ClientAttachment(buyer.ID))

	n, err := repo.Buyers().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	n, err = repo.Sellers().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.Filter(ClientFilter{Search: "555123"}).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	require.NoError(t, repo.Delete(ctx, buyer.ID))
	n, err = NewTaskRepository(db).ByClient(buyer.ID).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTaskRepository_Ordering(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	tomorrow := today.AddDate(0, 0, 1)
	newTask(t, db, "later", tomorrow, constants.PriorityHigh, model.NoAttachment())
	newTask(t, db, "low", today, constants.PriorityLow, model.NoAttachment())
	newTask(t, db, "high", today, constants.PriorityHigh, model.NoAttachment())
	newTask(t, db, "medium", today, constants.PriorityMedium, model.NoAttachment())

	tasks, err := NewTaskRepository(db).Filter(TaskFilter{}).All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "medium", "low", "later"}, titles(tasks))
}

func TestTaskRepository_Overdue(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewTaskRepository(db)

	late := newTask(t, db, "late", today.AddDate(0, 0, -2), constants.PriorityLow, model.NoAttachment())
	done := newTask(t, db, "done", today.AddDate(0, 0, -2), constants.PriorityLow, model.NoAttachment())
	require.NoError(t, repo.UpdateStatus(ctx, done, constants.StatusComplete))
	newTask(t, db, "due today", today, constants.PriorityLow, model.NoAttachment())

	overdue, err := repo.Overdue(today).All(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, late.ID, overdue[0].ID)

	pending, err := repo.Pending().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pending)
}

func TestTaskRepository_FilterAndPreloads(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewTaskRepository(db)

	agent := newCollaborator(t, db, "Agent", "agent@example.com", constants.RoleAgent)
	p := newProperty(t, db, "1 Main", constants.PropertyAvailable, today)
	task := newTask(t, db, "Stage house", today, constants.PriorityHigh, model.PropertyAttachment(p.ID))
	task.AssignedToID = &agent.ID
	require.NoError(t, repo.Update(ctx, task))
	newTask(t, db, "Unrelated", today, constants.PriorityLow, model.NoAttachment())

	got, err := repo.Filter(TaskFilter{AssignedTo: agent.ID, Priority: constants.PriorityHigh, Search: "stage"}).All(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].RelatedProperty)
	assert.Equal(t, "1 Main", got[0].RelatedProperty.Address)
	require.NotNil(t, got[0].AssignedTo)
	assert.Equal(t, "Agent", got[0].AssignedTo.Name)

	n, err := repo.ByProperty(p.ID).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.PendingCountFor(ctx, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
