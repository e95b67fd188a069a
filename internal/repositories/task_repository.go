package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"realestate-crm.com/realestate-crm/internal/constants"
	model "realestate-crm.com/realestate-crm/internal/models"
)

// priorityRank orders by urgency, not by the stored string, so HIGH sorts before MEDIUM and LOW.
const priorityRank = "CASE priority WHEN 'HIGH' THEN 3 WHEN 'MEDIUM' THEN 2 WHEN 'LOW' THEN 1 ELSE 0 END"

var taskAssociations = []string{"RelatedProperty", "Client", "AssignedTo"}

type TaskFilter struct {
	Status     constants.TaskStatus
	Priority   constants.TaskPriority
	Search     string
	AssignedTo uint
}

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	q := r.db.WithContext(ctx)
	for _, a := range taskAssociations {
		q = q.Preload(a)
	}
	if err := q.First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error
}

// UpdateStatus writes only the status column and the modification time.
func (r *TaskRepository) UpdateStatus(ctx context.Context, task *model.Task, status constants.TaskStatus) error {
	return r.db.WithContext(ctx).Model(task).Omit(clause.Associations).Update("status", status).Error
}

func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[model.Task](r.db.WithContext(ctx), id)
}

func (r *TaskRepository) all() *gorm.DB {
	return r.db.Model(&model.Task{}).
		Order("due_date ASC").
		Order(priorityRank + " DESC").
		Order("id ASC")
}

func (r *TaskRepository) set(q *gorm.DB) *ResultSet[model.Task] {
	return newResultSet[model.Task](q, taskAssociations...)
}

func (r *TaskRepository) Filter(f TaskFilter) *ResultSet[model.Task] {
	q := r.all()
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.Search != "" {
		q = searchAny(q, f.Search, "title", "description")
	}
	if f.AssignedTo != 0 {
		q = q.Where("assigned_to_id = ?", f.AssignedTo)
	}
	return r.set(q)
}

func (r *TaskRepository) Pending() *ResultSet[model.Task] {
	return r.Filter(TaskFilter{Status: constants.StatusPending})
}

// Overdue lists open tasks due strictly before today.
func (r *TaskRepository) Overdue(today time.Time) *ResultSet[model.Task] {
	return r.set(r.all().
		Where("due_date < ?", model.DateOf(today)).
		Where("status NOT IN ?", []constants.TaskStatus{constants.StatusComplete, constants.StatusCancelled}))
}

func (r *TaskRepository) ByProperty(propertyID uint) *ResultSet[model.Task] {
	return r.set(r.all().Where("related_property_id = ?", propertyID))
}

func (r *TaskRepository) ByClient(clientID uint) *ResultSet[model.Task] {
	return r.set(r.all().Where("client_id = ?", clientID))
}

func (r *TaskRepository) PendingCountFor(ctx context.Context, collaboratorID uint) (int64, error) {
	return r.Filter(TaskFilter{Status: constants.StatusPending, AssignedTo: collaboratorID}).Count(ctx)
}
