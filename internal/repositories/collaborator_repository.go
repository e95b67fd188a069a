package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"realestate-crm.com/realestate-crm/internal/constants"
	model "realestate-crm.com/realestate-crm/internal/models"
)

type CollaboratorFilter struct {
	Role   constants.CollaboratorRole
	Search string
}

type CollaboratorRepository struct {
	db *gorm.DB
}

func NewCollaboratorRepository(db *gorm.DB) *CollaboratorRepository {
	return &CollaboratorRepository{db: db}
}

func (r *CollaboratorRepository) Create(ctx context.Context, c *model.Collaborator) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CollaboratorRepository) FindByID(ctx context.Context, id uint) (*model.Collaborator, error) {
	var c model.Collaborator
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CollaboratorRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return exists[model.Collaborator](ctx, r.db, id)
}

func (r *CollaboratorRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	return emailTaken[model.Collaborator](ctx, r.db, email, excludeID)
}

func (r *CollaboratorRepository) Update(ctx context.Context, c *model.Collaborator) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

// Delete removes the collaborator and detaches it from every property and
// task it was assigned to.
func (r *CollaboratorRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Property{}).
			Where("collaborator_id = ?", id).
			Update("collaborator_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Task{}).
			Where("assigned_to_id = ?", id).
			Update("assigned_to_id", nil).Error; err != nil {
			return err
		}
		return deleteByID[model.Collaborator](tx, id)
	})
}

func (r *CollaboratorRepository) all() *gorm.DB {
	return r.db.Model(&model.Collaborator{}).Order("name ASC").Order("id ASC")
}

func (r *CollaboratorRepository) Filter(f CollaboratorFilter) *ResultSet[model.Collaborator] {
	q := r.all()
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.Search != "" {
		q = searchAny(q, f.Search, "name", "email")
	}
	return newResultSet[model.Collaborator](q)
}

func (r *CollaboratorRepository) Agents() *ResultSet[model.Collaborator] {
	return r.Filter(CollaboratorFilter{Role: constants.RoleAgent})
}

// ActivePropertiesCount counts assigned properties that are not withdrawn.
func (r *CollaboratorRepository) ActivePropertiesCount(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Property{}).
		Where("collaborator_id = ? AND status <> ?", id, constants.PropertyWithdrawn).
		Count(&n).Error
	return n, err
}

func (r *CollaboratorRepository) Workload(ctx context.Context, id uint) (model.Workload, error) {
	var w model.Workload
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Property{}).Where("collaborator_id = ?", id).Count(&w.Properties).Error; err != nil {
		return w, err
	}
	if err := db.Model(&model.Task{}).
		Where("assigned_to_id = ? AND status = ?", id, constants.StatusPending).
		Count(&w.PendingTasks).Error; err != nil {
		return w, err
	}
	if err := db.Model(&model.Task{}).
		Where("assigned_to_id = ? AND status = ?", id, constants.StatusInProgress).
		Count(&w.InProgressTasks).Error; err != nil {
		return w, err
	}
	return w, nil
}
