package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"realestate-crm.com/realestate-crm/internal/constants"
	model "realestate-crm.com/realestate-crm/internal/models"
)

type PropertyFilter struct {
	Status       constants.PropertyStatus
	PropertyType constants.PropertyType
	Search       string
}

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) Create(ctx context.Context, p *model.Property) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *PropertyRepository) FindByID(ctx context.Context, id uint) (*model.Property, error) {
	var p model.Property
	if err := r.db.WithContext(ctx).Preload("Collaborator").First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PropertyRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return exists[model.Property](ctx, r.db, id)
}

// MissingIDs returns the ids that do not name a stored property.
func (r *PropertyRepository) MissingIDs(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []uint
	if err := r.db.WithContext(ctx).Model(&model.Property{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	seen := make(map[uint]bool, len(found))
	for _, id := range found {
		seen[id] = true
	}
	var missing []uint
	for _, id := range ids {
		if !seen[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (r *PropertyRepository) Update(ctx context.Context, p *model.Property) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

// UpdateStatus writes only the status column and the modification time.
func (r *PropertyRepository) UpdateStatus(ctx context.Context, p *model.Property, status constants.PropertyStatus) error {
	return r.db.WithContext(ctx).Model(p).Omit(clause.Associations).Update("status", status).Error
}

// Delete removes the property together with its tasks and client links.
func (r *PropertyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("related_property_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		for _, table := range []string{model.ClientInterestsTable, model.ClientOwnershipTable} {
			if err := tx.Exec("DELETE FROM "+table+" WHERE property_id = ?", id).Error; err != nil {
				return err
			}
		}
		return deleteByID[model.Property](tx, id)
	})
}

func (r *PropertyRepository) all() *gorm.DB {
	return r.db.Model(&model.Property{}).Order("listing_date DESC").Order("id DESC")
}

func (r *PropertyRepository) Filter(f PropertyFilter) *ResultSet[model.Property] {
	q := r.all()
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PropertyType != "" {
		q = q.Where("property_type = ?", f.PropertyType)
	}
	if f.Search != "" {
		q = searchAny(q, f.Search, "address", "description")
	}
	return newResultSet[model.Property](q, "Collaborator")
}

func (r *PropertyRepository) Available() *ResultSet[model.Property] {
	return r.Filter(PropertyFilter{Status: constants.PropertyAvailable})
}

func (r *PropertyRepository) ByCollaborator(collaboratorID uint) *ResultSet[model.Property] {
	return newResultSet[model.Property](r.all().Where("collaborator_id = ?", collaboratorID))
}

func (r *PropertyRepository) InterestedClientsCount(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table(model.ClientInterestsTable).Where("property_id = ?", id).Count(&n).Error
	return n, err
}

func (r *PropertyRepository) Statistics(ctx context.Context) (model.PropertyStatistics, error) {
	var s model.PropertyStatistics
	var err error
	if s.Total, err = r.Filter(PropertyFilter{}).Count(ctx); err != nil {
		return s, err
	}
	counts := []struct {
		status constants.PropertyStatus
		dst    *int64
	}{
		{constants.PropertyAvailable, &s.Available},
		{constants.PropertyPending, &s.Pending},
		{constants.PropertySold, &s.Sold},
	}
	for _, c := range counts {
		if *c.dst, err = r.Filter(PropertyFilter{Status: c.status}).Count(ctx); err != nil {
			return s, err
		}
	}
	return s, nil
}
