package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"realestate-crm.com/realestate-crm/internal/constants"
	model "realestate-crm.com/realestate-crm/internal/models"
)

type ClientFilter struct {
	ClientType constants.ClientType
	Search     string
}

// ClientLinks lists the properties a client is linked to. A nil slice leaves
// the stored links untouched; an empty one removes them all.
type ClientLinks struct {
	Interested []uint
	Owned      []uint
}

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, c *model.Client, links ClientLinks) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(c).Error; err != nil {
			return err
		}
		return replaceLinks(tx, c.ID, links)
	})
}

func (r *ClientRepository) FindByID(ctx context.Context, id uint) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).
		Preload("InterestedProperties", func(db *gorm.DB) *gorm.DB { return db.Order("listing_date DESC") }).
		Preload("OwnedProperties", func(db *gorm.DB) *gorm.DB { return db.Order("listing_date DESC") }).
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) Exists(ctx context.Context, id uint) (bool, error) {
	return exists[model.Client](ctx, r.db, id)
}

func (r *ClientRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	return emailTaken[model.Client](ctx, r.db, email, excludeID)
}

func (r *ClientRepository) Update(ctx context.Context, c *model.Client, links ClientLinks) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(c).Error; err != nil {
			return err
		}
		return replaceLinks(tx, c.ID, links)
	})
}

// Delete removes the client, its tasks and its property links.
func (r *ClientRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		for _, table := range []string{model.ClientInterestsTable, model.ClientOwnershipTable} {
			if err := tx.Exec("DELETE FROM "+table+" WHERE client_id = ?", id).Error; err != nil {
				return err
			}
		}
		return deleteByID[model.Client](tx, id)
	})
}

func replaceLinks(tx *gorm.DB, clientID uint, links ClientLinks) error {
	for table, ids := range map[string][]uint{
		model.ClientInterestsTable: links.Interested,
		model.ClientOwnershipTable: links.Owned,
	} {
		if ids == nil {
			continue
		}
		if err := tx.Exec("DELETE FROM "+table+" WHERE client_id = ?", clientID).Error; err != nil {
			return err
		}
		rows := make([]map[string]any, 0, len(ids))
		seen := make(map[uint]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			rows = append(rows, map[string]any{"client_id": clientID, "property_id": id})
		}
		if len(rows) == 0 {
			continue
		}
		if err := tx.Table(table).Create(&rows).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *ClientRepository) all() *gorm.DB {
	return r.db.Model(&model.Client{}).Order("name ASC").Order("id ASC")
}

func (r *ClientRepository) Filter(f ClientFilter) *ResultSet[model.Client] {
	q := r.all()
	if f.ClientType != "" {
		q = q.Where("client_type = ?", f.ClientType)
	}
	if f.Search != "" {
		q = searchAny(q, f.Search, "name", "email", "phone")
	}
	return newResultSet[model.Client](q)
}

func (r *ClientRepository) Buyers() *ResultSet[model.Client] {
	return newResultSet[model.Client](r.all().Where("client_type IN ?",
		[]constants.ClientType{constants.ClientBuyer, constants.ClientBoth}))
}

func (r *ClientRepository) Sellers() *ResultSet[model.Client] {
	return newResultSet[model.Client](r.all().Where("client_type IN ?",
		[]constants.ClientType{constants.ClientSeller, constants.ClientBoth}))
}

func (r *ClientRepository) InterestedPropertiesCount(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table(model.ClientInterestsTable).Where("client_id = ?", id).Count(&n).Error
	return n, err
}
