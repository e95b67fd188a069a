package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"realestate-crm.com/realestate-crm/internal/constants"
)

type Property struct {
	ID             uint                     `gorm:"primaryKey" json:"id"`
	Address        string                   `gorm:"type:text;not null" json:"address"`
	Price          decimal.Decimal          `gorm:"type:decimal(12,2);not null" json:"price"`
	PropertyType   constants.PropertyType   `gorm:"type:varchar(20);not null;index" json:"property_type"`
	Status         constants.PropertyStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	ListingDate    time.Time                `gorm:"type:date;not null;index" json:"listing_date"`
	CollaboratorID *uint                    `gorm:"index" json:"collaborator_id"`
	Collaborator   *Collaborator            `gorm:"constraint:OnDelete:SET NULL" json:"collaborator,omitempty"`
	Bedrooms       *int                     `json:"bedrooms"`
	Bathrooms      decimal.NullDecimal      `gorm:"type:decimal(3,1)" json:"bathrooms"`
	SquareFeet     *int                     `json:"square_feet"`
	Description    string                   `gorm:"type:text" json:"description"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

func (p *Property) BeforeSave(tx *gorm.DB) error {
	p.ListingDate = DateOf(p.ListingDate)
	return nil
}

func (p Property) IsAvailable() bool {
	return p.Status == constants.PropertyAvailable
}

func (p Property) String() string {
	return fmt.Sprintf("%s - $%s", p.Address, p.Price.StringFixed(constants.PriceDecimals))
}
