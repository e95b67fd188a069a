package model

import (
	"fmt"
	"time"

	"realestate-crm.com/realestate-crm/internal/constants"
)

// Join tables of the two client/property relations.
const (
	ClientInterestsTable = "client_interested_properties"
	ClientOwnershipTable = "client_owned_properties"
)

type Client struct {
	ID                   uint                 `gorm:"primaryKey" json:"id"`
	Name                 string               `gorm:"size:100;not null;index" json:"name"`
	Email                string               `gorm:"size:254;not null;uniqueIndex" json:"email"`
	Phone                string               `gorm:"size:20;not null" json:"phone"`
	ClientType           constants.ClientType `gorm:"type:varchar(20);not null;index" json:"client_type"`
	InterestedProperties []Property           `gorm:"many2many:client_interested_properties;" json:"interested_properties,omitempty"`
	OwnedProperties      []Property           `gorm:"many2many:client_owned_properties;" json:"owned_properties,omitempty"`
	Notes                string               `gorm:"type:text" json:"notes"`
	CreatedDate          time.Time            `gorm:"type:date;not null" json:"created_date"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

func (c Client) IsBuyer() bool {
	return c.ClientType == constants.ClientBuyer || c.ClientType == constants.ClientBoth
}

func (c Client) IsSeller() bool {
	return c.ClientType == constants.ClientSeller || c.ClientType == constants.ClientBoth
}

func (c Client) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.ClientType.Label())
}
