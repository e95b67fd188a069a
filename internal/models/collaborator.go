package model

import (
	"fmt"
	"time"

	"realestate-crm.com/realestate-crm/internal/constants"
)

type Collaborator struct {
	ID        uint                       `gorm:"primaryKey" json:"id"`
	Name      string                     `gorm:"size:100;not null;index" json:"name"`
	Email     string                     `gorm:"size:254;not null;uniqueIndex" json:"email"`
	Role      constants.CollaboratorRole `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt time.Time                  `json:"created_at"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

func (c Collaborator) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Role.Label())
}
