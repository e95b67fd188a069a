package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"realestate-crm.com/realestate-crm/internal/constants"
)

// AttachmentKind tells what, if anything, a task is about.
type AttachmentKind int

const (
	AttachedToNothing AttachmentKind = iota
	AttachedToProperty
	AttachedToClient
)

// Attachment is the single subject of a task: nothing, one property or one client.
type Attachment struct {
	Kind AttachmentKind
	ID   uint
}

func NoAttachment() Attachment { return Attachment{} }

func PropertyAttachment(id uint) Attachment {
	return Attachment{Kind: AttachedToProperty, ID: id}
}

func ClientAttachment(id uint) Attachment {
	return Attachment{Kind: AttachedToClient, ID: id}
}

type Task struct {
	ID                uint                   `gorm:"primaryKey" json:"id"`
	Title             string                 `gorm:"size:200;not null" json:"title"`
	Description       string                 `gorm:"type:text" json:"description"`
	DueDate           time.Time              `gorm:"type:date;not null;index" json:"due_date"`
	Status            constants.TaskStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	Priority          constants.TaskPriority `gorm:"type:varchar(10);not null;index" json:"priority"`
	RelatedPropertyID *uint                  `gorm:"index" json:"related_property_id"`
	RelatedProperty   *Property              `gorm:"constraint:OnDelete:CASCADE" json:"related_property,omitempty"`
	ClientID          *uint                  `gorm:"index" json:"client_id"`
	Client            *Client                `gorm:"constraint:OnDelete:CASCADE" json:"client,omitempty"`
	AssignedToID      *uint                  `gorm:"index" json:"assigned_to_id"`
	AssignedTo        *Collaborator          `gorm:"constraint:OnDelete:SET NULL" json:"assigned_to,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

func (t *Task) BeforeSave(tx *gorm.DB) error {
	t.DueDate = DateOf(t.DueDate)
	return nil
}

// Attachment reports the task subject. A row carrying both references, which
// Attach never produces, is reported as a property attachment.
func (t Task) Attachment() Attachment {
	switch {
	case t.RelatedPropertyID != nil:
		return PropertyAttachment(*t.RelatedPropertyID)
	case t.ClientID != nil:
		return ClientAttachment(*t.ClientID)
	}
	return NoAttachment()
}

// Attach replaces the task subject, clearing whichever reference does not apply.
func (t *Task) Attach(a Attachment) {
	t.RelatedPropertyID, t.ClientID = nil, nil
	t.RelatedProperty, t.Client = nil, nil
	id := a.ID
	switch a.Kind {
	case AttachedToProperty:
		t.RelatedPropertyID = &id
	case AttachedToClient:
		t.ClientID = &id
	}
}

// IsOverdue reports whether the task was due before today and is still open.
func (t Task) IsOverdue(today time.Time) bool {
	return DateOf(t.DueDate).Before(DateOf(today)) && !t.Status.Closed()
}

func (t Task) IsHighPriority() bool {
	return t.Priority == constants.PriorityHigh
}

func (t Task) String() string {
	return fmt.Sprintf("%s - Due: %s", t.Title, t.DueDate.Format(constants.DateLayout))
}
