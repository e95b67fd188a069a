package validation

import (
	"time"

	"realestate-crm.com/realestate-crm/internal/constants"
	model "realestate-crm.com/realestate-crm/internal/models"
)

// defaultFor returns def for new records. Updates must restate the value.
func defaultFor[T ~string](isNew bool, def T) T {
	if isNew {
		return def
	}
	return ""
}

// Collaborator normalizes c in place and reports every violated rule.
func Collaborator(c *model.Collaborator, isNew bool) *Errors {
	e := New()
	c.Name = RequiredName(e, "name", c.Name)
	c.Email = Email(e, "email", c.Email)
	c.Role = Choice(e, "role", c.Role, defaultFor(isNew, constants.DefaultCollaboratorRole), constants.RoleChoices())
	return e
}

func Property(p *model.Property, isNew bool, today time.Time) *Errors {
	e := New()
	p.Address = Required(e, "address", p.Address)
	Price(e, "price", p.Price)
	p.PropertyType = Choice(e, "property_type", p.PropertyType, "", constants.PropertyTypeChoices())
	p.Status = Choice(e, "status", p.Status, defaultFor(isNew, constants.DefaultPropertyStatus), constants.PropertyStatusChoices())
	p.ListingDate = model.DateOf(p.ListingDate)
	NotAfter(e, "listing_date", p.ListingDate, model.DateOf(today), MsgFutureListing)
	NonNegative(e, "bedrooms", p.Bedrooms, MsgNegativeBeds)
	Bathrooms(e, "bathrooms", p.Bathrooms)
	NonNegative(e, "square_feet", p.SquareFeet, MsgNegativeSqft)
	return e
}

func Client(c *model.Client) *Errors {
	e := New()
	c.Name = RequiredName(e, "name", c.Name)
	c.Email = Email(e, "email", c.Email)
	c.Phone = Phone(e, "phone", c.Phone)
	c.ClientType = Choice(e, "client_type", c.ClientType, "", constants.ClientTypeChoices())
	return e
}

// Task validates t; isNew enables the due-date-not-in-the-past rule and the
// status and priority defaults.
func Task(t *model.Task, isNew bool, today time.Time) *Errors {
	e := New()
	t.Title = RequiredTitle(e, "title", t.Title)
	t.DueDate = model.DateOf(t.DueDate)
	if isNew {
		NotBefore(e, "due_date", t.DueDate, model.DateOf(today), MsgPastDueDate)
	} else {
		check(e, "due_date", t.DueDate, "required")
	}
	t.Status = Choice(e, "status", t.Status, defaultFor(isNew, constants.DefaultTaskStatus), constants.TaskStatusChoices())
	t.Priority = Choice(e, "priority", t.Priority, defaultFor(isNew, constants.DefaultTaskPriority), constants.TaskPriorityChoices())
	if t.RelatedPropertyID != nil && t.ClientID != nil {
		e.AddNonField(MsgTaskBothTargets)
	}
	return e
}
