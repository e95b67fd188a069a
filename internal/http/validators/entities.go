package validators

import (
	"realestate-crm.com/realestate-crm/internal/constants"
	dto "realestate-crm.com/realestate-crm/internal/data_models"
	model "realestate-crm.com/realestate-crm/internal/models"
	repository "realestate-crm.com/realestate-crm/internal/repositories"
	"realestate-crm.com/realestate-crm/internal/validation"
)

// Each Parse function converts a submitted form into its model. Only
// conversion failures are reported here; domain rules run in the services.

func ParseCollaborator(r dto.CollaboratorRequest) (*model.Collaborator, *validation.Errors) {
	return &model.Collaborator{
		Name:  r.Name.String(),
		Email: r.Email.String(),
		Role:  constants.CollaboratorRole(r.Role.Trim()),
	}, validation.New()
}

func ParseProperty(r dto.PropertyRequest) (*model.Property, *validation.Errors) {
	e := validation.New()
	p := &model.Property{
		Address:        r.Address.Trim().String(),
		PropertyType:   constants.PropertyType(r.PropertyType.Trim()),
		Status:         constants.PropertyStatus(r.Status.Trim()),
		ListingDate:    parseDate(e, "listing_date", r.ListingDate),
		CollaboratorID: parseID(e, "collaborator_id", r.CollaboratorID),
		Bedrooms:       parseInt(e, "bedrooms", r.Bedrooms),
		Bathrooms:      parseDecimal(e, "bathrooms", r.Bathrooms),
		SquareFeet:     parseInt(e, "square_feet", r.SquareFeet),
		Description:    r.Description.Trim().String(),
	}
	if r.Price.Blank() {
		e.Add("price", validation.MsgRequired)
	} else if price := parseDecimal(e, "price", r.Price); price.Valid {
		p.Price = price.Decimal
	}
	return p, e
}

func ParseClient(r dto.ClientRequest) (*model.Client, repository.ClientLinks, *validation.Errors) {
	e := validation.New()
	c := &model.Client{
		Name:       r.Name.String(),
		Email:      r.Email.String(),
		Phone:      r.Phone.Trim().String(),
		ClientType: constants.ClientType(r.ClientType.Trim()),
		Notes:      r.Notes.Trim().String(),
	}
	links := repository.ClientLinks{
		Interested: parseIDs(e, "interested_property_ids", r.InterestedPropertyIDs),
		Owned:      parseIDs(e, "owned_property_ids", r.OwnedPropertyIDs),
	}
	return c, links, e
}

// ParseTask keeps both subject references when both are given so that the
// service can report the conflict.
func ParseTask(r dto.TaskRequest) (*model.Task, *validation.Errors) {
	e := validation.New()
	return &model.Task{
		Title:             r.Title.String(),
		Description:       r.Description.Trim().String(),
		DueDate:           parseDate(e, "due_date", r.DueDate),
		Status:            constants.TaskStatus(r.Status.Trim()),
		Priority:          constants.TaskPriority(r.Priority.Trim()),
		RelatedPropertyID: parseID(e, "related_property_id", r.RelatedPropertyID),
		ClientID:          parseID(e, "client_id", r.ClientID),
		AssignedToID:      parseID(e, "assigned_to_id", r.AssignedToID),
	}, e
}
