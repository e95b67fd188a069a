package http

import (
	"strconv"

	"realestate-crm.com/realestate-crm/internal/constants"
	dto "realestate-crm.com/realestate-crm/internal/data_models"
	model "realestate-crm.com/realestate-crm/internal/models"
)

// The functions below fill an edit form with the stored record.

func idValue(id *uint) dto.Value {
	if id == nil {
		return ""
	}
	return dto.Value(strconv.FormatUint(uint64(*id), 10))
}

func intValue(i *int) dto.Value {
	if i == nil {
		return ""
	}
	return dto.Value(strconv.Itoa(*i))
}

func idValues(props []model.Property) []dto.Value {
	out := make([]dto.Value, 0, len(props))
	for _, p := range props {
		out = append(out, dto.Value(strconv.FormatUint(uint64(p.ID), 10)))
	}
	return out
}

func collaboratorForm(c *model.Collaborator) dto.CollaboratorRequest {
	return dto.CollaboratorRequest{
		Name:  dto.Value(c.Name),
		Email: dto.Value(c.Email),
		Role:  dto.Value(c.Role),
	}
}

func propertyForm(p *model.Property) dto.PropertyRequest {
	form := dto.PropertyRequest{
		Address:        dto.Value(p.Address),
		Price:          dto.Value(p.Price.StringFixed(constants.PriceDecimals)),
		PropertyType:   dto.Value(p.PropertyType),
		Status:         dto.Value(p.Status),
		ListingDate:    dto.Value(p.ListingDate.Format(constants.DateLayout)),
		CollaboratorID: idValue(p.CollaboratorID),
		Bedrooms:       intValue(p.Bedrooms),
		SquareFeet:     intValue(p.SquareFeet),
		Description:    dto.Value(p.Description),
	}
	if p.Bathrooms.Valid {
		form.Bathrooms = dto.Value(p.Bathrooms.Decimal.StringFixed(constants.BathroomDecimals))
	}
	return form
}

func clientForm(c *model.Client) dto.ClientRequest {
	return dto.ClientRequest{
		Name:                  dto.Value(c.Name),
		Email:                 dto.Value(c.Email),
		Phone:                 dto.Value(c.Phone),
		ClientType:            dto.Value(c.ClientType),
		Notes:                 dto.Value(c.Notes),
		InterestedPropertyIDs: idValues(c.InterestedProperties),
		OwnedPropertyIDs:      idValues(c.OwnedProperties),
	}
}

func taskForm(t *model.Task) dto.TaskRequest {
	return dto.TaskRequest{
		Title:             dto.Value(t.Title),
		Description:       dto.Value(t.Description),
		DueDate:           dto.Value(t.DueDate.Format(constants.DateLayout)),
		Status:            dto.Value(t.Status),
		Priority:          dto.Value(t.Priority),
		RelatedPropertyID: idValue(t.RelatedPropertyID),
		ClientID:          idValue(t.ClientID),
		AssignedToID:      idValue(t.AssignedToID),
	}
}
