package dto

type PropertyRequest struct {
	Address        Value `json:"address" form:"address"`
	Price          Value `json:"price" form:"price"`
	PropertyType   Value `json:"property_type" form:"property_type"`
	Status         Value `json:"status" form:"status"`
	ListingDate    Value `json:"listing_date" form:"listing_date"`
	CollaboratorID Value `json:"collaborator_id" form:"collaborator_id"`
	Bedrooms       Value `json:"bedrooms" form:"bedrooms"`
	Bathrooms      Value `json:"bathrooms" form:"bathrooms"`
	SquareFeet     Value `json:"square_feet" form:"square_feet"`
	Description    Value `json:"description" form:"description"`
}

func (r PropertyRequest) Normalized() PropertyRequest {
	return PropertyRequest{
		Address:        r.Address.Trim(),
		Price:          r.Price.Trim(),
		PropertyType:   r.PropertyType.Trim(),
		Status:         r.Status.Trim(),
		ListingDate:    r.ListingDate.Trim(),
		CollaboratorID: r.CollaboratorID.Trim(),
		Bedrooms:       r.Bedrooms.Trim(),
		Bathrooms:      r.Bathrooms.Trim(),
		SquareFeet:     r.SquareFeet.Trim(),
		Description:    r.Description.Trim(),
	}
}

type PropertyListQuery struct {
	Status       string `query:"status" json:"status"`
	PropertyType string `query:"property_type" json:"property_type"`
	Search       string `query:"search" json:"search"`
}
