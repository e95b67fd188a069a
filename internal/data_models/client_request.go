package dto

// ClientRequest carries a client form. Omitting a property id list leaves
// the corresponding links untouched; an empty list clears them.
type ClientRequest struct {
	Name                  Value   `json:"name" form:"name"`
	Email                 Value   `json:"email" form:"email"`
	Phone                 Value   `json:"phone" form:"phone"`
	ClientType            Value   `json:"client_type" form:"client_type"`
	Notes                 Value   `json:"notes" form:"notes"`
	InterestedPropertyIDs []Value `json:"interested_property_ids" form:"interested_property_ids"`
	OwnedPropertyIDs      []Value `json:"owned_property_ids" form:"owned_property_ids"`
}

func (r ClientRequest) Normalized() ClientRequest {
	return ClientRequest{
		Name:                  r.Name.Trim(),
		Email:                 r.Email.Trim(),
		Phone:                 r.Phone.Trim(),
		ClientType:            r.ClientType.Trim(),
		Notes:                 r.Notes.Trim(),
		InterestedPropertyIDs: trimAll(r.InterestedPropertyIDs),
		OwnedPropertyIDs:      trimAll(r.OwnedPropertyIDs),
	}
}

type ClientListQuery struct {
	ClientType string `query:"client_type" json:"client_type"`
	Search     string `query:"search" json:"search"`
}
