package dto

type CollaboratorRequest struct {
	Name  Value `json:"name" form:"name"`
	Email Value `json:"email" form:"email"`
	Role  Value `json:"role" form:"role"`
}

func (r CollaboratorRequest) Normalized() CollaboratorRequest {
	return CollaboratorRequest{Name: r.Name.Trim(), Email: r.Email.Trim(), Role: r.Role.Trim()}
}

type CollaboratorListQuery struct {
	Role   string `query:"role" json:"role"`
	Search string `query:"search" json:"search"`
}
