package dto

type TaskRequest struct {
	Title             Value `json:"title" form:"title"`
	Description       Value `json:"description" form:"description"`
	DueDate           Value `json:"due_date" form:"due_date"`
	Status            Value `json:"status" form:"status"`
	Priority          Value `json:"priority" form:"priority"`
	RelatedPropertyID Value `json:"related_property_id" form:"related_property_id"`
	ClientID          Value `json:"client_id" form:"client_id"`
	AssignedToID      Value `json:"assigned_to_id" form:"assigned_to_id"`
}

func (r TaskRequest) Normalized() TaskRequest {
	return TaskRequest{
		Title:             r.Title.Trim(),
		Description:       r.Description.Trim(),
		DueDate:           r.DueDate.Trim(),
		Status:            r.Status.Trim(),
		Priority:          r.Priority.Trim(),
		RelatedPropertyID: r.RelatedPropertyID.Trim(),
		ClientID:          r.ClientID.Trim(),
		AssignedToID:      r.AssignedToID.Trim(),
	}
}

type TaskListQuery struct {
	Status     string `query:"status" json:"status"`
	Priority   string `query:"priority" json:"priority"`
	Search     string `query:"search" json:"search"`
	AssignedTo string `query:"assigned_to" json:"assigned_to"`
}
