package model

import "time"

// DashboardStats are the global counters shown on the home page.
type DashboardStats struct {
	Day                 time.Time `json:"day"`
	PropertyCount       int64     `json:"property_count"`
	ClientCount         int64     `json:"client_count"`
	PendingTaskCount    int64     `json:"pending_task_count"`
	CollaboratorCount   int64     `json:"collaborator_count"`
	AvailableProperties int64     `json:"available_properties"`
	OverdueTasks        int64     `json:"overdue_tasks"`
}

type PropertyStatistics struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
	Pending   int64 `json:"pending"`
	Sold      int64 `json:"sold"`
}

// Workload aggregates what is currently assigned to one collaborator.
type Workload struct {
	Properties      int64 `json:"properties"`
	PendingTasks    int64 `json:"pending_tasks"`
	InProgressTasks int64 `json:"in_progress_tasks"`
}
