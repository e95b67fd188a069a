package constants

type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusComplete   TaskStatus = "COMPLETE"
	StatusCancelled  TaskStatus = "CANCELLED"
)

const DefaultTaskStatus = StatusPending

var taskStatusChoices = choiceTable[TaskStatus]{
	{Value: string(StatusPending), Label: "Pending"},
	{Value: string(StatusInProgress), Label: "In Progress"},
	{Value: string(StatusComplete), Label: "Complete"},
	{Value: string(StatusCancelled), Label: "Cancelled"},
}

func (s TaskStatus) Label() string { return taskStatusChoices.label(s) }

func (s TaskStatus) Valid() bool { return taskStatusChoices.valid(s) }

// Closed reports whether a task in this status can no longer become overdue.
func (s TaskStatus) Closed() bool {
	return s == StatusComplete || s == StatusCancelled
}

func TaskStatusChoices() []Choice { return taskStatusChoices.list() }

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

const DefaultTaskPriority = PriorityMedium

var taskPriorityChoices = choiceTable[TaskPriority]{
	{Value: string(PriorityLow), Label: "Low"},
	{Value: string(PriorityMedium), Label: "Medium"},
	{Value: string(PriorityHigh), Label: "High"},
}

func (p TaskPriority) Label() string { return taskPriorityChoices.label(p) }

func (p TaskPriority) Valid() bool { return taskPriorityChoices.valid(p) }

// Rank orders priorities from LOW (1) to HIGH (3); unknown values rank 0.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	}
	return 0
}

func TaskPriorityChoices() []Choice { return taskPriorityChoices.list() }
