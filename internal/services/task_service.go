package services

import (
	"context"

	"realestate-crm.com/realestate-crm/internal/constants"
	apperrors "realestate-crm.com/realestate-crm/internal/errors"
	model "realestate-crm.com/realestate-crm/internal/models"
	repository "realestate-crm.com/realestate-crm/internal/repositories"
	"realestate-crm.com/realestate-crm/internal/validation"
)

type TaskDetail struct {
	*model.Task
	StatusLabel    string `json:"status_label"`
	PriorityLabel  string `json:"priority_label"`
	IsOverdue      bool   `json:"is_overdue"`
	IsHighPriority bool   `json:"is_high_priority"`
}

type TaskService struct {
	base
	repo          *repository.TaskRepository
	properties    *repository.PropertyRepository
	clients       *repository.ClientRepository
	collaborators *repository.CollaboratorRepository
}

func NewTaskService(
	repo *repository.TaskRepository,
	properties *repository.PropertyRepository,
	clients *repository.ClientRepository,
	collaborators *repository.CollaboratorRepository,
	cache StatsCache,
) *TaskService {
	return &TaskService{
		base:          newBase(cache),
		repo:          repo,
		properties:    properties,
		clients:       clients,
		collaborators: collaborators,
	}
}

func (s *TaskService) Filter(f repository.TaskFilter) *repository.ResultSet[model.Task] {
	return s.repo.Filter(f)
}

func (s *TaskService) Pending() *repository.ResultSet[model.Task] {
	return s.repo.Pending()
}

func (s *TaskService) Overdue() *repository.ResultSet[model.Task] {
	return s.repo.Overdue(s.today())
}

func (s *TaskService) ByProperty(propertyID uint) *repository.ResultSet[model.Task] {
	return s.repo.ByProperty(propertyID)
}

func (s *TaskService) ByClient(clientID uint) *repository.ResultSet[model.Task] {
	return s.repo.ByClient(clientID)
}

func (s *TaskService) Get(ctx context.Context, id uint) (*model.Task, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, apperrors.ErrTaskNotFound)
	}
	return t, nil
}

func (s *TaskService) Detail(ctx context.Context, id uint) (_ *TaskDetail, err error) {
	ctx, span := startSpan(ctx, "TaskService.Detail")
	defer func() { finishSpan(span, err) }()

	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.describe(t), nil
}

func (s *TaskService) describe(t *model.Task) *TaskDetail {
	return &TaskDetail{
		Task:           t,
		StatusLabel:    t.Status.Label(),
		PriorityLabel:  t.Priority.Label(),
		IsOverdue:      t.IsOverdue(s.today()),
		IsHighPriority: t.IsHighPriority(),
	}
}

// Check reports rule violations of t. References are not looked up.
func (s *TaskService) Check(t *model.Task, isNew bool) *validation.Errors {
	return validation.Task(t, isNew, s.today())
}

func (s *TaskService) validate(ctx context.Context, t *model.Task, isNew bool) error {
	errs := s.Check(t, isNew)
	refs := []struct {
		field  string
		id     *uint
		exists func(context.Context, uint) (bool, error)
	}{
		{"related_property_id", t.RelatedPropertyID, s.properties.Exists},
		{"client_id", t.ClientID, s.clients.Exists},
		{"assigned_to_id", t.AssignedToID, s.collaborators.Exists},
	}
	for _, ref := range refs {
		if err := checkRef(ctx, errs, ref.field, ref.id, ref.exists); err != nil {
			return err
		}
	}
	if err := errs.Err(); err != nil {
		return err
	}
	t.Attach(t.Attachment())
	return nil
}

func (s *TaskService) Create(ctx context.Context, t *model.Task) (err error) {
	ctx, span := startSpan(ctx, "TaskService.Create")
	defer func() { finishSpan(span, err) }()

	t.ID = 0
	if err := s.validate(ctx, t, true); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return err
	}
	s.written(ctx, "task", "created", t.ID)
	return nil
}

// Update overwrites task id with in. Unlike Create, any due date is accepted.
func (s *TaskService) Update(ctx context.Context, id uint, in *model.Task) (_ *model.Task, err error) {
	ctx, span := startSpan(ctx, "TaskService.Update")
	defer func() { finishSpan(span, err) }()

	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Title = in.Title
	t.Description = in.Description
	t.DueDate = in.DueDate
	t.Status = in.Status
	t.Priority = in.Priority
	t.RelatedPropertyID, t.ClientID = in.RelatedPropertyID, in.ClientID
	t.RelatedProperty, t.Client = nil, nil
	t.AssignedToID, t.AssignedTo = in.AssignedToID, nil

	if err := s.validate(ctx, t, false); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	s.written(ctx, "task", "updated", t.ID)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id uint) (_ *model.Task, err error) {
	ctx, span := startSpan(ctx, "TaskService.Delete")
	defer func() { finishSpan(span, err) }()

	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, lookupErr(err, apperrors.ErrTaskNotFound)
	}
	s.written(ctx, "task", "deleted", id)
	return t, nil
}

func (s *TaskService) MarkComplete(ctx context.Context, id uint) (*model.Task, error) {
	return s.setStatus(ctx, id, constants.StatusComplete, "TaskService.MarkComplete")
}

func (s *TaskService) MarkInProgress(ctx context.Context, id uint) (*model.Task, error) {
	return s.setStatus(ctx, id, constants.StatusInProgress, "TaskService.MarkInProgress")
}

func (s *TaskService) setStatus(ctx context.Context, id uint, status constants.TaskStatus, op string) (_ *model.Task, err error) {
	ctx, span := startSpan(ctx, op)
	defer func() { finishSpan(span, err) }()

	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, t, status); err != nil {
		return nil, err
	}
	t.Status = status
	s.written(ctx, "task", "status:"+string(status), t.ID)
	return t, nil
}
