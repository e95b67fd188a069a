package services

import (
	"context"

	apperrors "realestate-crm.com/realestate-crm/internal/errors"
	model "realestate-crm.com/realestate-crm/internal/models"
	repository "realestate-crm.com/realestate-crm/internal/repositories"
	"realestate-crm.com/realestate-crm/internal/validation"
)

type CollaboratorDetail struct {
	*model.Collaborator
	RoleLabel             string `json:"role_label"`
	ActivePropertiesCount int64  `json:"active_properties_count"`
	PendingTasksCount     int64  `json:"pending_tasks_count"`
}

type CollaboratorService struct {
	base
	repo  *repository.CollaboratorRepository
	tasks *repository.TaskRepository
}

func NewCollaboratorService(
	repo *repository.CollaboratorRepository,
	tasks *repository.TaskRepository,
	cache StatsCache,
) *CollaboratorService {
	return &CollaboratorService{base: newBase(cache), repo: repo, tasks: tasks}
}

func (s *CollaboratorService) Filter(f repository.CollaboratorFilter) *repository.ResultSet[model.Collaborator] {
	return s.repo.Filter(f)
}

func (s *CollaboratorService) Agents() *repository.ResultSet[model.Collaborator] {
	return s.repo.Agents()
}

func (s *CollaboratorService) Get(ctx context.Context, id uint) (*model.Collaborator, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, apperrors.ErrCollaboratorNotFound)
	}
	return c, nil
}

func (s *CollaboratorService) Detail(ctx context.Context, id uint) (_ *CollaboratorDetail, err error) {
	ctx, span := startSpan(ctx, "CollaboratorService.Detail")
	defer func() { finishSpan(span, err) }()

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &CollaboratorDetail{Collaborator: c, RoleLabel: c.Role.Label()}
	if d.ActivePropertiesCount, err = s.repo.ActivePropertiesCount(ctx, id); err != nil {
		return nil, err
	}
	if d.PendingTasksCount, err = s.tasks.PendingCountFor(ctx, id); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *CollaboratorService) Check(c *model.Collaborator, isNew bool) *validation.Errors {
	return validation.Collaborator(c, isNew)
}

func (s *CollaboratorService) validate(ctx context.Context, c *model.Collaborator, isNew bool) error {
	errs := s.Check(c, isNew)
	if err := checkEmail(ctx, errs, "Collaborator", c.Email, c.ID, s.repo.EmailTaken); err != nil {
		return err
	}
	return errs.Err()
}

func (s *CollaboratorService) Create(ctx context.Context, c *model.Collaborator) (err error) {
	ctx, span := startSpan(ctx, "CollaboratorService.Create")
	defer func() { finishSpan(span, err) }()

	c.ID = 0
	if err := s.validate(ctx, c, true); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return persistErr(err, "Collaborator")
	}
	s.written(ctx, "collaborator", "created", c.ID)
	return nil
}

// Update overwrites the editable fields of collaborator id with those of in.
func (s *CollaboratorService) Update(ctx context.Context, id uint, in *model.Collaborator) (_ *model.Collaborator, err error) {
	ctx, span := startSpan(ctx, "CollaboratorService.Update")
	defer func() { finishSpan(span, err) }()

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name, c.Email, c.Role = in.Name, in.Email, in.Role
	if err := s.validate(ctx, c, false); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, persistErr(err, "Collaborator")
	}
	s.written(ctx, "collaborator", "updated", c.ID)
	return c, nil
}

// Delete removes the collaborator; its properties and tasks become unassigned.
func (s *CollaboratorService) Delete(ctx context.Context, id uint) (_ *model.Collaborator, err error) {
	ctx, span := startSpan(ctx, "CollaboratorService.Delete")
	defer func() { finishSpan(span, err) }()

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, lookupErr(err, apperrors.ErrCollaboratorNotFound)
	}
	s.written(ctx, "collaborator", "deleted", id)
	return c, nil
}

func (s *CollaboratorService) Workload(ctx context.Context, id uint) (_ model.Workload, err error) {
	ctx, span := startSpan(ctx, "CollaboratorService.Workload")
	defer func() { finishSpan(span, err) }()

	if _, err := s.Get(ctx, id); err != nil {
		return model.Workload{}, err
	}
	return s.repo.Workload(ctx, id)
}
