package services

import (
	"context"

	"realestate-crm.com/realestate-crm/internal/constants"
	model "realestate-crm.com/realestate-crm/internal/models"
	repository "realestate-crm.com/realestate-crm/internal/repositories"
)

// Digest is the periodic summary logged by the digest command.
type Digest struct {
	Stats   model.DashboardStats `json:"stats"`
	Overdue []model.Task         `json:"overdue"`
}

type DashboardService struct {
	base
	properties    *repository.PropertyRepository
	clients       *repository.ClientRepository
	tasks         *repository.TaskRepository
	collaborators *repository.CollaboratorRepository
}

func NewDashboardService(
	properties *repository.PropertyRepository,
	clients *repository.ClientRepository,
	tasks *repository.TaskRepository,
	collaborators *repository.CollaboratorRepository,
	cache StatsCache,
) *DashboardService {
	return &DashboardService{
		base:          newBase(cache),
		properties:    properties,
		clients:       clients,
		tasks:         tasks,
		collaborators: collaborators,
	}
}

// Stats returns the home page counters, served from the cache when it holds
// a value computed today.
func (s *DashboardService) Stats(ctx context.Context) (_ model.DashboardStats, err error) {
	ctx, span := startSpan(ctx, "DashboardService.Stats")
	defer func() { finishSpan(span, err) }()

	today := s.today()
	cached, generation, ok := s.cache.Get(ctx, today)
	if ok {
		return *cached, nil
	}

	stats := model.DashboardStats{Day: today}
	counters := []struct {
		dst   *int64
		count func(context.Context) (int64, error)
	}{
		{&stats.PropertyCount, s.properties.Filter(repository.PropertyFilter{}).Count},
		{&stats.ClientCount, s.clients.Filter(repository.ClientFilter{}).Count},
		{&stats.PendingTaskCount, s.tasks.Pending().Count},
		{&stats.CollaboratorCount, s.collaborators.Filter(repository.CollaboratorFilter{}).Count},
		{&stats.AvailableProperties, s.properties.Filter(repository.PropertyFilter{Status: constants.PropertyAvailable}).Count},
		{&stats.OverdueTasks, s.tasks.Overdue(today).Count},
	}
	for _, c := range counters {
		if *c.dst, err = c.count(ctx); err != nil {
			return model.DashboardStats{}, err
		}
	}

	s.cache.Set(ctx, stats, generation)
	return stats, nil
}

func (s *DashboardService) Digest(ctx context.Context) (Digest, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return Digest{}, err
	}
	overdue, err := s.tasks.Overdue(s.today()).All(ctx)
	if err != nil {
		return Digest{}, err
	}
	return Digest{Stats: stats, Overdue: overdue}, nil
}
