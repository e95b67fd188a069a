package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	model "realestate-crm.com/realestate-crm/internal/models"
	repository "realestate-crm.com/realestate-crm/internal/repositories"
	"realestate-crm.com/realestate-crm/internal/validation"
)

const tracerName = "crm/services"

// StatsCache keeps the dashboard counters between requests. Services
// invalidate it after every successful write.
//
// Get reports the cache generation alongside a miss; Set stores counters
// under that generation, and an Invalidate in between makes them unreadable.
type StatsCache interface {
	Get(ctx context.Context, day time.Time) (stats *model.DashboardStats, generation int64, ok bool)
	Set(ctx context.Context, stats model.DashboardStats, generation int64)
	Invalidate(ctx context.Context)
}

type noopStatsCache struct{}

func (noopStatsCache) Get(context.Context, time.Time) (*model.DashboardStats, int64, bool) {
	return nil, 0, false
}

func (noopStatsCache) Set(context.Context, model.DashboardStats, int64) {}

func (noopStatsCache) Invalidate(context.Context) {}

type base struct {
	cache StatsCache
	today func() time.Time
}

func newBase(cache StatsCache) base {
	if cache == nil {
		cache = noopStatsCache{}
	}
	return base{cache: cache, today: model.Today}
}

// SetClock overrides the source of the current day.
func (b *base) SetClock(today func() time.Time) {
	b.today = func() time.Time { return model.DateOf(today()) }
}

func (b *base) written(ctx context.Context, entity, action string, id uint) {
	b.cache.Invalidate(ctx)
	log.WithFields(log.Fields{
		"entity": entity,
		"action": action,
		"id":     id,
	}).Info("crm.write")
}

// Services bundles every service built on one database handle.
type Services struct {
	Collaborators *CollaboratorService
	Properties    *PropertyService
	Clients       *ClientService
	Tasks         *TaskService
	Dashboard     *DashboardService
}

func New(db *gorm.DB, cache StatsCache) *Services {
	collaborators := repository.NewCollaboratorRepository(db)
	properties := repository.NewPropertyRepository(db)
	clients := repository.NewClientRepository(db)
	tasks := repository.NewTaskRepository(db)

	return &Services{
		Collaborators: NewCollaboratorService(collaborators, tasks, cache),
		Properties:    NewPropertyService(properties, collaborators, cache),
		Clients:       NewClientService(clients, properties, cache),
		Tasks:         NewTaskService(tasks, properties, clients, collaborators, cache),
		Dashboard:     NewDashboardService(properties, clients, tasks, collaborators, cache),
	}
}

// SetClock applies one clock to every service.
func (s *Services) SetClock(today func() time.Time) {
	s.Collaborators.SetClock(today)
	s.Properties.SetClock(today)
	s.Clients.SetClock(today)
	s.Tasks.SetClock(today)
	s.Dashboard.SetClock(today)
}

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name)
}

func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func lookupErr(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

func duplicateEmail(entity string) *validation.Errors {
	e := validation.New()
	e.Add("email", fmt.Sprintf("%s with this email already exists.", entity))
	return e
}

func invalidChoice(e *validation.Errors, field string, id uint) {
	e.Add(field, fmt.Sprintf("Select a valid choice. %d is not one of the available choices.", id))
}

// checkEmail adds a field error when email is already used by another record.
func checkEmail(ctx context.Context, e *validation.Errors, entity, email string, selfID uint,
	taken func(context.Context, string, uint) (bool, error)) error {
	if e.Has("email") {
		return nil
	}
	dup, err := taken(ctx, email, selfID)
	if err != nil {
		return err
	}
	if dup {
		e.Merge(duplicateEmail(entity))
	}
	return nil
}

// checkRef adds a field error when id is set but names no record.
func checkRef(ctx context.Context, e *validation.Errors, field string, id *uint,
	exists func(context.Context, uint) (bool, error)) error {
	if id == nil {
		return nil
	}
	ok, err := exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		invalidChoice(e, field, *id)
	}
	return nil
}

// persistErr maps unique-email violations raised by the store to a
// validation failure on the email field.
func persistErr(err error, entity string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return duplicateEmail(entity)
	}
	return err
}
