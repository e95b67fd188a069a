package services

import (
	"context"

	"realestate-crm.com/realestate-crm/internal/constants"
	apperrors "realestate-crm.com/realestate-crm/internal/errors"
	model "realestate-crm.com/realestate-crm/internal/models"
	repository "realestate-crm.com/realestate-crm/internal/repositories"
	"realestate-crm.com/realestate-crm/internal/validation"
)

type PropertyDetail struct {
	*model.Property
	StatusLabel            string `json:"status_label"`
	PropertyTypeLabel      string `json:"property_type_label"`
	IsAvailable            bool   `json:"is_available"`
	InterestedClientsCount int64  `json:"interested_clients_count"`
}

type PropertyService struct {
	base
	repo          *repository.PropertyRepository
	collaborators *repository.CollaboratorRepository
}

func NewPropertyService(
	repo *repository.PropertyRepository,
	collaborators *repository.CollaboratorRepository,
	cache StatsCache,
) *PropertyService {
	return &PropertyService{base: newBase(cache), repo: repo, collaborators: collaborators}
}

func (s *PropertyService) Filter(f repository.PropertyFilter) *repository.ResultSet[model.Property] {
	return s.repo.Filter(f)
}

func (s *PropertyService) Available() *repository.ResultSet[model.Property] {
	return s.repo.Available()
}

func (s *PropertyService) ByCollaborator(collaboratorID uint) *repository.ResultSet[model.Property] {
	return s.repo.ByCollaborator(collaboratorID)
}

func (s *PropertyService) Statistics(ctx context.Context) (_ model.PropertyStatistics, err error) {
	ctx, span := startSpan(ctx, "PropertyService.Statistics")
	defer func() { finishSpan(span, err) }()

	return s.repo.Statistics(ctx)
}

func (s *PropertyService) Get(ctx context.Context, id uint) (*model.Property, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, apperrors.ErrPropertyNotFound)
	}
	return p, nil
}

func (s *PropertyService) Detail(ctx context.Context, id uint) (_ *PropertyDetail, err error) {
	ctx, span := startSpan(ctx, "PropertyService.Detail")
	defer func() { finishSpan(span, err) }()

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &PropertyDetail{
		Property:          p,
		StatusLabel:       p.Status.Label(),
		PropertyTypeLabel: p.PropertyType.Label(),
		IsAvailable:       p.IsAvailable(),
	}
	if d.InterestedClientsCount, err = s.repo.InterestedClientsCount(ctx, id); err != nil {
		return nil, err
	}
	return d, nil
}

// Check runs the field rules on p without touching the database.
func (s *PropertyService) Check(p *model.Property, isNew bool) *validation.Errors {
	return validation.Property(p, isNew, s.today())
}

func (s *PropertyService) validate(ctx context.Context, p *model.Property, isNew bool) error {
	errs := s.Check(p, isNew)
	if err := checkRef(ctx, errs, "collaborator_id", p.CollaboratorID, s.collaborators.Exists); err != nil {
		return err
	}
	return errs.Err()
}

func (s *PropertyService) Create(ctx context.Context, p *model.Property) (err error) {
	ctx, span := startSpan(ctx, "PropertyService.Create")
	defer func() { finishSpan(span, err) }()

	p.ID = 0
	if err := s.validate(ctx, p, true); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	s.written(ctx, "property", "created", p.ID)
	return nil
}

func (s *PropertyService) Update(ctx context.Context, id uint, in *model.Property) (_ *model.Property, err error) {
	ctx, span := startSpan(ctx, "PropertyService.Update")
	defer func() { finishSpan(span, err) }()

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Address = in.Address
	p.Price = in.Price
	p.PropertyType = in.PropertyType
	p.Status = in.Status
	p.ListingDate = in.ListingDate
	p.CollaboratorID, p.Collaborator = in.CollaboratorID, nil
	p.Bedrooms = in.Bedrooms
	p.Bathrooms = in.Bathrooms
	p.SquareFeet = in.SquareFeet
	p.Description = in.Description

	if err := s.validate(ctx, p, false); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.written(ctx, "property", "updated", p.ID)
	return p, nil
}

// Delete removes the property and, with it, every task about it.
func (s *PropertyService) Delete(ctx context.Context, id uint) (_ *model.Property, err error) {
	ctx, span := startSpan(ctx, "PropertyService.Delete")
	defer func() { finishSpan(span, err) }()

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, lookupErr(err, apperrors.ErrPropertyNotFound)
	}
	s.written(ctx, "property", "deleted", id)
	return p, nil
}

func (s *PropertyService) MarkAsSold(ctx context.Context, id uint) (*model.Property, error) {
	return s.setStatus(ctx, id, constants.PropertySold, "PropertyService.MarkAsSold")
}

func (s *PropertyService) MarkAsPending(ctx context.Context, id uint) (*model.Property, error) {
	return s.setStatus(ctx, id, constants.PropertyPending, "PropertyService.MarkAsPending")
}

func (s *PropertyService) setStatus(ctx context.Context, id uint, status constants.PropertyStatus, op string) (_ *model.Property, err error) {
	ctx, span := startSpan(ctx, op)
	defer func() { finishSpan(span, err) }()

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, p, status); err != nil {
		return nil, err
	}
	p.Status = status
	s.written(ctx, "property", "status:"+string(status), p.ID)
	return p, nil
}
