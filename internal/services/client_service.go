package services

import (
	"context"

	apperrors "realestate-crm.com/realestate-crm/internal/errors"
	model "realestate-crm.com/realestate-crm/internal/models"
	repository "realestate-crm.com/realestate-crm/internal/repositories"
	"realestate-crm.com/realestate-crm/internal/validation"
)

type ClientDetail struct {
	*model.Client
	ClientTypeLabel           string `json:"client_type_label"`
	IsBuyer                   bool   `json:"is_buyer"`
	IsSeller                  bool   `json:"is_seller"`
	TotalPropertiesInterested int64  `json:"total_properties_interested"`
}

type ClientService struct {
	base
	repo       *repository.ClientRepository
	properties *repository.PropertyRepository
}

func NewClientService(
	repo *repository.ClientRepository,
	properties *repository.PropertyRepository,
	cache StatsCache,
) *ClientService {
	return &ClientService{base: newBase(cache), repo: repo, properties: properties}
}

func (s *ClientService) Filter(f repository.ClientFilter) *repository.ResultSet[model.Client] {
	return s.repo.Filter(f)
}

func (s *ClientService) Buyers() *repository.ResultSet[model.Client] {
	return s.repo.Buyers()
}

func (s *ClientService) Sellers() *repository.ResultSet[model.Client] {
	return s.repo.Sellers()
}

func (s *ClientService) Get(ctx context.Context, id uint) (*model.Client, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, apperrors.ErrClientNotFound)
	}
	return c, nil
}

func (s *ClientService) Detail(ctx context.Context, id uint) (_ *ClientDetail, err error) {
	ctx, span := startSpan(ctx, "ClientService.Detail")
	defer func() { finishSpan(span, err) }()

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &ClientDetail{
		Client:          c,
		ClientTypeLabel: c.ClientType.Label(),
		IsBuyer:         c.IsBuyer(),
		IsSeller:        c.IsSeller(),
	}
	if d.TotalPropertiesInterested, err = s.repo.InterestedPropertiesCount(ctx, id); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *ClientService) Check(c *model.Client) *validation.Errors {
	return validation.Client(c)
}

func (s *ClientService) validate(ctx context.Context, c *model.Client, links repository.ClientLinks) error {
	errs := s.Check(c)
	if err := checkEmail(ctx, errs, "Client", c.Email, c.ID, s.repo.EmailTaken); err != nil {
		return err
	}
	for field, ids := range map[string][]uint{
		"interested_property_ids": links.Interested,
		"owned_property_ids":      links.Owned,
	} {
		missing, err := s.properties.MissingIDs(ctx, ids)
		if err != nil {
			return err
		}
		for _, id := range missing {
			invalidChoice(errs, field, id)
		}
	}
	return errs.Err()
}

// Create stores c and links it to the given properties.
func (s *ClientService) Create(ctx context.Context, c *model.Client, links repository.ClientLinks) (err error) {
	ctx, span := startSpan(ctx, "ClientService.Create")
	defer func() { finishSpan(span, err) }()

	c.ID = 0
	c.CreatedDate = s.today()
	if err := s.validate(ctx, c, links); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, c, links); err != nil {
		return persistErr(err, "Client")
	}
	s.written(ctx, "client", "created", c.ID)
	return nil
}

func (s *ClientService) Update(ctx context.Context, id uint, in *model.Client, links repository.ClientLinks) (_ *model.Client, err error) {
	ctx, span := startSpan(ctx, "ClientService.Update")
	defer func() { finishSpan(span, err) }()

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name, c.Email, c.Phone = in.Name, in.Email, in.Phone
	c.ClientType, c.Notes = in.ClientType, in.Notes

	if err := s.validate(ctx, c, links); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c, links); err != nil {
		return nil, persistErr(err, "Client")
	}
	s.written(ctx, "client", "updated", c.ID)
	return s.Get(ctx, id)
}

// Delete removes the client together with every task about it.
func (s *ClientService) Delete(ctx context.Context, id uint) (_ *model.Client, err error) {
	ctx, span := startSpan(ctx, "ClientService.Delete")
	defer func() { finishSpan(span, err) }()

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, lookupErr(err, apperrors.ErrClientNotFound)
	}
	s.written(ctx, "client", "deleted", id)
	return c, nil
}
