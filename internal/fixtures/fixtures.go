package fixtures

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"realestate-crm.com/realestate-crm/internal/constants"
	model "realestate-crm.com/realestate-crm/internal/models"
	repository "realestate-crm.com/realestate-crm/internal/repositories"
	"realestate-crm.com/realestate-crm/internal/services"
)

// Document is a seed file. Records refer to each other by key.
type Document struct {
	Collaborators []Collaborator `yaml:"collaborators"`
	Properties    []Property     `yaml:"properties"`
	Clients       []Client       `yaml:"clients"`
	Tasks         []Task         `yaml:"tasks"`
}

type Collaborator struct {
	Key   string `yaml:"key"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Role  string `yaml:"role"`
}

type Property struct {
	Key           string           `yaml:"key"`
	Address       string           `yaml:"address"`
	Price         decimal.Decimal  `yaml:"price"`
	PropertyType  string           `yaml:"property_type"`
	Status        string           `yaml:"status"`
	ListingDate   time.Time        `yaml:"listing_date"`
	ListedDaysAgo int              `yaml:"listed_days_ago"`
	Collaborator  string           `yaml:"collaborator"`
	Bedrooms      *int             `yaml:"bedrooms"`
	Bathrooms     *decimal.Decimal `yaml:"bathrooms"`
	SquareFeet    *int             `yaml:"square_feet"`
	Description   string           `yaml:"description"`
}

type Client struct {
	Key        string   `yaml:"key"`
	Name       string   `yaml:"name"`
	Email      string   `yaml:"email"`
	Phone      string   `yaml:"phone"`
	ClientType string   `yaml:"client_type"`
	Notes      string   `yaml:"notes"`
	Interested []string `yaml:"interested"`
	Owned      []string `yaml:"owned"`
}

type Task struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	DueDate     time.Time `yaml:"due_date"`
	DueInDays   *int      `yaml:"due_in_days"`
	Status      string    `yaml:"status"`
	Priority    string    `yaml:"priority"`
	Property    string    `yaml:"property"`
	Client      string    `yaml:"client"`
	AssignedTo  string    `yaml:"assigned_to"`
}

// Summary counts the records created by Apply.
type Summary struct {
	Collaborators int
	Properties    int
	Clients       int
	Tasks         int
}

func Parse(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return &doc, nil
		}
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &doc, nil
}

type keys map[string]uint

func (k keys) ref(kind, key string) (*uint, error) {
	if key == "" {
		return nil, nil
	}
	id, ok := k[key]
	if !ok {
		return nil, fmt.Errorf("unknown %s %q", kind, key)
	}
	return &id, nil
}

func (k keys) refs(kind string, list []string) ([]uint, error) {
	ids := make([]uint, 0, len(list))
	for _, key := range list {
		id, err := k.ref(kind, key)
		if err != nil {
			return nil, err
		}
		ids = append(ids, *id)
	}
	return ids, nil
}

// Apply creates every record of doc through the services, stopping at the
// first rejected one. Relative dates are resolved against today.
func Apply(ctx context.Context, svc *services.Services, doc *Document, today time.Time) (Summary, error) {
	var sum Summary
	today = model.DateOf(today)
	collaborators, properties, clients := keys{}, keys{}, keys{}

	for _, f := range doc.Collaborators {
		c := &model.Collaborator{Name: f.Name, Email: f.Email, Role: constants.CollaboratorRole(f.Role)}
		if err := svc.Collaborators.Create(ctx, c); err != nil {
			return sum, fmt.Errorf("collaborator %q: %w", f.Key, err)
		}
		collaborators[f.Key] = c.ID
		sum.Collaborators++
	}

	for _, f := range doc.Properties {
		p := &model.Property{
			Address:      f.Address,
			Price:        f.Price,
			PropertyType: constants.PropertyType(f.PropertyType),
			Status:       constants.PropertyStatus(f.Status),
			ListingDate:  f.ListingDate,
			Bedrooms:     f.Bedrooms,
			SquareFeet:   f.SquareFeet,
			Description:  f.Description,
		}
		if p.ListingDate.IsZero() {
			p.ListingDate = today.AddDate(0, 0, -f.ListedDaysAgo)
		}
		if f.Bathrooms != nil {
			p.Bathrooms = decimal.NewNullDecimal(*f.Bathrooms)
		}
		var err error
		if p.CollaboratorID, err = collaborators.ref("collaborator", f.Collaborator); err != nil {
			return sum, fmt.Errorf("property %q: %w", f.Key, err)
		}
		if err := svc.Properties.Create(ctx, p); err != nil {
			return sum, fmt.Errorf("property %q: %w", f.Key, err)
		}
		properties[f.Key] = p.ID
		sum.Properties++
	}

	for _, f := range doc.Clients {
		c := &model.Client{
			Name:       f.Name,
			Email:      f.Email,
			Phone:      f.Phone,
			ClientType: constants.ClientType(f.ClientType),
			Notes:      f.Notes,
		}
		var (
			links repository.ClientLinks
			err   error
		)
		if links.Interested, err = properties.refs("property", f.Interested); err != nil {
			return sum, fmt.Errorf("client %q: %w", f.Key, err)
		}
		if links.Owned, err = properties.refs("property", f.Owned); err != nil {
			return sum, fmt.Errorf("client %q: %w", f.Key, err)
		}
		if err := svc.Clients.Create(ctx, c, links); err != nil {
			return sum, fmt.Errorf("client %q: %w", f.Key, err)
		}
		clients[f.Key] = c.ID
		sum.Clients++
	}

	for i, f := range doc.Tasks {
		t := &model.Task{
			Title:       f.Title,
			Description: f.Description,
			DueDate:     f.DueDate,
			Status:      constants.TaskStatus(f.Status),
			Priority:    constants.TaskPriority(f.Priority),
		}
		if f.DueInDays != nil {
			t.DueDate = today.AddDate(0, 0, *f.DueInDays)
		}
		if err := resolveTask(t, f, properties, clients, collaborators); err != nil {
			return sum, fmt.Errorf("task #%d %q: %w", i+1, f.Title, err)
		}
		if err := svc.Tasks.Create(ctx, t); err != nil {
			return sum, fmt.Errorf("task #%d %q: %w", i+1, f.Title, err)
		}
		sum.Tasks++
	}

	return sum, nil
}

func resolveTask(t *model.Task, f Task, properties, clients, collaborators keys) error {
	var err error
	if t.RelatedPropertyID, err = properties.ref("property", f.Property); err != nil {
		return err
	}
	if t.ClientID, err = clients.ref("client", f.Client); err != nil {
		return err
	}
	t.AssignedToID, err = collaborators.ref("collaborator", f.AssignedTo)
	return err
}
