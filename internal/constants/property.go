package constants

type PropertyType string

const (
	PropertyHouse      PropertyType = "HOUSE"
	PropertyCondo      PropertyType = "CONDO"
	PropertyTownhouse  PropertyType = "TOWNHOUSE"
	PropertyLand       PropertyType = "LAND"
	PropertyCommercial PropertyType = "COMMERCIAL"
)

var propertyTypeChoices = choiceTable[PropertyType]{
	{Value: string(PropertyHouse), Label: "House"},
	{Value: string(PropertyCondo), Label: "Condominium"},
	{Value: string(PropertyTownhouse), Label: "Townhouse"},
	{Value: string(PropertyLand), Label: "Land"},
	{Value: string(PropertyCommercial), Label: "Commercial"},
}

func (t PropertyType) Label() string { return propertyTypeChoices.label(t) }

func (t PropertyType) Valid() bool { return propertyTypeChoices.valid(t) }

func PropertyTypeChoices() []Choice { return propertyTypeChoices.list() }

type PropertyStatus string

const (
	PropertyAvailable PropertyStatus = "AVAILABLE"
	PropertyPending   PropertyStatus = "PENDING"
	PropertySold      PropertyStatus = "SOLD"
	PropertyRented    PropertyStatus = "RENTED"
	PropertyWithdrawn PropertyStatus = "WITHDRAWN"
)

const DefaultPropertyStatus = PropertyAvailable

var propertyStatusChoices = choiceTable[PropertyStatus]{
	{Value: string(PropertyAvailable), Label: "Available"},
	{Value: string(PropertyPending), Label: "Pending"},
	{Value: string(PropertySold), Label: "Sold"},
	{Value: string(PropertyRented), Label: "Rented"},
	{Value: string(PropertyWithdrawn), Label: "Withdrawn"},
}

func (s PropertyStatus) Label() string { return propertyStatusChoices.label(s) }

func (s PropertyStatus) Valid() bool { return propertyStatusChoices.valid(s) }

func PropertyStatusChoices() []Choice { return propertyStatusChoices.list() }
