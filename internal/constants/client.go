package constants

type ClientType string

const (
	ClientBuyer  ClientType = "BUYER"
	ClientSeller ClientType = "SELLER"
	ClientBoth   ClientType = "BOTH"
)

var clientTypeChoices = choiceTable[ClientType]{
	{Value: string(ClientBuyer), Label: "Buyer"},
	{Value: string(ClientSeller), Label: "Seller"},
	{Value: string(ClientBoth), Label: "Buyer/Seller"},
}

func (t ClientType) Label() string { return clientTypeChoices.label(t) }

func (t ClientType) Valid() bool { return clientTypeChoices.valid(t) }

func ClientTypeChoices() []Choice { return clientTypeChoices.list() }
