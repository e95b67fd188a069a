package constants

type CollaboratorRole string

const (
	RoleAgent     CollaboratorRole = "AGENT"
	RoleManager   CollaboratorRole = "MANAGER"
	RoleAdmin     CollaboratorRole = "ADMIN"
	RoleAssistant CollaboratorRole = "ASSISTANT"
)

const DefaultCollaboratorRole = RoleAgent

var roleChoices = choiceTable[CollaboratorRole]{
	{Value: string(RoleAgent), Label: "Real Estate Agent"},
	{Value: string(RoleManager), Label: "Manager"},
	{Value: string(RoleAdmin), Label: "Administrator"},
	{Value: string(RoleAssistant), Label: "Assistant"},
}

// Label returns the display name of the role, or the raw value when unknown.
func (r CollaboratorRole) Label() string { return roleChoices.label(r) }

func (r CollaboratorRole) Valid() bool { return roleChoices.valid(r) }

func RoleChoices() []Choice { return roleChoices.list() }
