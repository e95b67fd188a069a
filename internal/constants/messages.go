package constants

const (
	PropertyCreated = "Property %q created successfully!"
	PropertyUpdated = "Property %q updated successfully!"
	PropertyDeleted = "Property %q deleted successfully!"
	PropertySoldMsg = "Property %q marked as sold."
	PropertyPendMsg = "Property %q marked as pending."

	ClientCreated = "Client %q has been created."
	ClientUpdated = "Client %q has been updated."
	ClientDeleted = "Client %q has been deleted."

	TaskCreated    = "Task %q created successfully!"
	TaskUpdated    = "Task %q updated successfully!"
	TaskDeleted    = "Task %q deleted successfully!"
	TaskCompleted  = "Task %q marked as complete."
	TaskInProgress = "Task %q marked as in progress."

	CollaboratorCreated = "Collaborator %q created successfully!"
	CollaboratorUpdated = "Collaborator %q updated successfully!"
	CollaboratorDeleted = "Collaborator %q deleted successfully!"
)
