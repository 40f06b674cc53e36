package domain

// ClientStatus is the lifecycle status of a client relationship.
type ClientStatus string

const (
	ClientActive    ClientStatus = "active"
	ClientCompleted ClientStatus = "completed"
	ClientProspect  ClientStatus = "prospect"
)

// Client is a billable customer within a workspace.
type Client struct {
	ClientID     string       `json:"clientID" db:"client_id"`
	WorkspaceID  string       `json:"workspaceID" db:"workspace_id"`
	Name         string       `json:"name" db:"name"`
	ContactName  string       `json:"contactName" db:"contact_name"`
	ContactEmail string       `json:"contactEmail" db:"contact_email"`
	ContactPhone string       `json:"contactPhone" db:"contact_phone"`
	Address      string       `json:"address" db:"address"`
	Status       ClientStatus `json:"status" db:"status"`
	AuditFields
}
