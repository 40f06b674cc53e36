package domain

import "time"

// Workspace is the tenant boundary. Clients, projects, timesheets and
// invoices all belong to exactly one workspace.
type Workspace struct {
	WorkspaceID string `json:"workspaceID" db:"workspace_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	IsActive    bool   `json:"isActive" db:"is_active"`
	AuditFields
	Version int64 `json:"-" db:"version"`
}

// UserWorkspaceRole defines the possible roles a user can have within a workspace.
type UserWorkspaceRole string

const (
	RoleAdmin    UserWorkspaceRole = "ADMIN"
	RoleMember   UserWorkspaceRole = "MEMBER"
	RoleReadOnly UserWorkspaceRole = "READONLY"
	RoleRemoved  UserWorkspaceRole = "REMOVED" // Users who have been removed from the workspace
)

// UserWorkspace represents the membership of a User in a Workspace.
type UserWorkspace struct {
	UserID      string            `json:"userID"`
	UserName    string            `json:"userName"`
	WorkspaceID string            `json:"workspaceID"`
	Role        UserWorkspaceRole `json:"role"`
	JoinedAt    time.Time         `json:"joinedAt"`
}

// WorkspaceSettings is the flattened key-value settings map for one workspace.
// Well-known keys are listed below; unknown keys round-trip untouched.
type WorkspaceSettings map[string]string

const (
	SettingCurrency      = "currency"
	SettingTaxRate       = "taxRate"
	SettingInvoicePrefix = "invoicePrefix"
	SettingDateFormat    = "dateFormat"
	SettingTimeFormat    = "timeFormat"
)
