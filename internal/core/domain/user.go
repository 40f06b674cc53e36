package domain

import "time"

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents an application user. A user may belong to many workspaces.
type User struct {
	UserID                 string       `json:"userID" db:"user_id"`
	Name                   string       `json:"name" db:"name"`
	Email                  string       `json:"email" db:"email"`
	PasswordHash           string       `json:"-" db:"password_hash"`
	AuthProvider           AuthProvider `json:"authProvider" db:"auth_provider"`
	ProviderUserID         *string      `json:"-" db:"provider_user_id"`
	RefreshTokenHash       string       `json:"-" db:"refresh_token_hash"`
	RefreshTokenExpiryTime *time.Time   `json:"-" db:"refresh_token_expiry_time"`
	AuditFields
}

// GoogleUserInfo is the subset of the Google userinfo payload we consume.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
