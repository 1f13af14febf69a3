package models

// Role represents user roles in the system
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleDriver  Role = "driver"
)

// User is the payload accepted when creating a user.
// Password is write-only: it is hashed into password_hash and never stored as given.
type User struct {
	Name             string   `bson:"name" json:"name" validate:"required"`
	Email            string   `bson:"email" json:"email" validate:"required,email"`
	Phone            *string  `bson:"phone" json:"phone"`
	Role             Role     `bson:"role" json:"role" validate:"omitempty,oneof=admin manager driver"`
	AvatarURL        *string  `bson:"avatar_url" json:"avatar_url" validate:"omitempty,url"`
	BankAccount      *string  `bson:"bank_account" json:"bank_account"`
	BankIFSC         *string  `bson:"bank_ifsc" json:"bank_ifsc"`
	EmergencyNumbers []string `bson:"emergency_numbers" json:"emergency_numbers"`
	Password         string   `bson:"-" json:"password,omitempty" validate:"omitempty,min=8"`
}

// ApplyDefaults fills the fields that have a schema default.
func (u *User) ApplyDefaults() {
	if u.Role == "" {
		u.Role = RoleManager
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest is the body of a password change by the signed-in user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

// Claims represents JWT claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Exp    int64  `json:"exp"`
}

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleDriver:
		return true
	default:
		return false
	}
}

// HasPermission checks if a role may perform a specific action
func (r Role) HasPermission(action string) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleManager:
		return action != "manage_users"
	case RoleDriver:
		return action == "view_vehicles" || action == "view_loads" ||
			action == "accept_load" || action == "record_transaction" ||
			action == "view_transactions" || action == "upload_document" ||
			action == "view_notifications"
	default:
		return false
	}
}
