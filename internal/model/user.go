package model

import "time"

type Role string

const (
	RoleOwner    Role = "OWNER"
	RoleManager  Role = "MANAGER"
	RoleStaff    Role = "STAFF"
	RolePWDStaff Role = "PWD_STAFF"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleStaff, RolePWDStaff:
		return true
	}
	return false
}

// Permission actions checked against a user's role.
const (
	ActionViewInventory  = "VIEW_INVENTORY"
	ActionProcessSale    = "PROCESS_SALE"
	ActionViewSales      = "VIEW_SALES"
	ActionUpdateStock    = "UPDATE_STOCK"
	ActionDeleteUser     = "DELETE_USER"
	ActionSystemSettings = "SYSTEM_SETTINGS"
)

// User carries credentials, a role and per-user accessibility preferences.
// The preference flags are plain configuration data; nothing in the ledger
// branches on them.
type User struct {
	BaseModel
	Username     string     `db:"username"`
	PasswordHash string     `db:"password_hash"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Email        string     `db:"email"`
	Role         Role       `db:"role"`
	LastLogin    *time.Time `db:"last_login"`
	IsActive     bool       `db:"is_active"`

	HighContrastMode          bool   `db:"high_contrast_mode"`
	LargeTextMode             bool   `db:"large_text_mode"`
	ScreenReaderEnabled       bool   `db:"screen_reader_enabled"`
	KeyboardNavigationEnabled bool   `db:"keyboard_navigation_enabled"`
	PreferredLanguage         string `db:"preferred_language"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// HasPermission applies the fixed role matrix. Inactive users have no
// permissions regardless of role.
func (u *User) HasPermission(action string) bool {
	if !u.IsActive {
		return false
	}

	switch u.Role {
	case RoleOwner:
		return true
	case RoleManager:
		return action != ActionDeleteUser && action != ActionSystemSettings
	case RoleStaff, RolePWDStaff:
		switch action {
		case ActionViewInventory, ActionProcessSale, ActionViewSales, ActionUpdateStock:
			return true
		}
		return false
	default:
		return false
	}
}
