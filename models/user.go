// models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff and client roles. The role set is closed: there is no role
// administration surface, access checks key off these constants directly.
const (
	RoleAdmin          = "admin"
	RoleSiteAgent      = "site_agent"
	RoleEngineer       = "engineer"
	RoleForeman        = "foreman"
	RoleDriverOperator = "driver_operator"
	RoleMason          = "mason"
	RoleCasual         = "casual"
	RoleClient         = "client"
)

var validRoles = map[string]bool{
	RoleAdmin:          true,
	RoleSiteAgent:      true,
	RoleEngineer:       true,
	RoleForeman:        true,
	RoleDriverOperator: true,
	RoleMason:          true,
	RoleCasual:         true,
	RoleClient:         true,
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return validRoles[role]
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"size:15" json:"phone,omitempty"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:30;not null;index" json:"role"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

// IsClient reports whether the user is an external client rather than staff.
func (u *User) IsClient() bool {
	return u.Role == RoleClient
}
