package models

import "time"

// Roles a user can hold. Every account starts as RoleUser; a privileged
// actor promotes accounts to creator or admin later.
const (
	RoleUser    = "user"
	RoleCreator = "creator"
	RoleAdmin   = "admin"
)

// ValidRole reports whether role is one of the assignable roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleCreator || role == RoleAdmin
}

// User represents an account on the contest platform. Identity comes from the
// external token service, so there is no password column; Email is the natural
// key and carries a unique index so two concurrent registrations of the same
// address cannot both succeed.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Name      string    `json:"name" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	PhotoURL  string    `json:"photoURL" gorm:"type:varchar(512)" validate:"omitempty,url"`
	Role      string    `json:"role" gorm:"type:varchar(20)"`
	Wins      int       `json:"wins" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
}
