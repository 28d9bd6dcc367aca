package models

import "time"

// User represents an application user registered with a local username/password.
// Password holds the bcrypt hash and is never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
