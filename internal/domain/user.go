package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // ID generation
	"gorm.io/gorm"           // GORM ORM library
)

// User Model
type User struct {
	ID          string    `gorm:"primaryKey;size:36" json:"_id"`                   // Primary key (UUID)
	Name        string    `gorm:"not null" json:"name"`                            // Display name
	Gmail       string    `gorm:"size:191;uniqueIndex;not null" json:"gmail"`      // Login identifier, unique
	Password    string    `gorm:"not null" json:"-"`                               // Bcrypt hash, never serialized
	Age         int       `gorm:"not null" json:"age"`                             // Age in years
	Gender      string    `gorm:"not null" json:"gender"`                          // Free-form gender
	Address     string    `gorm:"not null" json:"address"`                         // Postal address
	PhoneNumber string    `gorm:"column:phone_number;not null" json:"phoneNumber"` // Contact phone
	CreatedAt   time.Time `json:"createdAt"`                                       // Set on insert
	UpdatedAt   time.Time `json:"updatedAt"`                                       // Set on every update
}

// BeforeCreate assigns a UUID when the caller did not supply one
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserPublic is the projection returned by register and login
type UserPublic struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Gmail       string `json:"gmail"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
}

// Public strips the password and timestamps
func (u User) Public() UserPublic {
	return UserPublic{
		ID:          u.ID,
		Name:        u.Name,
		Gmail:       u.Gmail,
		Age:         u.Age,
		Gender:      u.Gender,
		Address:     u.Address,
		PhoneNumber: u.PhoneNumber,
	}
}
