package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account is the owner of a moment. Its username is the public handle
// and never changes once claimed.
type Account struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Username  string    `gorm:"size:20;uniqueIndex;not null" json:"username"`
	Email     *string   `gorm:"size:255" json:"email,omitempty"`
	Name      *string   `gorm:"size:255" json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Moments []Moment `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the database table name for Account.
func (Account) TableName() string {
	return "accounts"
}

// BeforeCreate assigns a UUID when the caller did not.
func (a *Account) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
