package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Default presentation values for moments created through an update.
const (
	DefaultTheme      = "default"
	DefaultAtmosphere = "void"
	DefaultTypography = "sans"
)

// Moment is the sealed wish and its presentation choices.
type Moment struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	AccountID  string    `gorm:"size:36;not null;index" json:"-"`
	Theme      string    `gorm:"size:64;not null" json:"theme"`
	Atmosphere string    `gorm:"size:64;not null" json:"atmosphere"`
	Typography string    `gorm:"size:64;not null" json:"typography"`
	Message    string    `gorm:"size:1120" json:"message"`
	TargetYear int       `gorm:"not null" json:"targetYear"`
	IsPublic   bool      `gorm:"not null" json:"isPublic"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName returns the database table name for Moment.
func (Moment) TableName() string {
	return "moments"
}

// BeforeCreate assigns a UUID when the caller did not.
func (m *Moment) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// MomentView is a moment joined with the username that owns it.
type MomentView struct {
	Moment
	Username string `json:"username"`
}

// MomentPatch carries the fields an update may change. Nil means "leave as is".
type MomentPatch struct {
	Message    *string
	Theme      *string
	Atmosphere *string
	Typography *string
	IsPublic   *bool
}

// Apply copies the non-nil fields of p onto m.
func (p MomentPatch) Apply(m *Moment) {
	if p.Message != nil {
		m.Message = *p.Message
	}
	if p.Theme != nil {
		m.Theme = *p.Theme
	}
	if p.Atmosphere != nil {
		m.Atmosphere = *p.Atmosphere
	}
	if p.Typography != nil {
		m.Typography = *p.Typography
	}
	if p.IsPublic != nil {
		m.IsPublic = *p.IsPublic
	}
}

// Updates returns the column map for the non-nil fields of p.
func (p MomentPatch) Updates() map[string]interface{} {
	out := make(map[string]interface{}, 5)
	if p.Message != nil {
		out["message"] = *p.Message
	}
	if p.Theme != nil {
		out["theme"] = *p.Theme
	}
	if p.Atmosphere != nil {
		out["atmosphere"] = *p.Atmosphere
	}
	if p.Typography != nil {
		out["typography"] = *p.Typography
	}
	if p.IsPublic != nil {
		out["is_public"] = *p.IsPublic
	}
	return out
}
