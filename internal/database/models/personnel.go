package models

import (
	"time"

	"github.com/google/uuid"
)

type Personnel struct {
	Base
	OrganizationID uuid.UUID `gorm:"type:uuid;index;not null" json:"organization_id"`

	Name     string `gorm:"not null" json:"name"`
	Position string `gorm:"not null" json:"position"`

	// Rank is free text; the UI offers suggestions but nothing is enforced.
	Rank      string     `json:"rank,omitempty"`
	PhotoURL  string     `json:"photo_url,omitempty"`
	Bio       string     `gorm:"type:text" json:"bio,omitempty"`
	IsCurrent bool       `gorm:"default:true;index" json:"is_current"`
	StartDate *time.Time `json:"start_date,omitempty"`

	// Relationships
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}

func (Personnel) TableName() string {
	return "personnel"
}
