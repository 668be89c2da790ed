package models

import "gorm.io/gorm"

type Team struct {
	gorm.Model

	Name      string `gorm:"not null"`
	LeadID    *uint  `gorm:"index"` // Must reference a team_lead when set
	ProjectID uint   `gorm:"not null;index"`

	// Relationships
	Lead    *User   `gorm:"foreignKey:LeadID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Members []User  `gorm:"foreignKey:TeamID"`
}
