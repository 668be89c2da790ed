package models

import "gorm.io/gorm"

type Project struct {
	gorm.Model

	Name        string `gorm:"not null"`
	Description string
	ManagerID   uint `gorm:"not null;index"` // Must reference a product_manager

	// Relationships
	Manager User   `gorm:"foreignKey:ManagerID"`
	Teams   []Team `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Bugs    []Bug  `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
