package models

import "gorm.io/gorm"

// Role is the closed set of organizational roles. A user holds exactly one
// role and it is never changed after assignment.
type Role string

const (
	RoleProductManager     Role = "product_manager"
	RoleEngineeringManager Role = "engineering_manager"
	RoleTeamManager        Role = "team_manager"
	RoleTeamLead           Role = "team_lead"
	RoleDeveloper          Role = "developer"
	RoleTester             Role = "tester"
	RoleCustomer           Role = "customer"
	RoleAdmin              Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleProductManager, RoleEngineeringManager, RoleTeamManager,
		RoleTeamLead, RoleDeveloper, RoleTester, RoleCustomer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	gorm.Model

	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"not null;index"`
	TeamID       *uint  `gorm:"index"`
	IsSuperuser  bool   `gorm:"not null;default:false"`
	IsActive     bool   `gorm:"not null;default:true"`

	// Relationships
	Team *Team `gorm:"foreignKey:TeamID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
