package models

import "gorm.io/gorm"

type BugStatus string

const (
	BugStatusOpen       BugStatus = "open"
	BugStatusInProgress BugStatus = "in_progress"
	BugStatusResolved   BugStatus = "resolved"
	BugStatusClosed     BugStatus = "closed"
)

func (s BugStatus) Valid() bool {
	switch s {
	case BugStatusOpen, BugStatusInProgress, BugStatusResolved, BugStatusClosed:
		return true
	}
	return false
}

type BugPriority string

const (
	BugPriorityLow      BugPriority = "low"
	BugPriorityMedium   BugPriority = "medium"
	BugPriorityHigh     BugPriority = "high"
	BugPriorityCritical BugPriority = "critical"
)

func (p BugPriority) Valid() bool {
	switch p {
	case BugPriorityLow, BugPriorityMedium, BugPriorityHigh, BugPriorityCritical:
		return true
	}
	return false
}

type Bug struct {
	gorm.Model

	Title       string `gorm:"not null"`
	Description string
	Status      BugStatus   `gorm:"not null;default:'open'"`
	Priority    BugPriority `gorm:"not null;default:'medium'"`

	// ReportedByID is nullable so deleting a reporter never destroys bug
	// history. It is always server-set from the authenticated actor.
	ReportedByID *uint `gorm:"index"`

	// AssignedToID must reference a developer when set.
	AssignedToID *uint `gorm:"index"`

	ProjectID uint  `gorm:"not null;index"`
	TeamID    *uint `gorm:"index"`

	// Relationships
	ReportedBy *User   `gorm:"foreignKey:ReportedByID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	AssignedTo *User   `gorm:"foreignKey:AssignedToID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Project    Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Team       *Team   `gorm:"foreignKey:TeamID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
