// Package scope computes the subset of each resource collection visible to an
// actor. Every function returns a GORM scope so handlers and services chain
// it onto list and single-row lookups alike; denial is an empty result set,
// never an error.
package scope

import (
	"gorm.io/gorm"

	"github.com/Durganjali-sidda/CBTS/internal/models"
	"github.com/Durganjali-sidda/CBTS/internal/types"
)

func none(db *gorm.DB) *gorm.DB {
	return db.Where("1 = 0")
}

// Bugs scopes the bug collection:
//   - product_manager: bugs of projects they manage
//   - engineering_manager: all bugs
//   - team_manager / team_lead: bugs of their own team
//   - developer: bugs assigned to them or belonging to their team
//   - tester / customer: bugs they reported
func Bugs(actor types.Actor) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actor.IsSuperuser || actor.Role == models.RoleAdmin {
			return db
		}

		switch actor.Role {
		case models.RoleProductManager:
			return db.Where(
				"bugs.project_id IN (SELECT id FROM projects WHERE manager_id = ? AND deleted_at IS NULL)",
				actor.ID,
			)
		case models.RoleEngineeringManager:
			return db
		case models.RoleTeamManager, models.RoleTeamLead:
			if actor.TeamID == nil {
				return none(db)
			}
			return db.Where("bugs.team_id = ?", *actor.TeamID)
		case models.RoleDeveloper:
			if actor.TeamID == nil {
				return db.Where("bugs.assigned_to_id = ?", actor.ID)
			}
			return db.Where("bugs.assigned_to_id = ? OR bugs.team_id = ?", actor.ID, *actor.TeamID)
		case models.RoleTester, models.RoleCustomer:
			return db.Where("bugs.reported_by_id = ?", actor.ID)
		}

		return none(db)
	}
}

// Users scopes the user collection:
//   - product_manager and superusers: everyone
//   - engineering_manager: everyone except product and engineering managers
//   - team_manager / team_lead: members of their own team
//   - everyone else: themselves only
func Users(actor types.Actor) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actor.IsSuperuser || actor.Role == models.RoleAdmin {
			return db
		}

		switch actor.Role {
		case models.RoleProductManager:
			return db
		case models.RoleEngineeringManager:
			return db.Where(
				"users.role NOT IN ?",
				[]models.Role{models.RoleProductManager, models.RoleEngineeringManager},
			)
		case models.RoleTeamManager, models.RoleTeamLead:
			if actor.TeamID == nil {
				return db.Where("users.id = ?", actor.ID)
			}
			return db.Where("users.team_id = ?", *actor.TeamID)
		}

		return db.Where("users.id = ?", actor.ID)
	}
}

// Projects scopes the project collection:
//   - product_manager: projects they manage
//   - engineering_manager: all projects
//   - team_manager / team_lead: the project their team belongs to
func Projects(actor types.Actor) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actor.IsSuperuser || actor.Role == models.RoleAdmin {
			return db
		}

		switch actor.Role {
		case models.RoleProductManager:
			return db.Where("projects.manager_id = ?", actor.ID)
		case models.RoleEngineeringManager:
			return db
		case models.RoleTeamManager, models.RoleTeamLead:
			if actor.TeamID == nil {
				return none(db)
			}
			return db.Where(
				"projects.id IN (SELECT project_id FROM teams WHERE id = ? AND deleted_at IS NULL)",
				*actor.TeamID,
			)
		}

		return none(db)
	}
}

// Teams scopes the team collection:
//   - engineering_manager: all teams
//   - team_manager / team_lead: teams they lead
func Teams(actor types.Actor) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actor.IsSuperuser || actor.Role == models.RoleAdmin {
			return db
		}

		switch actor.Role {
		case models.RoleEngineeringManager:
			return db
		case models.RoleTeamManager, models.RoleTeamLead:
			return db.Where("teams.lead_id = ?", actor.ID)
		}

		return none(db)
	}
}
