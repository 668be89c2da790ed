// Package policy decides, for a given actor and action, whether the action is
// permitted on a resource type and which fields the actor may write. All
// decisions are pure table lookups; row-level visibility lives in scope.
package policy

import (
	"github.com/Durganjali-sidda/CBTS/internal/models"
	"github.com/Durganjali-sidda/CBTS/internal/types"
)

type Action string

const (
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

type Resource string

const (
	ResourceBug     Resource = "bug"
	ResourceUser    Resource = "user"
	ResourceProject Resource = "project"
	ResourceTeam    Resource = "team"
)

// ReporterRoles are the roles eligible to report bugs. Matches the create
// column of the bug rule table; reported_by is always server-set from the
// actor, so the two stay in lockstep.
var ReporterRoles = []models.Role{
	models.RoleTester,
	models.RoleCustomer,
	models.RoleProductManager,
	models.RoleEngineeringManager,
	models.RoleTeamManager,
}

var allRoles = []models.Role{
	models.RoleProductManager,
	models.RoleEngineeringManager,
	models.RoleTeamManager,
	models.RoleTeamLead,
	models.RoleDeveloper,
	models.RoleTester,
	models.RoleCustomer,
	models.RoleAdmin,
}

// rules is the single action-permission table. An action on a resource is
// allowed if the actor's role appears in the applicable list (logical OR over
// role predicates). Admins and superusers bypass the table entirely.
var rules = map[Resource]map[Action][]models.Role{
	ResourceBug: {
		ActionList: {
			models.RoleProductManager,
			models.RoleEngineeringManager,
			models.RoleTeamManager,
			models.RoleTeamLead,
			models.RoleDeveloper,
		},
		ActionRetrieve: {
			models.RoleProductManager,
			models.RoleEngineeringManager,
			models.RoleTeamManager,
			models.RoleTeamLead,
			models.RoleDeveloper,
			models.RoleTester,
		},
		ActionUpdate: {
			models.RoleProductManager,
			models.RoleEngineeringManager,
			models.RoleTeamManager,
			models.RoleTeamLead,
			models.RoleDeveloper,
			models.RoleTester,
		},
		ActionDelete: {
			models.RoleProductManager,
			models.RoleEngineeringManager,
			models.RoleTeamManager,
			models.RoleTeamLead,
			models.RoleDeveloper,
			models.RoleTester,
		},
		ActionCreate: {
			models.RoleTester,
			models.RoleCustomer,
			models.RoleProductManager,
			models.RoleEngineeringManager,
			models.RoleTeamManager,
		},
	},
	ResourceUser: {
		ActionList: {
			models.RoleProductManager,
			models.RoleEngineeringManager,
			models.RoleTeamManager,
		},
		// Any authenticated actor may touch users; scoping narrows the
		// reachable rows down to self for unprivileged roles.
		ActionRetrieve: allRoles,
		ActionUpdate:   allRoles,
		ActionDelete:   allRoles,
		ActionCreate:   {models.RoleProductManager},
	},
	ResourceProject: {
		ActionList: {
			models.RoleProductManager,
			models.RoleEngineeringManager,
			models.RoleTeamManager,
		},
		ActionRetrieve: {
			models.RoleProductManager,
			models.RoleEngineeringManager,
			models.RoleTeamManager,
		},
		ActionUpdate: {
			models.RoleProductManager,
			models.RoleEngineeringManager,
			models.RoleTeamManager,
		},
		ActionDelete: {
			models.RoleProductManager,
			models.RoleEngineeringManager,
			models.RoleTeamManager,
		},
		ActionCreate: {
			models.RoleProductManager,
			models.RoleEngineeringManager,
		},
	},
	ResourceTeam: {
		ActionList: {
			models.RoleEngineeringManager,
			models.RoleTeamManager,
			models.RoleTeamLead,
		},
		ActionRetrieve: {
			models.RoleEngineeringManager,
			models.RoleTeamManager,
			models.RoleTeamLead,
		},
		ActionUpdate: {
			models.RoleEngineeringManager,
			models.RoleTeamManager,
			models.RoleTeamLead,
		},
		ActionDelete: {
			models.RoleEngineeringManager,
			models.RoleTeamManager,
			models.RoleTeamLead,
		},
		ActionCreate: {models.RoleEngineeringManager},
	},
}

// Can reports whether the actor may perform action on the given resource
// type. Unauthenticated actors are denied everything.
func Can(actor types.Actor, action Action, resource Resource) bool {
	if actor.ID == 0 {
		return false
	}

	if actor.IsSuperuser || actor.Role == models.RoleAdmin {
		return true
	}

	roles, ok := rules[resource][action]

	if !ok {
		return false
	}

	for _, role := range roles {
		if role == actor.Role {
			return true
		}
	}

	return false
}

// IsReporter reports whether the role is eligible to report bugs.
func IsReporter(role models.Role) bool {
	for _, r := range ReporterRoles {
		if r == role {
			return true
		}
	}
	return false
}
