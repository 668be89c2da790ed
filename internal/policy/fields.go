package policy

import (
	"github.com/Durganjali-sidda/CBTS/internal/models"
	"github.com/Durganjali-sidda/CBTS/internal/types"
)

// FieldSet is a whitelist of writable field names. A nil FieldSet means the
// actor may write every field of the resource.
type FieldSet map[string]struct{}

func NewFieldSet(fields ...string) FieldSet {
	set := make(FieldSet, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// Has reports whether the field may be written. The nil set allows all.
func (s FieldSet) Has(field string) bool {
	if s == nil {
		return true
	}
	_, ok := s[field]
	return ok
}

// bugFieldRules restricts which bug fields a role may change on update.
// Roles absent from the map write all fields. A payload touching a field
// outside the whitelist rejects the whole update; nothing is silently
// dropped.
var bugFieldRules = map[models.Role]FieldSet{
	models.RoleDeveloper:   NewFieldSet("status"),
	models.RoleTeamLead:    NewFieldSet("status", "priority"),
	models.RoleTeamManager: NewFieldSet("status", "priority"),
}

// userFieldRules restricts which user fields a role may change on update.
// Privileged roles additionally manage team membership and activation; role
// itself is immutable for everyone and is not accepted as an update field at
// all.
var userFieldRules = map[models.Role]FieldSet{
	models.RoleTeamLead:  NewFieldSet("username", "email", "password"),
	models.RoleDeveloper: NewFieldSet("username", "email", "password"),
	models.RoleTester:    NewFieldSet("username", "email", "password"),
	models.RoleCustomer:  NewFieldSet("username", "email", "password"),
}

// WritableFields returns the whitelist of fields the actor may write on an
// update of the given resource type. Evaluated only after Can has allowed the
// update action.
func WritableFields(actor types.Actor, resource Resource) FieldSet {
	if actor.IsSuperuser || actor.Role == models.RoleAdmin {
		return nil
	}

	switch resource {
	case ResourceBug:
		if set, ok := bugFieldRules[actor.Role]; ok {
			return set
		}
	case ResourceUser:
		if set, ok := userFieldRules[actor.Role]; ok {
			return set
		}
	}

	return nil
}
