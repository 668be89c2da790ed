package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Durganjali-sidda/CBTS/db"
	"github.com/Durganjali-sidda/CBTS/internal/models"
	"github.com/Durganjali-sidda/CBTS/internal/policy"
	"github.com/Durganjali-sidda/CBTS/internal/scope"
	"github.com/Durganjali-sidda/CBTS/internal/types"
)

type CreateBugRequest struct {
	Title        string
	Description  string
	Status       models.BugStatus
	Priority     models.BugPriority
	ProjectID    uint
	TeamID       *uint
	AssignedToID *uint
}

type UpdateBugRequest struct {
	Title        *string
	Description  *string
	Status       *models.BugStatus
	Priority     *models.BugPriority
	AssignedToID *uint
	TeamID       *uint
}

type BugFilter struct {
	// AssignedToID narrows the listing to bugs assigned to one user. The
	// role scope still applies on top; the result is the intersection.
	AssignedToID *uint
}

func ListBugs(actor types.Actor, filter BugFilter) ([]models.Bug, error) {
	if !policy.Can(actor, policy.ActionList, policy.ResourceBug) {
		return nil, ErrForbidden
	}

	query := db.DB.Model(&models.Bug{})

	if filter.AssignedToID != nil {
		query = query.Where("bugs.assigned_to_id = ?", *filter.AssignedToID)
	}

	var bugs []models.Bug

	if err := query.Scopes(scope.Bugs(actor)).Order("bugs.id").Find(&bugs).Error; err != nil {
		return nil, err
	}

	return bugs, nil
}

func GetBug(actor types.Actor, id uint) (*models.Bug, error) {
	if !policy.Can(actor, policy.ActionRetrieve, policy.ResourceBug) {
		return nil, ErrForbidden
	}

	var bug models.Bug

	if err := db.DB.Scopes(scope.Bugs(actor)).First(&bug, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &bug, nil
}

func CreateBug(actor types.Actor, req CreateBugRequest) (*models.Bug, error) {
	if !policy.Can(actor, policy.ActionCreate, policy.ResourceBug) {
		return nil, ErrForbidden
	}

	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	if req.Status == "" {
		req.Status = models.BugStatusOpen
	} else if !req.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, req.Status)
	}

	if req.Priority == "" {
		req.Priority = models.BugPriorityMedium
	} else if !req.Priority.Valid() {
		return nil, fmt.Errorf("%w: invalid priority %q", ErrValidation, req.Priority)
	}

	var created models.Bug

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var project models.Project

		if err := tx.First(&project, req.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: project %d", ErrNotFound, req.ProjectID)
			}
			return err
		}

		if req.TeamID != nil {
			var team models.Team
			if err := tx.First(&team, *req.TeamID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: team %d", ErrNotFound, *req.TeamID)
				}
				return err
			}
		}

		if req.AssignedToID != nil {
			if err := validateAssignment(tx, actor, *req.AssignedToID); err != nil {
				return err
			}
		}

		// reported_by is always the actor, never the payload.
		reporterID := actor.ID

		created = models.Bug{
			Title:        req.Title,
			Description:  req.Description,
			Status:       req.Status,
			Priority:     req.Priority,
			ReportedByID: &reporterID,
			AssignedToID: req.AssignedToID,
			ProjectID:    req.ProjectID,
			TeamID:       req.TeamID,
		}

		return tx.Create(&created).Error
	})

	if err != nil {
		return nil, err
	}

	return &created, nil
}

// validateAssignment enforces the assignment invariants: customers never
// assign, team leads and team managers only assign developers of their own
// team, and the assignee must hold the developer role in every case.
func validateAssignment(tx *gorm.DB, actor types.Actor, assigneeID uint) error {
	if actor.Role == models.RoleCustomer {
		return fmt.Errorf("%w: customers cannot assign bugs", ErrInvariant)
	}

	var assignee models.User

	if err := tx.First(&assignee, assigneeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %d", ErrNotFound, assigneeID)
		}
		return err
	}

	if assignee.Role != models.RoleDeveloper {
		return fmt.Errorf("%w: bugs can only be assigned to developers", ErrInvariant)
	}

	if actor.Role == models.RoleTeamLead || actor.Role == models.RoleTeamManager {
		if actor.TeamID == nil || assignee.TeamID == nil || *assignee.TeamID != *actor.TeamID {
			return fmt.Errorf("%w: assignee must belong to your team", ErrInvariant)
		}
	}

	return nil
}

func UpdateBug(actor types.Actor, id uint, req UpdateBugRequest) (*models.Bug, error) {
	if !policy.Can(actor, policy.ActionUpdate, policy.ResourceBug) {
		return nil, ErrForbidden
	}

	writable := policy.WritableFields(actor, policy.ResourceBug)
	updates := make(map[string]interface{})

	set := func(field string, value interface{}) error {
		if !writable.Has(field) {
			return fmt.Errorf("%w: field %q is not writable for role %s", ErrForbidden, field, actor.Role)
		}
		updates[field] = value
		return nil
	}

	if req.Title != nil {
		if err := set("title", *req.Title); err != nil {
			return nil, err
		}
	}

	if req.Description != nil {
		if err := set("description", *req.Description); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, *req.Status)
		}
		if err := set("status", *req.Status); err != nil {
			return nil, err
		}
	}

	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, fmt.Errorf("%w: invalid priority %q", ErrValidation, *req.Priority)
		}
		if err := set("priority", *req.Priority); err != nil {
			return nil, err
		}
	}

	if req.AssignedToID != nil {
		if err := set("assigned_to_id", *req.AssignedToID); err != nil {
			return nil, err
		}
	}

	if req.TeamID != nil {
		if err := set("team_id", *req.TeamID); err != nil {
			return nil, err
		}
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	var bug models.Bug

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(scope.Bugs(actor)).First(&bug, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if req.AssignedToID != nil {
			if err := validateAssignment(tx, actor, *req.AssignedToID); err != nil {
				return err
			}
		}

		if req.TeamID != nil {
			var team models.Team
			if err := tx.First(&team, *req.TeamID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: team %d", ErrNotFound, *req.TeamID)
				}
				return err
			}
		}

		return tx.Model(&bug).Updates(updates).Error
	})

	if err != nil {
		return nil, err
	}

	if err := db.DB.First(&bug, bug.ID).Error; err != nil {
		return nil, err
	}

	return &bug, nil
}

func DeleteBug(actor types.Actor, id uint) error {
	if !policy.Can(actor, policy.ActionDelete, policy.ResourceBug) {
		return ErrForbidden
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		var bug models.Bug

		if err := tx.Scopes(scope.Bugs(actor)).First(&bug, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		return tx.Delete(&bug).Error
	})
}

// ListUserBugs returns the bugs assigned to one user. Only product and
// engineering managers, or the user themselves, may ask.
func ListUserBugs(actor types.Actor, userID uint) ([]models.Bug, error) {
	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	privileged := actor.IsSuperuser ||
		actor.Role == models.RoleAdmin ||
		actor.Role == models.RoleProductManager ||
		actor.Role == models.RoleEngineeringManager

	if !privileged && actor.ID != userID {
		return nil, ErrForbidden
	}

	var bugs []models.Bug

	if err := db.DB.Where("assigned_to_id = ?", userID).Order("id").Find(&bugs).Error; err != nil {
		return nil, err
	}

	return bugs, nil
}
