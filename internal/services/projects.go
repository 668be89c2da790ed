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

type CreateProjectRequest struct {
	Name        string
	Description string

	// ManagerID is only honored when the actor is not a product manager
	// themselves; a product manager always becomes the manager of projects
	// they create, whatever the payload says.
	ManagerID *uint
}

type UpdateProjectRequest struct {
	Name        *string
	Description *string
}

func ListProjects(actor types.Actor) ([]models.Project, error) {
	if !policy.Can(actor, policy.ActionList, policy.ResourceProject) {
		return nil, ErrForbidden
	}

	var projects []models.Project

	if err := db.DB.Scopes(scope.Projects(actor)).Order("projects.id").Find(&projects).Error; err != nil {
		return nil, err
	}

	return projects, nil
}

func GetProject(actor types.Actor, id uint) (*models.Project, error) {
	if !policy.Can(actor, policy.ActionRetrieve, policy.ResourceProject) {
		return nil, ErrForbidden
	}

	var project models.Project

	if err := db.DB.Scopes(scope.Projects(actor)).First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &project, nil
}

func CreateProject(actor types.Actor, req CreateProjectRequest) (*models.Project, error) {
	if !policy.Can(actor, policy.ActionCreate, policy.ResourceProject) {
		return nil, ErrForbidden
	}

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	var created models.Project

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		managerID, err := resolveManager(tx, actor, req.ManagerID)

		if err != nil {
			return err
		}

		created = models.Project{
			Name:        req.Name,
			Description: req.Description,
			ManagerID:   managerID,
		}

		return tx.Create(&created).Error
	})

	if err != nil {
		return nil, err
	}

	return &created, nil
}

// resolveManager picks the project manager: a product manager is always the
// manager of what they create; anyone else allowed to create (engineering
// managers, admins) must name a user who holds the product_manager role.
func resolveManager(tx *gorm.DB, actor types.Actor, managerID *uint) (uint, error) {
	if actor.Role == models.RoleProductManager {
		return actor.ID, nil
	}

	if managerID == nil {
		return 0, fmt.Errorf("%w: manager_id is required", ErrValidation)
	}

	var manager models.User

	if err := tx.First(&manager, *managerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: user %d", ErrNotFound, *managerID)
		}
		return 0, err
	}

	if manager.Role != models.RoleProductManager {
		return 0, fmt.Errorf("%w: project manager must be a product manager", ErrInvariant)
	}

	return manager.ID, nil
}

func UpdateProject(actor types.Actor, id uint, req UpdateProjectRequest) (*models.Project, error) {
	if !policy.Can(actor, policy.ActionUpdate, policy.ResourceProject) {
		return nil, ErrForbidden
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		updates["name"] = *req.Name
	}

	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	var project models.Project

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(scope.Projects(actor)).First(&project, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		return tx.Model(&project).Updates(updates).Error
	})

	if err != nil {
		return nil, err
	}

	return &project, nil
}

// DeleteProject destroys a project together with everything it owns: its
// bugs and its teams go with it, and users of those teams are detached
// first. The whole cascade runs in one transaction.
func DeleteProject(actor types.Actor, id uint) error {
	if !policy.Can(actor, policy.ActionDelete, policy.ResourceProject) {
		return ErrForbidden
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		var project models.Project

		if err := tx.Scopes(scope.Projects(actor)).First(&project, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Bug{}).Error; err != nil {
			return err
		}

		var teamIDs []uint

		if err := tx.Model(&models.Team{}).Where("project_id = ?", project.ID).Pluck("id", &teamIDs).Error; err != nil {
			return err
		}

		if len(teamIDs) > 0 {
			if err := tx.Model(&models.User{}).Where("team_id IN ?", teamIDs).Update("team_id", nil).Error; err != nil {
				return err
			}

			if err := tx.Where("project_id = ?", project.ID).Delete(&models.Team{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&project).Error
	})
}
