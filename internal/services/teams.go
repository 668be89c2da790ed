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

type CreateTeamRequest struct {
	Name      string
	ProjectID uint
}

type UpdateTeamRequest struct {
	Name   *string
	LeadID *uint
}

func ListTeams(actor types.Actor) ([]models.Team, error) {
	if !policy.Can(actor, policy.ActionList, policy.ResourceTeam) {
		return nil, ErrForbidden
	}

	var teams []models.Team

	if err := db.DB.Scopes(scope.Teams(actor)).Order("teams.id").Find(&teams).Error; err != nil {
		return nil, err
	}

	return teams, nil
}

func GetTeam(actor types.Actor, id uint) (*models.Team, error) {
	if !policy.Can(actor, policy.ActionRetrieve, policy.ResourceTeam) {
		return nil, ErrForbidden
	}

	var team models.Team

	if err := db.DB.Scopes(scope.Teams(actor)).First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &team, nil
}

// CreateTeam creates a team without a lead. Creation is restricted to
// engineering managers, who cannot hold the team_lead role themselves; the
// lead is assigned afterwards through UpdateTeam under the lead-role
// invariant.
func CreateTeam(actor types.Actor, req CreateTeamRequest) (*models.Team, error) {
	if !policy.Can(actor, policy.ActionCreate, policy.ResourceTeam) {
		return nil, ErrForbidden
	}

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	var created models.Team

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var project models.Project

		if err := tx.First(&project, req.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: project %d", ErrNotFound, req.ProjectID)
			}
			return err
		}

		created = models.Team{
			Name:      req.Name,
			ProjectID: req.ProjectID,
		}

		return tx.Create(&created).Error
	})

	if err != nil {
		return nil, err
	}

	return &created, nil
}

func UpdateTeam(actor types.Actor, id uint, req UpdateTeamRequest) (*models.Team, error) {
	if !policy.Can(actor, policy.ActionUpdate, policy.ResourceTeam) {
		return nil, ErrForbidden
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		updates["name"] = *req.Name
	}

	if req.LeadID != nil {
		updates["lead_id"] = *req.LeadID
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	var team models.Team

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(scope.Teams(actor)).First(&team, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if req.LeadID != nil {
			var lead models.User

			if err := tx.First(&lead, *req.LeadID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: user %d", ErrNotFound, *req.LeadID)
				}
				return err
			}

			if lead.Role != models.RoleTeamLead {
				return fmt.Errorf("%w: team lead must hold the team_lead role", ErrInvariant)
			}
		}

		return tx.Model(&team).Updates(updates).Error
	})

	if err != nil {
		return nil, err
	}

	return &team, nil
}

// DeleteTeam removes a team, detaching its members and nulling the team
// reference on its bugs. Bugs survive team deletion.
func DeleteTeam(actor types.Actor, id uint) error {
	if !policy.Can(actor, policy.ActionDelete, policy.ResourceTeam) {
		return ErrForbidden
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		var team models.Team

		if err := tx.Scopes(scope.Teams(actor)).First(&team, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Model(&models.User{}).Where("team_id = ?", team.ID).Update("team_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Bug{}).Where("team_id = ?", team.ID).Update("team_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&team).Error
	})
}
