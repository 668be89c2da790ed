package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Durganjali-sidda/CBTS/db"
	"github.com/Durganjali-sidda/CBTS/internal/models"
	"github.com/Durganjali-sidda/CBTS/internal/policy"
	"github.com/Durganjali-sidda/CBTS/internal/scope"
	"github.com/Durganjali-sidda/CBTS/internal/types"
)

type CreateUserRequest struct {
	Username string
	Email    string
	Password string
	Role     models.Role
	TeamID   *uint
}

type UpdateUserRequest struct {
	Username *string
	Email    *string
	Password *string
	TeamID   *uint
	IsActive *bool
}

func ListUsers(actor types.Actor) ([]models.User, error) {
	if !policy.Can(actor, policy.ActionList, policy.ResourceUser) {
		return nil, ErrForbidden
	}

	var users []models.User

	if err := db.DB.Scopes(scope.Users(actor)).Order("users.id").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func GetUser(actor types.Actor, id uint) (*models.User, error) {
	if !policy.Can(actor, policy.ActionRetrieve, policy.ResourceUser) {
		return nil, ErrForbidden
	}

	var user models.User

	if err := db.DB.Scopes(scope.Users(actor)).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

func CreateUser(actor types.Actor, req CreateUserRequest) (*models.User, error) {
	if !policy.Can(actor, policy.ActionCreate, policy.ResourceUser) {
		return nil, ErrForbidden
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}

	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: invalid role %q", ErrValidation, req.Role)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		return nil, err
	}

	var created models.User

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := checkUserUnique(tx, req.Username, req.Email, 0); err != nil {
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

		created = models.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: string(passwordHash),
			Role:         req.Role,
			TeamID:       req.TeamID,
			IsActive:     true,
		}

		return tx.Create(&created).Error
	})

	if err != nil {
		return nil, err
	}

	return &created, nil
}

func checkUserUnique(tx *gorm.DB, username, email string, excludeID uint) error {
	var existing models.User

	err := tx.Where("(username = ? OR email = ?) AND id != ?", username, email, excludeID).First(&existing).Error

	if err == nil {
		return fmt.Errorf("%w: username or email already exists", ErrValidation)
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return nil
}

func UpdateUser(actor types.Actor, id uint, req UpdateUserRequest) (*models.User, error) {
	if !policy.Can(actor, policy.ActionUpdate, policy.ResourceUser) {
		return nil, ErrForbidden
	}

	writable := policy.WritableFields(actor, policy.ResourceUser)
	updates := make(map[string]interface{})

	set := func(field string, value interface{}) error {
		if !writable.Has(field) {
			return fmt.Errorf("%w: field %q is not writable for role %s", ErrForbidden, field, actor.Role)
		}
		updates[field] = value
		return nil
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return nil, fmt.Errorf("%w: username cannot be empty", ErrValidation)
		}
		if err := set("username", username); err != nil {
			return nil, err
		}
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", ErrValidation)
		}
		if err := set("email", email); err != nil {
			return nil, err
		}
	}

	if req.Password != nil {
		if !writable.Has("password") {
			return nil, fmt.Errorf("%w: field \"password\" is not writable for role %s", ErrForbidden, actor.Role)
		}
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = string(passwordHash)
	}

	if req.TeamID != nil {
		if err := set("team_id", *req.TeamID); err != nil {
			return nil, err
		}
	}

	if req.IsActive != nil {
		if err := set("is_active", *req.IsActive); err != nil {
			return nil, err
		}
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	var user models.User

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(scope.Users(actor)).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		username := user.Username
		email := user.Email

		if v, ok := updates["username"].(string); ok {
			username = v
		}
		if v, ok := updates["email"].(string); ok {
			email = v
		}

		if err := checkUserUnique(tx, username, email, user.ID); err != nil {
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

		return tx.Model(&user).Updates(updates).Error
	})

	if err != nil {
		return nil, err
	}

	if err := db.DB.First(&user, user.ID).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// DeleteUser removes a user while preserving bug history: bugs they reported
// or were assigned keep existing with the reference nulled, and any team they
// led loses its lead.
func DeleteUser(actor types.Actor, id uint) error {
	if !policy.Can(actor, policy.ActionDelete, policy.ResourceUser) {
		return ErrForbidden
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User

		if err := tx.Scopes(scope.Users(actor)).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Model(&models.Bug{}).Where("assigned_to_id = ?", user.ID).Update("assigned_to_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Bug{}).Where("reported_by_id = ?", user.ID).Update("reported_by_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Team{}).Where("lead_id = ?", user.ID).Update("lead_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})
}
