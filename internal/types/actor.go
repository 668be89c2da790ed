package types

import "github.com/Durganjali-sidda/CBTS/internal/models"

// Actor is the authenticated identity attached to every request. Policy and
// service functions take it explicitly rather than reading ambient state.
type Actor struct {
	ID          uint        `json:"id"`
	Role        models.Role `json:"role"`
	TeamID      *uint       `json:"team_id"`
	IsSuperuser bool        `json:"is_superuser"`
}

type UserResponse struct {
	ID          uint        `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Role        models.Role `json:"role"`
	TeamID      *uint       `json:"team_id"`
	IsSuperuser bool        `json:"is_superuser"`
	IsActive    bool        `json:"is_active"`
}

func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role,
		TeamID:      user.TeamID,
		IsSuperuser: user.IsSuperuser,
		IsActive:    user.IsActive,
	}
}
