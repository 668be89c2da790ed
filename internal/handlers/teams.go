package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Durganjali-sidda/CBTS/internal/models"
	"github.com/Durganjali-sidda/CBTS/internal/services"
	"github.com/Durganjali-sidda/CBTS/internal/utils"
)

type CreateTeamRequest struct {
	Name      string `json:"name" binding:"required"`
	ProjectID uint   `json:"project_id" binding:"required"`
}

type UpdateTeamRequest struct {
	Name   *string `json:"name"`
	LeadID *uint   `json:"lead_id"`
}

type TeamResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	LeadID    *uint  `json:"lead_id"`
	ProjectID uint   `json:"project_id"`
}

func toTeamResponse(team models.Team) TeamResponse {
	return TeamResponse{
		ID:        team.ID,
		Name:      team.Name,
		LeadID:    team.LeadID,
		ProjectID: team.ProjectID,
	}
}

func ListTeams(ctx *gin.Context) {
	actor, err := utils.GetCurrentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	teams, err := services.ListTeams(actor)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]TeamResponse, 0, len(teams))

	for _, team := range teams {
		response = append(response, toTeamResponse(team))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetTeam(ctx *gin.Context) {
	actor, err := utils.GetCurrentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	team, err := services.GetTeam(actor, id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toTeamResponse(*team))
}

func CreateTeam(ctx *gin.Context) {
	actor, err := utils.GetCurrentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateTeamRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	team, err := services.CreateTeam(actor, services.CreateTeamRequest{
		Name:      body.Name,
		ProjectID: body.ProjectID,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toTeamResponse(*team))
}

func UpdateTeam(ctx *gin.Context) {
	actor, err := utils.GetCurrentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var body UpdateTeamRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	team, err := services.UpdateTeam(actor, id, services.UpdateTeamRequest{
		Name:   body.Name,
		LeadID: body.LeadID,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toTeamResponse(*team))
}

func DeleteTeam(ctx *gin.Context) {
	actor, err := utils.GetCurrentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	if err := services.DeleteTeam(actor, id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
