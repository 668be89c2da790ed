package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Durganjali-sidda/CBTS/internal/models"
	"github.com/Durganjali-sidda/CBTS/internal/services"
	"github.com/Durganjali-sidda/CBTS/internal/utils"
)

type CreateBugRequest struct {
	Title        string             `json:"title" binding:"required"`
	Description  string             `json:"description"`
	Status       models.BugStatus   `json:"status"`
	Priority     models.BugPriority `json:"priority"`
	ProjectID    uint               `json:"project_id" binding:"required"`
	TeamID       *uint              `json:"team_id"`
	AssignedToID *uint              `json:"assigned_to"`
}

type UpdateBugRequest struct {
	Title        *string             `json:"title"`
	Description  *string             `json:"description"`
	Status       *models.BugStatus   `json:"status"`
	Priority     *models.BugPriority `json:"priority"`
	AssignedToID *uint               `json:"assigned_to"`
	TeamID       *uint               `json:"team_id"`
}

type BugResponse struct {
	ID           uint               `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Status       models.BugStatus   `json:"status"`
	Priority     models.BugPriority `json:"priority"`
	ReportedByID *uint              `json:"reported_by"`
	AssignedToID *uint              `json:"assigned_to"`
	ProjectID    uint               `json:"project_id"`
	TeamID       *uint              `json:"team_id"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func toBugResponse(bug models.Bug) BugResponse {
	return BugResponse{
		ID:           bug.ID,
		Title:        bug.Title,
		Description:  bug.Description,
		Status:       bug.Status,
		Priority:     bug.Priority,
		ReportedByID: bug.ReportedByID,
		AssignedToID: bug.AssignedToID,
		ProjectID:    bug.ProjectID,
		TeamID:       bug.TeamID,
		CreatedAt:    bug.CreatedAt,
		UpdatedAt:    bug.UpdatedAt,
	}
}

func toBugResponses(bugs []models.Bug) []BugResponse {
	response := make([]BugResponse, 0, len(bugs))
	for _, bug := range bugs {
		response = append(response, toBugResponse(bug))
	}
	return response
}

func ListBugs(ctx *gin.Context) {
	actor, err := utils.GetCurrentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var filter services.BugFilter

	if raw := ctx.Query("assigned_to"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assigned_to"})
			return
		}
		assignedTo := uint(id)
		filter.AssignedToID = &assignedTo
	}

	bugs, err := services.ListBugs(actor, filter)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toBugResponses(bugs))
}

func GetBug(ctx *gin.Context) {
	actor, err := utils.GetCurrentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	bug, err := services.GetBug(actor, id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toBugResponse(*bug))
}

func CreateBug(ctx *gin.Context) {
	actor, err := utils.GetCurrentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateBugRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	bug, err := services.CreateBug(actor, services.CreateBugRequest{
		Title:        body.Title,
		Description:  body.Description,
		Status:       body.Status,
		Priority:     body.Priority,
		ProjectID:    body.ProjectID,
		TeamID:       body.TeamID,
		AssignedToID: body.AssignedToID,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toBugResponse(*bug))
}

func UpdateBug(ctx *gin.Context) {
	actor, err := utils.GetCurrentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	var body UpdateBugRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	bug, err := services.UpdateBug(actor, id, services.UpdateBugRequest{
		Title:        body.Title,
		Description:  body.Description,
		Status:       body.Status,
		Priority:     body.Priority,
		AssignedToID: body.AssignedToID,
		TeamID:       body.TeamID,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toBugResponse(*bug))
}

func DeleteBug(ctx *gin.Context) {
	actor, err := utils.GetCurrentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := parseIDParam(ctx, "id")

	if !ok {
		return
	}

	if err := services.DeleteBug(actor, id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
