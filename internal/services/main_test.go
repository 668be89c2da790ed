package services_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Durganjali-sidda/CBTS/db"
	"github.com/Durganjali-sidda/CBTS/internal/models"
	"github.com/Durganjali-sidda/CBTS/internal/types"
)

// setupDB points the global connection at a fresh in-memory SQLite database.
// The database name is derived from the test name so parallel packages never
// share state.
func setupDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Project{}, &models.Team{}, &models.Bug{}))

	db.DB = gdb
}

func seedUser(t *testing.T, username string, role models.Role, teamID *uint) *models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "irrelevant",
		Role:         role,
		TeamID:       teamID,
		IsActive:     true,
	}
	require.NoError(t, db.DB.Create(&user).Error)

	return &user
}

func seedProject(t *testing.T, name string, managerID uint) *models.Project {
	t.Helper()

	project := models.Project{Name: name, ManagerID: managerID}
	require.NoError(t, db.DB.Create(&project).Error)

	return &project
}

func seedTeam(t *testing.T, name string, projectID uint, leadID *uint) *models.Team {
	t.Helper()

	team := models.Team{Name: name, ProjectID: projectID, LeadID: leadID}
	require.NoError(t, db.DB.Create(&team).Error)

	return &team
}

func seedBug(t *testing.T, bug models.Bug) *models.Bug {
	t.Helper()

	if bug.Status == "" {
		bug.Status = models.BugStatusOpen
	}
	if bug.Priority == "" {
		bug.Priority = models.BugPriorityMedium
	}
	require.NoError(t, db.DB.Create(&bug).Error)

	return &bug
}

func asActor(user *models.User) types.Actor {
	return types.Actor{
		ID:          user.ID,
		Role:        user.Role,
		TeamID:      user.TeamID,
		IsSuperuser: user.IsSuperuser,
	}
}

func bugIDs(bugs []models.Bug) []uint {
	ids := make([]uint, 0, len(bugs))
	for _, bug := range bugs {
		ids = append(ids, bug.ID)
	}
	return ids
}
