package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Durganjali-sidda/CBTS/db"
	"github.com/Durganjali-sidda/CBTS/internal/models"
	"github.com/Durganjali-sidda/CBTS/internal/services"
)

func TestCreateUserOnlyProductManager(t *testing.T) {
	setupDB(t)

	pm := seedUser(t, "pm", models.RoleProductManager, nil)
	em := seedUser(t, "em", models.RoleEngineeringManager, nil)

	_, err := services.CreateUser(asActor(em), services.CreateUserRequest{
		Username: "newdev",
		Email:    "newdev@example.com",
		Password: "secret123",
		Role:     models.RoleDeveloper,
	})
	require.ErrorIs(t, err, services.ErrForbidden)

	user, err := services.CreateUser(asActor(pm), services.CreateUserRequest{
		Username: "newdev",
		Email:    "NewDev@Example.com",
		Password: "secret123",
		Role:     models.RoleDeveloper,
	})
	require.NoError(t, err)
	require.Equal(t, "newdev@example.com", user.Email)
	require.Equal(t, models.RoleDeveloper, user.Role)

	// Duplicate email rejected.
	_, err = services.CreateUser(asActor(pm), services.CreateUserRequest{
		Username: "newdev2",
		Email:    "newdev@example.com",
		Password: "secret123",
		Role:     models.RoleDeveloper,
	})
	require.ErrorIs(t, err, services.ErrValidation)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	setupDB(t)

	pm := seedUser(t, "pm", models.RoleProductManager, nil)

	_, err := services.CreateUser(asActor(pm), services.CreateUserRequest{
		Username: "ghost",
		Email:    "ghost@example.com",
		Password: "secret123",
		Role:     "wizard",
	})
	require.ErrorIs(t, err, services.ErrValidation)
}

func TestUserScoping(t *testing.T) {
	setupDB(t)

	pm := seedUser(t, "pm", models.RoleProductManager, nil)
	em := seedUser(t, "em", models.RoleEngineeringManager, nil)
	project := seedProject(t, "Tracker", pm.ID)
	team := seedTeam(t, "Alpha", project.ID, nil)
	lead := seedUser(t, "lead", models.RoleTeamLead, &team.ID)
	dev := seedUser(t, "dev", models.RoleDeveloper, &team.ID)
	outsider := seedUser(t, "outsider", models.RoleDeveloper, nil)

	// Product manager sees everyone.
	users, err := services.ListUsers(asActor(pm))
	require.NoError(t, err)
	require.Len(t, users, 5)

	// Engineering manager sees everyone except both manager roles.
	users, err = services.ListUsers(asActor(em))
	require.NoError(t, err)
	for _, u := range users {
		require.NotEqual(t, models.RoleProductManager, u.Role)
		require.NotEqual(t, models.RoleEngineeringManager, u.Role)
	}
	require.Len(t, users, 3)

	// Team lead sees their own team.
	users, err = services.ListUsers(asActor(lead))
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.ElementsMatch(t, []uint{lead.ID, dev.ID}, []uint{users[0].ID, users[1].ID})

	// Developers cannot list at all, and can retrieve only themselves.
	_, err = services.ListUsers(asActor(dev))
	require.ErrorIs(t, err, services.ErrForbidden)

	self, err := services.GetUser(asActor(dev), dev.ID)
	require.NoError(t, err)
	require.Equal(t, dev.ID, self.ID)

	_, err = services.GetUser(asActor(dev), outsider.ID)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestSelfUpdateCannotChangeTeam(t *testing.T) {
	setupDB(t)

	pm := seedUser(t, "pm", models.RoleProductManager, nil)
	project := seedProject(t, "Tracker", pm.ID)
	team := seedTeam(t, "Alpha", project.ID, nil)
	dev := seedUser(t, "dev", models.RoleDeveloper, nil)

	_, err := services.UpdateUser(asActor(dev), dev.ID, services.UpdateUserRequest{TeamID: &team.ID})
	require.ErrorIs(t, err, services.ErrForbidden)

	username := "dev_renamed"
	updated, err := services.UpdateUser(asActor(dev), dev.ID, services.UpdateUserRequest{Username: &username})
	require.NoError(t, err)
	require.Equal(t, "dev_renamed", updated.Username)
}

func TestPrivilegedTeamAssignment(t *testing.T) {
	setupDB(t)

	pm := seedUser(t, "pm", models.RoleProductManager, nil)
	project := seedProject(t, "Tracker", pm.ID)
	team := seedTeam(t, "Alpha", project.ID, nil)
	dev := seedUser(t, "dev", models.RoleDeveloper, nil)

	updated, err := services.UpdateUser(asActor(pm), dev.ID, services.UpdateUserRequest{TeamID: &team.ID})
	require.NoError(t, err)
	require.Equal(t, team.ID, *updated.TeamID)
}

func TestDeleteUserPreservesBugHistory(t *testing.T) {
	setupDB(t)

	pm := seedUser(t, "pm", models.RoleProductManager, nil)
	project := seedProject(t, "Tracker", pm.ID)
	team := seedTeam(t, "Alpha", project.ID, nil)
	dev := seedUser(t, "dev", models.RoleDeveloper, &team.ID)
	require.NoError(t, db.DB.Model(team).Update("lead_id", dev.ID).Error)

	bug := seedBug(t, models.Bug{Title: "orphaned", ProjectID: project.ID, ReportedByID: &dev.ID, AssignedToID: &dev.ID})

	require.NoError(t, services.DeleteUser(asActor(pm), dev.ID))

	var stored models.Bug
	require.NoError(t, db.DB.First(&stored, bug.ID).Error)
	require.Nil(t, stored.AssignedToID)
	require.Nil(t, stored.ReportedByID)
	require.Equal(t, "orphaned", stored.Title)

	var storedTeam models.Team
	require.NoError(t, db.DB.First(&storedTeam, team.ID).Error)
	require.Nil(t, storedTeam.LeadID)
}

func TestListUserBugsAccess(t *testing.T) {
	setupDB(t)

	pm := seedUser(t, "pm", models.RoleProductManager, nil)
	project := seedProject(t, "Tracker", pm.ID)
	dev := seedUser(t, "dev", models.RoleDeveloper, nil)
	other := seedUser(t, "other", models.RoleDeveloper, nil)
	bug := seedBug(t, models.Bug{Title: "assigned", ProjectID: project.ID, AssignedToID: &dev.ID})

	bugs, err := services.ListUserBugs(asActor(pm), dev.ID)
	require.NoError(t, err)
	require.Equal(t, []uint{bug.ID}, bugIDs(bugs))

	bugs, err = services.ListUserBugs(asActor(dev), dev.ID)
	require.NoError(t, err)
	require.Len(t, bugs, 1)

	_, err = services.ListUserBugs(asActor(other), dev.ID)
	require.ErrorIs(t, err, services.ErrForbidden)

	_, err = services.ListUserBugs(asActor(pm), 9999)
	require.ErrorIs(t, err, services.ErrNotFound)
}
