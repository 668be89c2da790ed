package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Durganjali-sidda/CBTS/db"
	"github.com/Durganjali-sidda/CBTS/internal/models"
	"github.com/Durganjali-sidda/CBTS/internal/services"
)

func TestCreateTeamOnlyEngineeringManager(t *testing.T) {
	setupDB(t)

	pm := seedUser(t, "pm", models.RoleProductManager, nil)
	em := seedUser(t, "em", models.RoleEngineeringManager, nil)
	manager := seedUser(t, "manager", models.RoleTeamManager, nil)
	project := seedProject(t, "Tracker", pm.ID)

	_, err := services.CreateTeam(asActor(manager), services.CreateTeamRequest{Name: "Alpha", ProjectID: project.ID})
	require.ErrorIs(t, err, services.ErrForbidden)

	team, err := services.CreateTeam(asActor(em), services.CreateTeamRequest{Name: "Alpha", ProjectID: project.ID})
	require.NoError(t, err)
	require.Nil(t, team.LeadID)
	require.Equal(t, project.ID, team.ProjectID)
}

func TestCreateTeamUnknownProject(t *testing.T) {
	setupDB(t)

	em := seedUser(t, "em", models.RoleEngineeringManager, nil)

	_, err := services.CreateTeam(asActor(em), services.CreateTeamRequest{Name: "Alpha", ProjectID: 42})
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestTeamLeadMustHoldLeadRole(t *testing.T) {
	setupDB(t)

	pm := seedUser(t, "pm", models.RoleProductManager, nil)
	em := seedUser(t, "em", models.RoleEngineeringManager, nil)
	project := seedProject(t, "Tracker", pm.ID)
	team := seedTeam(t, "Alpha", project.ID, nil)
	dev := seedUser(t, "dev", models.RoleDeveloper, &team.ID)
	lead := seedUser(t, "lead", models.RoleTeamLead, &team.ID)

	_, err := services.UpdateTeam(asActor(em), team.ID, services.UpdateTeamRequest{LeadID: &dev.ID})
	require.ErrorIs(t, err, services.ErrInvariant)

	updated, err := services.UpdateTeam(asActor(em), team.ID, services.UpdateTeamRequest{LeadID: &lead.ID})
	require.NoError(t, err)
	require.Equal(t, lead.ID, *updated.LeadID)
}

func TestDeleteTeamDetachesMembersAndBugs(t *testing.T) {
	setupDB(t)

	pm := seedUser(t, "pm", models.RoleProductManager, nil)
	em := seedUser(t, "em", models.RoleEngineeringManager, nil)
	project := seedProject(t, "Tracker", pm.ID)
	team := seedTeam(t, "Alpha", project.ID, nil)
	dev := seedUser(t, "dev", models.RoleDeveloper, &team.ID)
	bug := seedBug(t, models.Bug{Title: "lingering", ProjectID: project.ID, TeamID: &team.ID})

	require.NoError(t, services.DeleteTeam(asActor(em), team.ID))

	var storedDev models.User
	require.NoError(t, db.DB.First(&storedDev, dev.ID).Error)
	require.Nil(t, storedDev.TeamID)

	var storedBug models.Bug
	require.NoError(t, db.DB.First(&storedBug, bug.ID).Error)
	require.Nil(t, storedBug.TeamID)
}

func TestTeamScoping(t *testing.T) {
	setupDB(t)

	pm := seedUser(t, "pm", models.RoleProductManager, nil)
	em := seedUser(t, "em", models.RoleEngineeringManager, nil)
	project := seedProject(t, "Tracker", pm.ID)

	lead := seedUser(t, "lead", models.RoleTeamLead, nil)
	ledTeam := seedTeam(t, "Alpha", project.ID, &lead.ID)
	seedTeam(t, "Beta", project.ID, nil)

	teams, err := services.ListTeams(asActor(em))
	require.NoError(t, err)
	require.Len(t, teams, 2)

	teams, err = services.ListTeams(asActor(lead))
	require.NoError(t, err)
	require.Len(t, teams, 1)
	require.Equal(t, ledTeam.ID, teams[0].ID)

	_, err = services.ListTeams(asActor(pm))
	require.ErrorIs(t, err, services.ErrForbidden)
}
