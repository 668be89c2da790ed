package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Durganjali-sidda/CBTS/db"
	"github.com/Durganjali-sidda/CBTS/internal/models"
	"github.com/Durganjali-sidda/CBTS/internal/services"
)

func TestCreateProjectForcesManagerToActor(t *testing.T) {
	setupDB(t)

	pm := seedUser(t, "pm", models.RoleProductManager, nil)
	otherPM := seedUser(t, "other_pm", models.RoleProductManager, nil)

	// The payload names someone else; the actor wins.
	project, err := services.CreateProject(asActor(pm), services.CreateProjectRequest{
		Name:      "Tracker",
		ManagerID: &otherPM.ID,
	})
	require.NoError(t, err)
	require.Equal(t, pm.ID, project.ManagerID)
}

func TestEngineeringManagerCreateNeedsProductManager(t *testing.T) {
	setupDB(t)

	em := seedUser(t, "em", models.RoleEngineeringManager, nil)
	dev := seedUser(t, "dev", models.RoleDeveloper, nil)
	pm := seedUser(t, "pm", models.RoleProductManager, nil)

	_, err := services.CreateProject(asActor(em), services.CreateProjectRequest{Name: "Tracker"})
	require.ErrorIs(t, err, services.ErrValidation)

	_, err = services.CreateProject(asActor(em), services.CreateProjectRequest{
		Name:      "Tracker",
		ManagerID: &dev.ID,
	})
	require.ErrorIs(t, err, services.ErrInvariant)

	project, err := services.CreateProject(asActor(em), services.CreateProjectRequest{
		Name:      "Tracker",
		ManagerID: &pm.ID,
	})
	require.NoError(t, err)
	require.Equal(t, pm.ID, project.ManagerID)
}

func TestCreateProjectForbiddenForOthers(t *testing.T) {
	setupDB(t)

	manager := seedUser(t, "manager", models.RoleTeamManager, nil)

	_, err := services.CreateProject(asActor(manager), services.CreateProjectRequest{Name: "Tracker"})
	require.ErrorIs(t, err, services.ErrForbidden)
}

func TestDeleteProjectCascades(t *testing.T) {
	setupDB(t)

	pm := seedUser(t, "pm", models.RoleProductManager, nil)
	project := seedProject(t, "Doomed", pm.ID)
	team := seedTeam(t, "Alpha", project.ID, nil)
	dev := seedUser(t, "dev", models.RoleDeveloper, &team.ID)
	seedBug(t, models.Bug{Title: "bug one", ProjectID: project.ID, TeamID: &team.ID})
	seedBug(t, models.Bug{Title: "bug two", ProjectID: project.ID})

	keeper := seedProject(t, "Keeper", pm.ID)
	kept := seedBug(t, models.Bug{Title: "survives", ProjectID: keeper.ID})

	require.NoError(t, services.DeleteProject(asActor(pm), project.ID))

	var bugCount, teamCount, projectCount int64
	require.NoError(t, db.DB.Model(&models.Bug{}).Where("project_id = ?", project.ID).Count(&bugCount).Error)
	require.NoError(t, db.DB.Model(&models.Team{}).Where("project_id = ?", project.ID).Count(&teamCount).Error)
	require.NoError(t, db.DB.Model(&models.Project{}).Where("id = ?", project.ID).Count(&projectCount).Error)
	require.Zero(t, bugCount)
	require.Zero(t, teamCount)
	require.Zero(t, projectCount)

	// Members of destroyed teams are detached, not deleted.
	var storedDev models.User
	require.NoError(t, db.DB.First(&storedDev, dev.ID).Error)
	require.Nil(t, storedDev.TeamID)

	var storedBug models.Bug
	require.NoError(t, db.DB.First(&storedBug, kept.ID).Error)
}

func TestProjectScoping(t *testing.T) {
	setupDB(t)

	pm := seedUser(t, "pm", models.RoleProductManager, nil)
	otherPM := seedUser(t, "other_pm", models.RoleProductManager, nil)
	em := seedUser(t, "em", models.RoleEngineeringManager, nil)

	mine := seedProject(t, "Mine", pm.ID)
	theirs := seedProject(t, "Theirs", otherPM.ID)

	team := seedTeam(t, "Alpha", mine.ID, nil)
	lead := seedUser(t, "lead", models.RoleTeamLead, &team.ID)

	projects, err := services.ListProjects(asActor(pm))
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, mine.ID, projects[0].ID)

	projects, err = services.ListProjects(asActor(em))
	require.NoError(t, err)
	require.Len(t, projects, 2)

	_, err = services.GetProject(asActor(pm), theirs.ID)
	require.ErrorIs(t, err, services.ErrNotFound)

	// A team lead is not on the project list table at all.
	_, err = services.ListProjects(asActor(lead))
	require.ErrorIs(t, err, services.ErrForbidden)
}

func TestTeamManagerSeesOwnTeamsProject(t *testing.T) {
	setupDB(t)

	pm := seedUser(t, "pm", models.RoleProductManager, nil)
	mine := seedProject(t, "Mine", pm.ID)
	other := seedProject(t, "Other", pm.ID)
	team := seedTeam(t, "Alpha", mine.ID, nil)
	manager := seedUser(t, "manager", models.RoleTeamManager, &team.ID)

	projects, err := services.ListProjects(asActor(manager))
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, mine.ID, projects[0].ID)

	_, err = services.GetProject(asActor(manager), other.ID)
	require.ErrorIs(t, err, services.ErrNotFound)
}
