// Seeds the database with development fixtures: one or two users of every
// role, two projects with a team each, and a spread of bugs across statuses
// and priorities. Wipes existing data first; never run against production.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/Durganjali-sidda/CBTS/db"
	"github.com/Durganjali-sidda/CBTS/internal/models"
)

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	return string(hash)
}

func createUser(username, email, password string, role models.Role, superuser bool) *models.User {
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: mustHash(password),
		Role:         role,
		IsSuperuser:  superuser,
		IsActive:     true,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create user %s: %v", username, err)
	}

	return &user
}

func assignTeam(user *models.User, team *models.Team) {
	if err := db.DB.Model(user).Update("team_id", team.ID).Error; err != nil {
		log.Fatalf("Failed to assign %s to %s: %v", user.Username, team.Name, err)
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Wipe old data
	for _, table := range []interface{}{&models.Bug{}, &models.Team{}, &models.Project{}, &models.User{}} {
		if err := db.DB.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			log.Fatalf("Failed to wipe table: %v", err)
		}
	}

	pmJohn := createUser("pm_john", "pm_john@example.com", "pm1234secure", models.RoleProductManager, false)
	engSusan := createUser("eng_susan", "eng_susan@example.com", "eng1234secure", models.RoleEngineeringManager, false)
	createUser("mgr_olga", "mgr_olga@example.com", "mgr1234secure", models.RoleTeamManager, false)
	leadAmy := createUser("lead_amy", "lead_amy@example.com", "lead1234secure", models.RoleTeamLead, false)
	leadBrian := createUser("lead_brian", "lead_brian@example.com", "lead1234secure", models.RoleTeamLead, false)
	devMike := createUser("dev_mike", "dev_mike@example.com", "dev1234secure", models.RoleDeveloper, false)
	devSara := createUser("dev_sara", "dev_sara@example.com", "dev1234secure", models.RoleDeveloper, false)
	testerEmma := createUser("tester_emma", "tester_emma@example.com", "test1234secure", models.RoleTester, false)
	custBob := createUser("cust_bob", "cust_bob@example.com", "cust1234secure", models.RoleCustomer, false)
	createUser("admin", "admin@example.com", "admin1234secure", models.RoleAdmin, true)

	projectAlpha := models.Project{Name: "Bug Tracker Alpha", Description: "Initial phase of bug tracking system.", ManagerID: pmJohn.ID}
	projectBeta := models.Project{Name: "Bug Tracker Beta", Description: "Second version with analytics.", ManagerID: pmJohn.ID}

	for _, project := range []*models.Project{&projectAlpha, &projectBeta} {
		if err := db.DB.Create(project).Error; err != nil {
			log.Fatalf("Failed to create project %s: %v", project.Name, err)
		}
	}

	teamAlpha := models.Team{Name: "Alpha Team", LeadID: &leadAmy.ID, ProjectID: projectAlpha.ID}
	teamBeta := models.Team{Name: "Beta Team", LeadID: &leadBrian.ID, ProjectID: projectBeta.ID}

	for _, team := range []*models.Team{&teamAlpha, &teamBeta} {
		if err := db.DB.Create(team).Error; err != nil {
			log.Fatalf("Failed to create team %s: %v", team.Name, err)
		}
	}

	assignTeam(leadAmy, &teamAlpha)
	assignTeam(devMike, &teamAlpha)
	assignTeam(testerEmma, &teamAlpha)
	assignTeam(leadBrian, &teamBeta)
	assignTeam(devSara, &teamBeta)

	bugs := []models.Bug{
		{
			Title:        "Login page crashes on empty password",
			Description:  "Submitting the login form with no password throws a 500.",
			Status:       models.BugStatusOpen,
			Priority:     models.BugPriorityCritical,
			ReportedByID: &testerEmma.ID,
			AssignedToID: &devMike.ID,
			ProjectID:    projectAlpha.ID,
			TeamID:       &teamAlpha.ID,
		},
		{
			Title:        "Bug list pagination skips entries",
			Description:  "Page two repeats the last item of page one.",
			Status:       models.BugStatusInProgress,
			Priority:     models.BugPriorityMedium,
			ReportedByID: &testerEmma.ID,
			AssignedToID: &devMike.ID,
			ProjectID:    projectAlpha.ID,
			TeamID:       &teamAlpha.ID,
		},
		{
			Title:        "Dashboard charts render blank on Safari",
			Status:       models.BugStatusOpen,
			Priority:     models.BugPriorityLow,
			ReportedByID: &custBob.ID,
			ProjectID:    projectBeta.ID,
			TeamID:       &teamBeta.ID,
		},
		{
			Title:        "Export button missing from analytics view",
			Status:       models.BugStatusResolved,
			Priority:     models.BugPriorityHigh,
			ReportedByID: &engSusan.ID,
			AssignedToID: &devSara.ID,
			ProjectID:    projectBeta.ID,
			TeamID:       &teamBeta.ID,
		},
	}

	for i := range bugs {
		if err := db.DB.Create(&bugs[i]).Error; err != nil {
			log.Fatalf("Failed to create bug %q: %v", bugs[i].Title, err)
		}
	}

	log.Printf("Seeded %d users, 2 projects, 2 teams, %d bugs", 10, len(bugs))
}
