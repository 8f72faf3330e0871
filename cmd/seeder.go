package cmd

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	grievanceDatamodel "github.com/aegisedu/campus-portal/internal/core/datamodel/grievance"
	internshipDatamodel "github.com/aegisedu/campus-portal/internal/core/datamodel/internship"
	userDatamodel "github.com/aegisedu/campus-portal/internal/core/datamodel/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample accounts, grievances and internships for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			// children before parents
			for _, table := range []string{"grievances", "resources", "internships", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		userIDs := seedUsers(db, cfg.Security.BCryptCost)
		seedGrievances(db, userIDs)
		seedInternships(db)

		fmt.Println("Seeding complete")
	},
}

type seedUser struct {
	Name     string
	Email    string
	Password string
	Role     string
}

var seedUserRows = []seedUser{
	{"Admin User", "admin@aegis.edu", "admin123", "admin"},
	{"Faculty Member", "faculty@aegis.edu", "faculty123", "faculty"},
	{"Student One", "student1@aegis.edu", "student123", "student"},
	{"Student Two", "student2@aegis.edu", "student123", "student"},
}

func seedUsers(db *gorm.DB, bcryptCost int) map[string]int64 {
	ids := make(map[string]int64, len(seedUserRows))

	for _, row := range seedUserRows {
		var existing userDatamodel.User
		err := db.Where("email = ?", row.Email).First(&existing).Error
		if err == nil {
			fmt.Println("user already exists:", row.Email)
			ids[row.Email] = existing.ID
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("failed to check user %s: %v", row.Email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(row.Password), bcryptCost)
		if err != nil {
			log.Fatalf("failed to hash password for %s: %v", row.Email, err)
		}

		model := userDatamodel.User{
			Name:         row.Name,
			Email:        row.Email,
			PasswordHash: string(hash),
			Role:         row.Role,
		}
		if err := db.Create(&model).Error; err != nil {
			log.Fatalf("failed to insert user %s: %v", row.Email, err)
		}
		ids[row.Email] = model.ID
		fmt.Println("Seeded user:", row.Email)
	}

	return ids
}

func seedGrievances(db *gorm.DB, userIDs map[string]int64) {
	underReview := "Under review"
	wifiFixed := "Issue resolved - new router installed"

	rows := []struct {
		StudentEmail string
		Title        string
		Description  string
		Status       string
		AdminRemark  *string
	}{
		{"student1@aegis.edu", "Library Book Issue", "Requested book has been marked available for weeks but is never on the shelf.", "Pending", nil},
		{"student1@aegis.edu", "Exam Schedule Conflict", "Two of my finals are scheduled at the same time slot.", "In Progress", &underReview},
		{"student2@aegis.edu", "Campus WiFi Problem", "WiFi keeps dropping in the east dormitory.", "Resolved", &wifiFixed},
	}

	for _, row := range rows {
		studentID, ok := userIDs[row.StudentEmail]
		if !ok {
			log.Fatalf("seed grievance references unknown user %s", row.StudentEmail)
		}

		var count int64
		if err := db.Model(&grievanceDatamodel.Grievance{}).
			Where("student_id = ? AND title = ?", studentID, row.Title).
			Count(&count).Error; err != nil {
			log.Fatalf("failed to check grievance %q: %v", row.Title, err)
		}
		if count > 0 {
			fmt.Println("grievance already exists:", row.Title)
			continue
		}

		model := grievanceDatamodel.Grievance{
			StudentID:   studentID,
			Title:       row.Title,
			Description: row.Description,
			Status:      row.Status,
			AdminRemark: row.AdminRemark,
		}
		if err := db.Create(&model).Error; err != nil {
			log.Fatalf("failed to insert grievance %q: %v", row.Title, err)
		}
		fmt.Println("Seeded grievance:", row.Title)
	}
}

func seedInternships(db *gorm.DB) {
	rows := []struct {
		Title    string
		Company  string
		Deadline string
	}{
		{"Software Engineering Intern", "Google", "2024-12-31"},
		{"Product Management Intern", "Microsoft", "2024-11-15"},
		{"Data Analyst Intern", "Amazon", "2024-10-30"},
		{"Cloud Engineering Intern", "IBM", "2024-12-01"},
	}

	for _, row := range rows {
		var count int64
		if err := db.Model(&internshipDatamodel.Internship{}).
			Where("title = ? AND company = ?", row.Title, row.Company).
			Count(&count).Error; err != nil {
			log.Fatalf("failed to check internship %q: %v", row.Title, err)
		}
		if count > 0 {
			fmt.Println("internship already exists:", row.Title)
			continue
		}

		deadline, err := time.Parse("2006-01-02", row.Deadline)
		if err != nil {
			log.Fatalf("bad seed deadline %q: %v", row.Deadline, err)
		}

		model := internshipDatamodel.Internship{
			Title:    row.Title,
			Company:  row.Company,
			Deadline: deadline,
		}
		if err := db.Create(&model).Error; err != nil {
			log.Fatalf("failed to insert internship %q: %v", row.Title, err)
		}
		fmt.Println("Seeded internship:", row.Title)
	}
}
