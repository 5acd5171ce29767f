//go:build ignore

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/zirz1911/global-security-hub/internal/auth"
	"github.com/zirz1911/global-security-hub/internal/database"
	"github.com/zirz1911/global-security-hub/internal/database/models"
	"github.com/zirz1911/global-security-hub/pkg/config"
	"github.com/zirz1911/global-security-hub/pkg/util"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	if err := seedAdmin(db); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	if err := seedOrganizations(db); err != nil {
		log.Fatalf("failed to seed organizations: %v", err)
	}

	fmt.Println("Seed complete")
}

func seedAdmin(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	name := os.Getenv("ADMIN_NAME")

	if email == "" {
		email = "admin@example.com"
	}
	if password == "" {
		password = "admin123!"
	}
	if name == "" {
		name = "Admin"
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		fmt.Printf("Admin user %s already exists, skipping\n", email)
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         "ADMIN",
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		return err
	}

	fmt.Printf("Created admin user: %s\n", email)
	return nil
}

func seedOrganizations(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Organization{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		fmt.Println("Organizations already present, skipping")
		return nil
	}

	year := func(y int) *int { return &y }

	orgs := []models.Organization{
		{
			Name:        "FBI",
			FullName:    "Federal Bureau of Investigation",
			Country:     "United States",
			Type:        models.OrgTypeIntelligence,
			Description: "The domestic intelligence and security service of the United States.",
			Website:     "https://www.fbi.gov",
			Established: year(1908),
			IsActive:    true,
			Personnel: []models.Personnel{
				{Name: "Jane Doe", Position: "Director", IsCurrent: true},
			},
		},
		{
			Name:        "Royal Canadian Mounted Police",
			FullName:    "Royal Canadian Mounted Police",
			Country:     "Canada",
			Type:        models.OrgTypePolice,
			Description: "The federal and national police service of Canada.",
			Website:     "https://rcmp-grc.gc.ca",
			Established: year(1920),
			IsActive:    true,
		},
		{
			Name:        "Indonesia National Police",
			FullName:    "Kepolisian Negara Republik Indonesia",
			Country:     "Indonesia",
			Type:        models.OrgTypePolice,
			Description: "The national police force of Indonesia.",
			Website:     "https://polri.go.id",
			Established: year(1946),
			IsActive:    true,
		},
		{
			Name:        "Interpol",
			FullName:    "International Criminal Police Organization",
			Country:     "France",
			Type:        models.OrgTypeOther,
			Description: "An international organization facilitating police cooperation worldwide.",
			Website:     "https://www.interpol.int",
			Established: year(1923),
			IsActive:    true,
		},
		{
			Name:        "MI6",
			FullName:    "Secret Intelligence Service",
			Country:     "United Kingdom",
			Type:        models.OrgTypeIntelligence,
			Description: "The foreign intelligence service of the United Kingdom.",
			Website:     "https://www.sis.gov.uk",
			Established: year(1909),
			IsActive:    true,
		},
	}

	for i := range orgs {
		if err := db.Create(&orgs[i]).Error; err != nil {
			return err
		}
	}

	fmt.Printf("Created %d organizations\n", len(orgs))
	return nil
}
