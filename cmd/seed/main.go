package main

import (
	"context"
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/devjh/commboard/internal/config"
	"github.com/devjh/commboard/internal/domain"
	"github.com/devjh/commboard/internal/repository/postgres"
)

// Seeds the database with an admin account and the default boards and
// categories. Safe to run repeatedly: existing rows are left alone.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	repos := postgres.NewRepositories(db)
	ctx := context.Background()

	adminEmail := getEnv("ADMIN_EMAIL", "admin@commboard.local")
	adminPassword := getEnv("ADMIN_PASSWORD", "admin1234")

	if _, err := repos.User.GetByEmail(ctx, adminEmail); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("admin lookup failed: %v", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}

		admin := &domain.User{
			Email:        adminEmail,
			Name:         "Administrator",
			Nickname:     "admin",
			PasswordHash: string(hash),
			Role:         domain.RoleAdmin,
		}
		if err := repos.User.Create(ctx, admin); err != nil {
			log.Fatalf("failed to create admin user: %v", err)
		}
		log.Printf("created admin user %s", adminEmail)
	}

	boards := []domain.Board{
		{Name: "notice", Description: "Announcements from the admins"},
		{Name: "general", Description: "General discussion"},
		{Name: "qna", Description: "Questions and answers"},
	}
	for i := range boards {
		if err := db.Where("name = ?", boards[i].Name).FirstOrCreate(&boards[i]).Error; err != nil {
			log.Fatalf("failed to seed board %s: %v", boards[i].Name, err)
		}
	}

	categories := []domain.Category{
		{Name: "daily"},
		{Name: "tech"},
		{Name: "hobby"},
	}
	for i := range categories {
		if err := db.Where("name = ?", categories[i].Name).FirstOrCreate(&categories[i]).Error; err != nil {
			log.Fatalf("failed to seed category %s: %v", categories[i].Name, err)
		}
	}

	log.Println("seed complete")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
