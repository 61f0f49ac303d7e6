// Package seed provides database seeding utilities for development environments.
package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"trenai/internal/generator"
	"trenai/internal/models"
	"trenai/internal/trends"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	ShouldClean bool
}

// DemoPassword is the login password for every seeded account.
const DemoPassword = "password123"

// Seed populates the database with demo accounts and history.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Seeding database with %d demo creators...", opts.NumUsers)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: could not clear all existing data, continuing anyway...")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}

	users := demoUsers(string(hash))
	for i := 0; i < opts.NumUsers; i++ {
		users = append(users, fakeUser(string(hash)))
	}

	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			return fmt.Errorf("seeding user %s: %w", users[i].Email, err)
		}
		if err := seedHistory(db, users[i].ID); err != nil {
			return err
		}
	}

	log.Printf("🌱 Seeded %d creators (password %q)", len(users), DemoPassword)
	return nil
}

func demoUsers(hash string) []models.User {
	return []models.User{
		{
			Name:               "Sarah Johnson",
			Email:              "sarah@example.com",
			Password:           hash,
			Plan:               models.PlanPro,
			Niche:              "Health & Fitness",
			Platforms:          []string{"Instagram", "TikTok", "YouTube"},
			OnboardingComplete: true,
		},
		{
			Name:               "Alex Chen",
			Email:              "alex@example.com",
			Password:           hash,
			Plan:               models.PlanStarter,
			Niche:              "Technology & AI",
			Platforms:          []string{"Blog", "LinkedIn", "X"},
			OnboardingComplete: true,
		},
	}
}

func fakeUser(hash string) models.User {
	plans := []models.Plan{models.PlanFree, models.PlanFree, models.PlanStarter, models.PlanPro}
	name := gofakeit.Name()
	return models.User{
		Name:               name,
		Email:              gofakeit.Email(),
		Password:           hash,
		Plan:               plans[gofakeit.Number(0, len(plans)-1)],
		Niche:              trends.NicheCategories[gofakeit.Number(0, len(trends.NicheCategories)-1)],
		Platforms:          []string{"Instagram", "TikTok"},
		OnboardingComplete: gofakeit.Bool(),
	}
}

func seedHistory(db *gorm.DB, userID uint) error {
	catalog := trends.Canonical()
	for i := 0; i < gofakeit.Number(1, 3); i++ {
		trend := catalog[gofakeit.Number(0, len(catalog)-1)]
		content := models.GeneratedContent{
			ID:          uuid.NewString(),
			UserID:      userID,
			TrendID:     trend.ID,
			Platform:    gofakeit.RandomString([]string{"Instagram", "TikTok", "Blog", "LinkedIn"}),
			ContentType: gofakeit.RandomString([]string{"post", "reel", "article"}),
			Content: models.ContentBody{
				Hook:    fmt.Sprintf("🔥 %s is everywhere right now!", trend.Title),
				Caption: gofakeit.Sentence(12),
			},
			EstimatedReach:       "10K-20K impressions",
			EngagementPrediction: "High",
			ViralScore:           gofakeit.Number(60, 100),
			CreatedAt:            time.Now().Add(-time.Duration(gofakeit.Number(1, 96)) * time.Hour),
		}
		if err := db.Create(&content).Error; err != nil {
			return fmt.Errorf("seeding content for user %d: %w", userID, err)
		}
	}

	analyzer := generator.NewMockAnalyzer(0)
	analysis, err := analyzer.Analyze(context.Background(), "Instagram", fmt.Sprintf("instagram.com/%s", gofakeit.Username()))
	if err != nil {
		return fmt.Errorf("seeding analysis for user %d: %w", userID, err)
	}
	analysis.UserID = userID
	if err := db.Create(analysis).Error; err != nil {
		return fmt.Errorf("seeding analysis for user %d: %w", userID, err)
	}
	return nil
}

func clearData(db *gorm.DB) error {
	for _, model := range []any{&models.UserAnalysis{}, &models.GeneratedContent{}, &models.User{}} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
