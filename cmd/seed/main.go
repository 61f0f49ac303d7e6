// Command main runs the database seeder for Trenai.
package main

import (
	"flag"
	"log"

	"trenai/internal/config"
	"trenai/internal/database"
	"trenai/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of fake creators to add beyond the demo accounts")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with demo creators.")
	log.Printf("📧 All demo accounts have the password: %s", seed.DemoPassword)
}
