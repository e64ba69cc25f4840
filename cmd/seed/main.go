// Command seed populates the database with generated development data.
package main

import (
	"flag"
	"log"

	"aurex/internal/config"
	"aurex/internal/database"
	"aurex/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 0, "Number of users to create (overrides profile)")
	plansPerUser := flag.Int("plans", 0, "Plans per user (overrides profile)")
	shouldClean := flag.Bool("clean", false, "Clean database before seeding")
	profile := flag.String("profile", "", "Path to a YAML seed profile")
	flag.Parse()

	opts := seed.DefaultOptions()
	if *profile != "" {
		var err error
		opts, err = seed.LoadProfile(*profile)
		if err != nil {
			log.Fatalf("Failed to load seed profile: %v", err)
		}
	}
	if *numUsers > 0 {
		opts.NumUsers = *numUsers
	}
	if *plansPerUser > 0 {
		opts.PlansPerUser = *plansPerUser
	}
	if *shouldClean {
		opts.ShouldClean = true
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
