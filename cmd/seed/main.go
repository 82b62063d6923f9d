// Command main runs the database seeder for Community Pulse.
package main

import (
	"flag"
	"log"

	"communitypulse/internal/config"
	"communitypulse/internal/database"
	"communitypulse/internal/models"
	"communitypulse/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 10, "Number of users to create")
	eventsPerUser := flag.Int("events", 3, "Events per user")
	interestsPerEvent := flag.Int("interests", 4, "Registrations per approved event")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d events each, clean=%v\n", *numUsers, *eventsPerUser, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *shouldClean {
		for _, model := range []any{
			&models.Notification{}, &models.Interest{}, &models.Event{}, &models.User{},
		} {
			if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
				log.Fatalf("Cleanup failed: %v", err)
			}
		}
	}

	opts := seed.DefaultOptions()
	opts.Users = *numUsers
	opts.EventsPerUser = *eventsPerUser
	opts.InterestsPerEvent = *interestsPerEvent

	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
