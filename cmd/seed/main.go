// Command seed populates the database with demo users, posts and likes.
package main

import (
	"flag"
	"log"
	"time"

	"postly/internal/config"
	"postly/internal/database"
	"postly/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 100, "Number of posts to create")
	likesPerUser := flag.Int("likes", 5, "Number of likes per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	randSeed := flag.Int64("seed", time.Now().UnixNano(), "Random seed (fix for reproducible data)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, *randSeed)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedUsers(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}

	posts, err := s.SeedPosts(users, *numPosts)
	if err != nil {
		log.Fatalf("Post seeding failed: %v", err)
	}

	if err := s.SeedLikes(users, posts, *likesPerUser); err != nil {
		log.Fatalf("Like seeding failed: %v", err)
	}

	log.Printf("Seeded %d users, %d posts. All accounts use the password %q.",
		len(users), len(posts), seed.DemoPassword)
}
