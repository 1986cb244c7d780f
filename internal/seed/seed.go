// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"

	"postly/internal/auth"
	"postly/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DemoPassword is the plaintext password shared by all seeded accounts.
const DemoPassword = "password123"

// Seeder populates the database with generated users, posts and likes.
type Seeder struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB. The optional
// seed fixes the random sequence for reproducible data sets.
func NewSeeder(db *gorm.DB, randSeed int64) *Seeder {
	gofakeit.Seed(randSeed)
	return &Seeder{db: db, r: rand.New(rand.NewSource(randSeed))}
}

// ClearAll removes all seeded data. Likes go first so foreign keys hold.
func (s *Seeder) ClearAll() error {
	for _, stmt := range []string{
		"DELETE FROM likes",
		"DELETE FROM posts",
		"DELETE FROM users",
	} {
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("clear: %w", err)
		}
	}
	return nil
}

// SeedUsers creates n users with generated identities and the shared demo
// password.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	hashed, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Name:     gofakeit.Name(),
			Age:      gofakeit.Number(18, 80),
			Email:    gofakeit.Email(),
			Password: hashed,
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("create user %d: %w", i, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedPosts creates n posts spread across the given users.
func (s *Seeder) SeedPosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		owner := users[s.r.Intn(len(users))]
		post := &models.Post{
			UserID:  owner.ID,
			Content: gofakeit.Sentence(s.r.Intn(12) + 3),
		}
		if err := s.db.Create(post).Error; err != nil {
			return nil, fmt.Errorf("create post %d: %w", i, err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// SeedLikes sprinkles likes over the posts. Each user likes a random subset;
// the conflict clause keeps repeated picks harmless.
func (s *Seeder) SeedLikes(users []*models.User, posts []*models.Post, perUser int) error {
	if len(posts) == 0 {
		return nil
	}

	for _, user := range users {
		for i := 0; i < perUser; i++ {
			post := posts[s.r.Intn(len(posts))]
			like := models.Like{UserID: user.ID, PostID: post.ID}
			err := s.db.
				Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
					DoNothing: true,
				}).
				Create(&like).Error
			if err != nil {
				return fmt.Errorf("create like: %w", err)
			}
		}
	}
	return nil
}
