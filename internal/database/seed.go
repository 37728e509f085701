// internal/database/seed.go
package database

import (
	"context"
	"log"
	"time"

	"fitblog/internal/models"
)

// SeedSampleData inserts the starter users and posts on an empty database.
// A database that already has users is left untouched.
func (s *SQLiteDB) SeedSampleData(ctx context.Context) error {
	count, err := s.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	users := []*models.User{
		{Username: "FitFreak", MemberSince: time.Date(2024, 1, 1, 8, 30, 54, 0, time.UTC)},
		{Username: "GymRat", MemberSince: time.Date(2024, 2, 12, 1, 20, 30, 0, time.UTC)},
		{Username: "IronMind", MemberSince: time.Date(2024, 4, 20, 14, 0, 0, 0, time.UTC)},
	}
	for _, u := range users {
		if err := s.SaveUser(ctx, u); err != nil {
			return err
		}
	}

	posts := []*models.Post{
		{
			Title:          "Unlock Your Potential: Embrace the Fitness Journey!",
			Content:        "Hey FitFam! Today, I'm sharing my journey from couch potato to fitness enthusiast. It wasn't easy, but the results are worth it! Remember, every step forward, no matter how small, is progress. Let's conquer those fitness goals together!",
			AuthorUsername: "FitFreak",
			CreatedAt:      time.Date(2024, 1, 1, 15, 55, 54, 0, time.UTC),
		},
		{
			Title:          "Fuel Your Fire: Tips for a Powerful Workout!",
			Content:        "Hey warriors! Need a boost? Try pre-workout snacks like banana with almond butter or Greek yogurt with berries for sustained energy. Keep pushing!",
			AuthorUsername: "GymRat",
			CreatedAt:      time.Date(2024, 2, 16, 13, 20, 30, 0, time.UTC),
		},
		{
			Title:          "Mind Over Matter: Cultivating Mental Resilience!",
			Content:        "Hello champions! Fitness isn't just about physical strength; it's about mental toughness too. When you feel like giving up, visualize your success.",
			AuthorUsername: "IronMind",
			CreatedAt:      time.Date(2024, 2, 16, 17, 30, 30, 0, time.UTC),
			ImageRef:       "/upload/gym.jpg",
		},
	}
	for _, p := range posts {
		if err := s.SavePost(ctx, p); err != nil {
			return err
		}
	}

	log.Printf("Database seeded with %d users and %d posts", len(users), len(posts))
	return nil
}
