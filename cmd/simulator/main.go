package main

import (
	"context"
	"log"
	"time"

	"fitblog/simulator"
)

func main() {
	config := simulator.SimConfig{
		NumUsers:         10,
		SimulationTime:   5 * time.Minute,
		PostFrequency:    30.0,
		CommentFrequency: 40.0,
		LikeFrequency:    80.0,
		DeleteFrequency:  5.0,
		ServerURL:        "http://localhost:3000",
	}

	sim := simulator.NewSimulator(config)
	ctx, cancel := context.WithTimeout(context.Background(), config.SimulationTime)
	defer cancel()

	log.Printf("Starting simulation with configuration:")
	log.Printf("- Server URL: %s", config.ServerURL)
	log.Printf("- Number of users: %d", config.NumUsers)
	log.Printf("- Simulation time: %v", config.SimulationTime)
	log.Printf("- Action weights: post=%.0f like=%.0f comment=%.0f delete=%.0f",
		config.PostFrequency, config.LikeFrequency, config.CommentFrequency, config.DeleteFrequency)

	if err := sim.Run(ctx); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	metrics := sim.GetMetrics()
	log.Printf("\nSimulation completed. Final metrics:")
	log.Printf("- Total users: %d", metrics.TotalUsers)
	log.Printf("- Total posts: %d", metrics.TotalPosts)
	log.Printf("- Total comments: %d", metrics.TotalComments)
	log.Printf("- Total likes: %d (duplicates rejected: %d)", metrics.TotalLikes, metrics.DuplicateLikes)
	log.Printf("- Total deletes: %d", metrics.TotalDeletes)
	log.Printf("- Error count: %d", metrics.ErrorCount)
}
