package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

type SimConfig struct {
	NumUsers         int
	SimulationTime   time.Duration
	PostFrequency    float64 // weight of publish actions
	CommentFrequency float64 // weight of comment actions
	LikeFrequency    float64 // weight of like actions
	DeleteFrequency  float64 // weight of delete actions
	ServerURL        string
}

type SimulationStats struct {
	mu               sync.RWMutex
	StartTime        time.Time
	TotalRequests    int64
	SuccessRequests  int64
	FailedRequests   int64
	AverageLatency   time.Duration
	TotalPosts       int
	TotalComments    int
	TotalLikes       int
	TotalDeletes     int
	DuplicateLikes   int
	RequestLatencies []time.Duration
}

// SimulatedUser tracks one registered identity and its session token.
type SimulatedUser struct {
	ID         int64
	Username   string
	Token      string
	Posts      []int64
	LikedPosts map[int64]bool
}

type Simulator struct {
	config SimConfig
	stats  *SimulationStats
	users  []*SimulatedUser
	client *http.Client
	mu     sync.RWMutex
}

func NewSimulator(config SimConfig) *Simulator {
	return &Simulator{
		config: config,
		stats: &SimulationStats{
			StartTime:        time.Now(),
			RequestLatencies: make([]time.Duration, 0),
		},
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *Simulator) Run(ctx context.Context) error {
	log.Printf("Starting simulation...")

	if err := s.createInitialUsers(ctx); err != nil {
		return fmt.Errorf("initialization failed: %v", err)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.simulateActivities(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.collectMetrics(ctx)
	}()

	wg.Wait()
	return nil
}

func (s *Simulator) createInitialUsers(ctx context.Context) error {
	log.Printf("Creating %d users...", s.config.NumUsers)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make([]*SimulatedUser, 0, s.config.NumUsers)

	rateLimiter := time.NewTicker(100 * time.Millisecond)
	defer rateLimiter.Stop()

	for i := 0; i < s.config.NumUsers; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-rateLimiter.C:
		}

		user := &SimulatedUser{
			Username:   fmt.Sprintf("sim_%s", uuid.NewString()[:8]),
			LikedPosts: make(map[int64]bool),
			Posts:      make([]int64, 0),
		}

		if err := s.registerUser(user); err != nil {
			log.Printf("Failed to register user %s: %v", user.Username, err)
			continue
		}
		s.users = append(s.users, user)
	}

	log.Printf("Successfully created %d users", len(s.users))
	return nil
}

func (s *Simulator) registerUser(user *SimulatedUser) error {
	data := map[string]interface{}{
		"username": user.Username,
		"googleId": uuid.NewString(),
	}

	resp, err := s.makeRequest("POST", "/user/register", data, "")
	if err != nil {
		return fmt.Errorf("failed to register user: %v", err)
	}

	var result struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		UserID  int64  `json:"userId"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return fmt.Errorf("failed to parse registration response: %v", err)
	}
	if !result.Success {
		return fmt.Errorf("registration rejected for %s", user.Username)
	}

	user.ID = result.UserID
	user.Token = result.Token
	return nil
}

func (s *Simulator) simulateActivities(ctx context.Context) {
	log.Printf("Starting activity simulation...")
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	totalWeight := s.config.PostFrequency + s.config.CommentFrequency +
		s.config.LikeFrequency + s.config.DeleteFrequency

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.RLock()
			if len(s.users) == 0 {
				s.mu.RUnlock()
				continue
			}
			user := s.users[rand.Intn(len(s.users))]
			s.mu.RUnlock()

			roll := rand.Float64() * totalWeight
			switch {
			case roll < s.config.PostFrequency:
				s.publishPost(user)
			case roll < s.config.PostFrequency+s.config.LikeFrequency:
				s.likeRandomPost(user)
			case roll < s.config.PostFrequency+s.config.LikeFrequency+s.config.CommentFrequency:
				s.commentRandomPost(user)
			default:
				s.deleteOwnPost(user)
			}
		}
	}
}

func (s *Simulator) publishPost(user *SimulatedUser) {
	data := map[string]interface{}{
		"title":   fmt.Sprintf("Workout log %s", uuid.NewString()[:6]),
		"content": "Crushed today's session. Progressive overload is working.",
	}

	resp, err := s.makeRequest("POST", "/posts", data, user.Token)
	if err != nil {
		return
	}

	var post struct {
		ID int64 `json:"id"`
	}
	if json.Unmarshal(resp, &post) != nil {
		return
	}

	s.mu.Lock()
	user.Posts = append(user.Posts, post.ID)
	s.mu.Unlock()

	s.stats.mu.Lock()
	s.stats.TotalPosts++
	s.stats.mu.Unlock()
}

// likeRandomPost occasionally re-likes a post on purpose to measure how the
// server handles duplicate like attempts under load.
func (s *Simulator) likeRandomPost(user *SimulatedUser) {
	postID, ok := s.randomKnownPost()
	if !ok {
		return
	}

	expectDuplicate := user.LikedPosts[postID]
	data := map[string]interface{}{"postId": postID}

	_, err := s.makeRequest("POST", "/post/like", data, user.Token)
	if err != nil {
		if expectDuplicate {
			s.stats.mu.Lock()
			s.stats.DuplicateLikes++
			s.stats.mu.Unlock()
		}
		return
	}

	s.mu.Lock()
	user.LikedPosts[postID] = true
	s.mu.Unlock()

	s.stats.mu.Lock()
	s.stats.TotalLikes++
	s.stats.mu.Unlock()
}

func (s *Simulator) commentRandomPost(user *SimulatedUser) {
	postID, ok := s.randomKnownPost()
	if !ok {
		return
	}

	data := map[string]interface{}{
		"postId":  postID,
		"content": "Nice progress, keep it up!",
	}

	if _, err := s.makeRequest("POST", "/comment", data, user.Token); err != nil {
		return
	}

	s.stats.mu.Lock()
	s.stats.TotalComments++
	s.stats.mu.Unlock()
}

func (s *Simulator) deleteOwnPost(user *SimulatedUser) {
	s.mu.Lock()
	if len(user.Posts) == 0 {
		s.mu.Unlock()
		return
	}
	idx := rand.Intn(len(user.Posts))
	postID := user.Posts[idx]
	user.Posts = append(user.Posts[:idx], user.Posts[idx+1:]...)
	s.mu.Unlock()

	endpoint := fmt.Sprintf("/post?id=%d", postID)
	if _, err := s.makeRequest("DELETE", endpoint, nil, user.Token); err != nil {
		return
	}

	s.stats.mu.Lock()
	s.stats.TotalDeletes++
	s.stats.mu.Unlock()
}

// randomKnownPost picks a post some simulated user has published.
func (s *Simulator) randomKnownPost() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := make([]int64, 0)
	for _, u := range s.users {
		candidates = append(candidates, u.Posts...)
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[rand.Intn(len(candidates))], true
}

func (s *Simulator) makeRequest(method, endpoint string, data interface{}, token string) ([]byte, error) {
	var body []byte
	var err error

	if data != nil {
		body, err = json.Marshal(data)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest(method, s.config.ServerURL+endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.recordRequestMetrics(start, err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		statusErr := fmt.Errorf("request failed with status: %d", resp.StatusCode)
		s.recordRequestMetrics(start, statusErr)
		return nil, statusErr
	}

	s.recordRequestMetrics(start, nil)
	return io.ReadAll(resp.Body)
}

func (s *Simulator) recordRequestMetrics(start time.Time, err error) {
	s.stats.mu.Lock()
	defer s.stats.mu.Unlock()

	latency := time.Since(start)
	s.stats.TotalRequests++
	s.stats.RequestLatencies = append(s.stats.RequestLatencies, latency)

	if err != nil {
		s.stats.FailedRequests++
	} else {
		s.stats.SuccessRequests++
	}

	totalLatency := s.stats.AverageLatency * time.Duration(s.stats.TotalRequests-1)
	s.stats.AverageLatency = (totalLatency + latency) / time.Duration(s.stats.TotalRequests)
}

func (s *Simulator) collectMetrics(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.stats.mu.RLock()
			elapsed := time.Since(s.stats.StartTime)
			requestRate := float64(s.stats.TotalRequests) / elapsed.Seconds()
			successRate := 0.0
			if s.stats.TotalRequests > 0 {
				successRate = float64(s.stats.SuccessRequests) / float64(s.stats.TotalRequests) * 100
			}

			log.Printf("\nSimulation Metrics (%.1f seconds elapsed):", elapsed.Seconds())
			log.Printf("- Request Rate: %.2f req/sec", requestRate)
			log.Printf("- Success Rate: %.1f%%", successRate)
			log.Printf("- Average Latency: %v", s.stats.AverageLatency)
			log.Printf("- Total Posts: %d", s.stats.TotalPosts)
			log.Printf("- Total Comments: %d", s.stats.TotalComments)
			log.Printf("- Total Likes: %d (duplicate attempts rejected: %d)", s.stats.TotalLikes, s.stats.DuplicateLikes)
			log.Printf("- Total Deletes: %d", s.stats.TotalDeletes)
			log.Printf("- Failed Requests: %d", s.stats.FailedRequests)
			s.stats.mu.RUnlock()
		}
	}
}

// SimulationMetrics holds the final metrics of a simulation run
type SimulationMetrics struct {
	TotalUsers        int
	TotalPosts        int
	TotalComments     int
	TotalLikes        int
	TotalDeletes      int
	DuplicateLikes    int
	AverageLatency    time.Duration
	ErrorCount        int
	RequestsPerSecond float64
}

// GetMetrics returns the current simulation metrics
func (s *Simulator) GetMetrics() SimulationMetrics {
	s.stats.mu.RLock()
	defer s.stats.mu.RUnlock()

	elapsed := time.Since(s.stats.StartTime)
	requestRate := float64(s.stats.TotalRequests) / elapsed.Seconds()

	s.mu.RLock()
	totalUsers := len(s.users)
	s.mu.RUnlock()

	return SimulationMetrics{
		TotalUsers:        totalUsers,
		TotalPosts:        s.stats.TotalPosts,
		TotalComments:     s.stats.TotalComments,
		TotalLikes:        s.stats.TotalLikes,
		TotalDeletes:      s.stats.TotalDeletes,
		DuplicateLikes:    s.stats.DuplicateLikes,
		AverageLatency:    s.stats.AverageLatency,
		ErrorCount:        int(s.stats.FailedRequests),
		RequestsPerSecond: requestRate,
	}
}
