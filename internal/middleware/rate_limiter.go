package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RateLimiter implements a simple in-memory rate limiter keyed by
// authenticated user and by client IP.
type RateLimiter struct {
	userLimits map[uint]*limitWindow
	ipLimits   map[string]*limitWindow
	mu         sync.RWMutex

	userMaxRequests int
	ipMaxRequests   int
	window          time.Duration
}

type limitWindow struct {
	requests  int
	resetTime time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(userMaxRequests, ipMaxRequests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		userLimits:      make(map[uint]*limitWindow),
		ipLimits:        make(map[string]*limitWindow),
		userMaxRequests: userMaxRequests,
		ipMaxRequests:   ipMaxRequests,
		window:          window,
	}

	// Start cleanup goroutine
	go rl.cleanup()

	return rl
}

// Handler returns a fiber middleware enforcing both limits. Anonymous
// requests are limited by IP only.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rl.CheckIPLimit(c.IP()) {
			return tooManyRequests(c)
		}
		if userID := GetUserID(c); userID != 0 {
			if !rl.CheckUserLimit(userID) {
				return tooManyRequests(c)
			}
		}
		return c.Next()
	}
}

func tooManyRequests(c *fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
		"error": "rate limit exceeded",
	})
}

// CheckUserLimit checks if user has exceeded rate limit
func (rl *RateLimiter) CheckUserLimit(userID uint) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	limit, exists := rl.userLimits[userID]
	if !exists || now.After(limit.resetTime) {
		rl.userLimits[userID] = &limitWindow{
			requests:  1,
			resetTime: now.Add(rl.window),
		}
		return true
	}

	if limit.requests >= rl.userMaxRequests {
		return false
	}

	limit.requests++
	return true
}

// CheckIPLimit checks if IP has exceeded rate limit
func (rl *RateLimiter) CheckIPLimit(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	limit, exists := rl.ipLimits[ip]
	if !exists || now.After(limit.resetTime) {
		rl.ipLimits[ip] = &limitWindow{
			requests:  1,
			resetTime: now.Add(rl.window),
		}
		return true
	}

	if limit.requests >= rl.ipMaxRequests {
		return false
	}

	limit.requests++
	return true
}

// GetUserRemaining returns remaining requests for user
func (rl *RateLimiter) GetUserRemaining(userID uint) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	limit, exists := rl.userLimits[userID]
	if !exists || time.Now().After(limit.resetTime) {
		return rl.userMaxRequests
	}

	remaining := rl.userMaxRequests - limit.requests
	if remaining < 0 {
		return 0
	}
	return remaining
}

// GetIPRemaining returns remaining requests for IP
func (rl *RateLimiter) GetIPRemaining(ip string) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	limit, exists := rl.ipLimits[ip]
	if !exists || time.Now().After(limit.resetTime) {
		return rl.ipMaxRequests
	}

	remaining := rl.ipMaxRequests - limit.requests
	if remaining < 0 {
		return 0
	}
	return remaining
}

// cleanup removes expired entries
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()

		for userID, limit := range rl.userLimits {
			if now.After(limit.resetTime) {
				delete(rl.userLimits, userID)
			}
		}

		for ip, limit := range rl.ipLimits {
			if now.After(limit.resetTime) {
				delete(rl.ipLimits, ip)
			}
		}

		rl.mu.Unlock()
	}
}

// Reset clears all rate limits (useful for testing)
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.userLimits = make(map[uint]*limitWindow)
	rl.ipLimits = make(map[string]*limitWindow)
}
