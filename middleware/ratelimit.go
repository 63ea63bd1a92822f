package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// LoginRateLimit limits login attempts per client IP: at most
// maxAttempts per window, 429 beyond that.
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	type entry struct {
		timestamps []time.Time
	}
	var (
		mu    sync.RWMutex
		store = make(map[string]*entry)
	)
	// Sweep expired entries in the background.
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			cutoff := time.Now().Add(-window)
			for ip, e := range store {
				newTs := e.timestamps[:0]
				for _, t := range e.timestamps {
					if t.After(cutoff) {
						newTs = append(newTs, t)
					}
				}
				if len(newTs) == 0 {
					delete(store, ip)
				} else {
					e.timestamps = newTs
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()
		mu.Lock()
		e, ok := store[ip]
		if !ok {
			e = &entry{}
			store[ip] = e
		}
		cutoff := now.Add(-window)
		newTs := e.timestamps[:0]
		for _, t := range e.timestamps {
			if t.After(cutoff) {
				newTs = append(newTs, t)
			}
		}
		e.timestamps = newTs
		if len(e.timestamps) >= maxAttempts {
			mu.Unlock()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "too many login attempts, try again later",
			})
			c.Abort()
			return
		}
		e.timestamps = append(e.timestamps, now)
		mu.Unlock()
		c.Next()
	}
}

// UserRateLimit limits authenticated API calls per user with a fixed
// window counter: maxRequests per window, reset when the window rolls
// over. Best effort and in-memory only; counters are swept once a
// minute. Must run after JWTAuth.
func UserRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	type entry struct {
		count     int
		resetTime time.Time
	}
	var (
		mu    sync.Mutex
		store = make(map[uint]*entry)
	)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			now := time.Now()
			for id, e := range store {
				if now.After(e.resetTime) {
					delete(store, id)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		userID := GetCurrentUserID(c)
		if userID == 0 {
			c.Next()
			return
		}
		now := time.Now()
		mu.Lock()
		e, ok := store[userID]
		if !ok || now.After(e.resetTime) {
			store[userID] = &entry{count: 1, resetTime: now.Add(window)}
			mu.Unlock()
			c.Header("X-RateLimit-Remaining", strconv.Itoa(maxRequests-1))
			c.Next()
			return
		}
		if e.count >= maxRequests {
			mu.Unlock()
			c.Header("X-RateLimit-Remaining", "0")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "too many requests",
			})
			c.Abort()
			return
		}
		e.count++
		remaining := maxRequests - e.count
		mu.Unlock()
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Next()
	}
}
