package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is a snapshot of the reachability of the server's backing
// services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	AuthCache bool      `json:"authCache"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every backing service answered the last probe.
func (h HealthStatus) Healthy() bool {
	return h.Mongo && h.AuthCache
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor probes Mongo and the auth cache once immediately and
// then every minute, updating the in-memory snapshot served by /health.
func StartHealthMonitor(authCache *redis.Client, mongoClient *mongo.Client) {
	probe := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		status := HealthStatus{
			Mongo:     mongoClient.Ping(ctx, nil) == nil,
			AuthCache: authCache.Ping(ctx).Err() == nil,
			CheckedAt: time.Now(),
		}

		healthMu.Lock()
		currentHealth = status
		healthMu.Unlock()
	}

	go func() {
		probe()
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			probe()
		}
	}()
}
