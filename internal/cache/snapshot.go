package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/swoop-build/swoop-backend/internal/projects/domain"
)

const projectKeyPrefix = "swoop:project:" // swoop:project:{account_id}:{project_id}

// SnapshotCache keeps the latest authoritative project snapshot in redis.
// A stale or missing entry is never an error; the database remains the
// source of truth and every mutation overwrites the entry.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration, log *logrus.Logger) *SnapshotCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SnapshotCache{client: client, ttl: ttl, log: log}
}

// key scopes entries by account so a snapshot is only ever served back
// to the tenant that owns the project.
func (c *SnapshotCache) key(accountID, projectID string) string {
	return projectKeyPrefix + accountID + ":" + projectID
}

// Get returns the cached snapshot, or (nil, false) on miss or trouble.
func (c *SnapshotCache) Get(ctx context.Context, accountID, projectID string) (*domain.Project, bool) {
	data, err := c.client.Get(ctx, c.key(accountID, projectID)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.WithError(err).Warn("snapshot cache read failed")
		return nil, false
	}

	var p domain.Project
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		c.log.WithError(err).Warn("snapshot cache entry corrupt, dropping")
		c.client.Del(ctx, c.key(accountID, projectID))
		return nil, false
	}
	return &p, true
}

// Set stores the snapshot with the configured TTL.
func (c *SnapshotCache) Set(ctx context.Context, accountID string, p *domain.Project) {
	data, err := json.Marshal(p)
	if err != nil {
		c.log.WithError(err).Warn("snapshot cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, c.key(accountID, p.ID), data, c.ttl).Err(); err != nil {
		c.log.WithError(err).Warn("snapshot cache write failed")
	}
}

// Delete drops the snapshot, used when a project is removed.
func (c *SnapshotCache) Delete(ctx context.Context, accountID, projectID string) {
	if err := c.client.Del(ctx, c.key(accountID, projectID)).Err(); err != nil {
		c.log.WithError(err).Warn("snapshot cache delete failed")
	}
}
