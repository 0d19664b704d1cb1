// Package redis mirrors signaling-room membership into Redis so that room
// occupancy is observable across gateway instances. The mirror is
// best-effort: the in-process registry stays authoritative and Redis
// failures are logged, not propagated.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/wardpulse/realtime-gateway/config"
)

const peerSetTTL = 24 * time.Hour

// Mirror wraps a Redis client for signaling-room bookkeeping. A nil Mirror
// is valid and skips every operation.
type Mirror struct {
	client *redis.Client
}

// Connect initializes the Redis client and verifies the connection.
func Connect(ctx context.Context, cfg config.RedisConfig) (*Mirror, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &Mirror{client: client}, nil
}

// Close closes the Redis connection.
func (m *Mirror) Close() error {
	if m == nil || m.client == nil {
		return nil
	}
	return m.client.Close()
}

// AddPeer records connID as a member of the signaling room.
func (m *Mirror) AddPeer(ctx context.Context, roomID, connID string) {
	if m == nil || m.client == nil {
		return
	}
	key := "room:" + roomID + ":peers"
	if err := m.client.SAdd(ctx, key, connID).Err(); err != nil {
		log.WithFields(log.Fields{"room": roomID, "error": err}).Warn("redis peer add failed")
		return
	}
	m.client.Expire(ctx, key, peerSetTTL)
}

// RemovePeer removes connID from the signaling room's peer set.
func (m *Mirror) RemovePeer(ctx context.Context, roomID, connID string) {
	if m == nil || m.client == nil {
		return
	}
	key := "room:" + roomID + ":peers"
	if err := m.client.SRem(ctx, key, connID).Err(); err != nil {
		log.WithFields(log.Fields{"room": roomID, "error": err}).Warn("redis peer remove failed")
	}
}

// DropRoom deletes the peer set once the last member has left.
func (m *Mirror) DropRoom(ctx context.Context, roomID string) {
	if m == nil || m.client == nil {
		return
	}
	if err := m.client.Del(ctx, "room:"+roomID+":peers").Err(); err != nil {
		log.WithFields(log.Fields{"room": roomID, "error": err}).Warn("redis room drop failed")
	}
}
