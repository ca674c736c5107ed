package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"trivia-client/internal/domain"
)

// ProfileStore keeps the participant profile in Redis, for kiosk or fleet
// deployments where local disk is not durable. The profile is stored as a
// hash: HSET trivia:profile:{agentKey} userId {id} displayName {name}.
type ProfileStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewProfileStore(client *redis.Client, agentKey string, ttl time.Duration) *ProfileStore {
	return &ProfileStore{
		client: client,
		key:    "trivia:profile:" + agentKey,
		ttl:    ttl,
	}
}

func (s *ProfileStore) Load(ctx context.Context) (domain.Profile, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return domain.Profile{}, err
	}
	if len(fields) == 0 {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	return domain.Profile{
		UserID:      fields["userId"],
		DisplayName: fields["displayName"],
	}, nil
}

func (s *ProfileStore) Save(ctx context.Context, profile domain.Profile) error {
	if err := s.client.HSet(ctx, s.key,
		"userId", profile.UserID,
		"displayName", profile.DisplayName,
	).Err(); err != nil {
		return err
	}
	if s.ttl > 0 {
		return s.client.Expire(ctx, s.key, s.ttl).Err()
	}
	return nil
}

// Delete removes the saved profile.
func (s *ProfileStore) Delete(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
