// internal/infrastructure/database/redis/store.go
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/infrastructure/kv"
)

// changeMessage is published on the change channel after every write
type changeMessage struct {
	Origin string `json:"origin"`
	kv.ChangeEvent
}

// Store is a kv.Store over Redis. Each Store is one session context; writes
// are announced on a pub/sub channel so other session contexts sharing the
// same Redis receive change notifications.
type Store struct {
	client    *redis.Client
	namespace string
	channel   string
	origin    string
	hub       *kv.Hub
	pubsub    *redis.PubSub
	done      chan struct{}
	logger    *logrus.Logger
}

// NewStore subscribes to the change channel and starts the listener.
// The subscription is confirmed before NewStore returns.
func NewStore(ctx context.Context, client *redis.Client, namespace, channel string, logger *logrus.Logger) (*Store, error) {
	s := &Store{
		client:    client,
		namespace: namespace,
		channel:   channel,
		origin:    kv.NewOrigin(),
		hub:       kv.NewHub(),
		done:      make(chan struct{}),
		logger:    logger,
	}

	s.pubsub = client.Subscribe(ctx, s.channelName())
	if _, err := s.pubsub.Receive(ctx); err != nil {
		_ = s.pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to storage changes: %w", err)
	}

	go s.listen()

	return s, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	payload, err := s.message(kv.ChangeEvent{Key: key, NewValue: value})
	if err != nil {
		return err
	}

	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(key), value, 0)
		pipe.Publish(ctx, s.channelName(), payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	payload, err := s.message(kv.ChangeEvent{Key: key, Deleted: true})
	if err != nil {
		return err
	}

	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key(key))
		pipe.Publish(ctx, s.channelName(), payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *Store) OnChange(key string, fn func(kv.ChangeEvent)) func() {
	return s.hub.Subscribe(s.origin, key, fn)
}

// Close stops the listener. The underlying client is owned by the caller.
func (s *Store) Close() error {
	err := s.pubsub.Close()
	<-s.done
	return err
}

func (s *Store) listen() {
	defer close(s.done)

	for msg := range s.pubsub.Channel() {
		var change changeMessage
		if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
			s.logger.WithError(err).Warn("Ignoring malformed storage change message")
			continue
		}
		// the hub drops events whose origin matches the subscriber
		s.hub.Publish(change.Origin, change.ChangeEvent)
	}
}

func (s *Store) message(ev kv.ChangeEvent) (string, error) {
	data, err := json.Marshal(changeMessage{Origin: s.origin, ChangeEvent: ev})
	if err != nil {
		return "", fmt.Errorf("failed to encode change message: %w", err)
	}
	return string(data), nil
}

func (s *Store) key(key string) string {
	if s.namespace == "" {
		return key
	}
	return s.namespace + ":" + key
}

func (s *Store) channelName() string {
	if s.namespace == "" {
		return s.channel
	}
	return s.namespace + ":" + s.channel
}
