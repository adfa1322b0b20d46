// Package redisbus forwards application status changes to a Redis channel for out-of-process consumers.
package redisbus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Abhi1565/JobHunt-backend/internal/domain/events"
	"github.com/Abhi1565/JobHunt-backend/internal/logger"
	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const publishTimeout = 5 * time.Second

type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// NewClient parses url and verifies the connection.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "invalid redis url")
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "redis ping failed")
	}
	return client, nil
}

type Forwarder struct {
	bus     EventBus.Bus
	client  publisher
	channel string
}

func NewForwarder(bus EventBus.Bus, client publisher, channel string) *Forwarder {
	return &Forwarder{bus: bus, client: client, channel: channel}
}

func (f *Forwarder) Start() error {
	return f.bus.SubscribeAsync(events.ApplicationStatusChangedTopic, f.forward, false)
}

// Stop waits for in-flight publishes.
func (f *Forwarder) Stop() {
	_ = f.bus.Unsubscribe(events.ApplicationStatusChangedTopic, f.forward)
	f.bus.WaitAsync()
}

func (f *Forwarder) forward(event events.ApplicationStatusChanged) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := f.Publish(ctx, event); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeRedis).
			Errorf("failed to forward status change of application %s: %v", event.ApplicationID, err)
	}
}

func (f *Forwarder) Publish(ctx context.Context, event events.ApplicationStatusChanged) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "error encoding status change")
	}
	return f.client.Publish(ctx, f.channel, payload).Err()
}
