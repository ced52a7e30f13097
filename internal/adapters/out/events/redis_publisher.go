// Package events delivers courier assignment notifications over Redis Pub/Sub.
//
// Every courier listens on its own channel, "<prefix>:<courier id>". A message is the JSON
// encoding of AssignmentMessage.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultChannelPrefix  = "courier"
	DefaultPublishTimeout = 2 * time.Second
)

var ErrRedisClientIsRequired = errs.NewValueIsRequiredError("redis client")

// AssignmentMessage is the wire form of ports.CourierAssignment.
type AssignmentMessage struct {
	DispatchID string         `json:"dispatchId"`
	CourierID  string         `json:"courierId"`
	Batches    []BatchMessage `json:"batches"`
}

type BatchMessage struct {
	ID          string           `json:"id"`
	Rule        string           `json:"rule"`
	OrderIDs    []string         `json:"orderIds"`
	Destination *LocationMessage `json:"destination,omitempty"`
}

type LocationMessage struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RedisPublisher implements ports.AssignmentPublisher.
type RedisPublisher struct {
	rdb     *redis.Client
	prefix  string
	timeout time.Duration
}

// NewRedisClient opens a client from a redis:// URL.
func NewRedisClient(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("redis url", err)
	}

	return redis.NewClient(opt), nil
}

func NewRedisPublisher(rdb *redis.Client, prefix string) (*RedisPublisher, error) {
	if rdb == nil {
		return nil, ErrRedisClientIsRequired
	}
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}

	return &RedisPublisher{
		rdb:     rdb,
		prefix:  prefix,
		timeout: DefaultPublishTimeout,
	}, nil
}

// Publish sends the assignment on the courier's channel.
func (p *RedisPublisher) Publish(ctx context.Context, assignment ports.CourierAssignment) error {
	if err := assignment.CourierID.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(toMessage(assignment))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	channel := p.ChannelName(assignment.CourierID.String())
	if err := p.rdb.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", channel, err)
	}

	return nil
}

// ChannelName returns the channel a courier subscribes to.
func (p *RedisPublisher) ChannelName(courierID string) string {
	return p.prefix + ":" + courierID
}

// Close releases the underlying client.
func (p *RedisPublisher) Close() error {
	err := p.rdb.Close()
	if errors.Is(err, redis.ErrClosed) {
		return nil
	}
	return err
}

func toMessage(assignment ports.CourierAssignment) AssignmentMessage {
	msg := AssignmentMessage{
		DispatchID: assignment.DispatchID.String(),
		CourierID:  assignment.CourierID.String(),
		Batches:    make([]BatchMessage, 0, len(assignment.Batches)),
	}

	for _, b := range assignment.Batches {
		bm := BatchMessage{
			ID:       b.ID().String(),
			Rule:     b.Rule().String(),
			OrderIDs: make([]string, 0, b.Len()),
		}
		for _, id := range b.OrderIDs() {
			bm.OrderIDs = append(bm.OrderIDs, id.String())
		}
		if dest, ok := b.Destination(); ok {
			bm.Destination = &LocationMessage{X: dest.X(), Y: dest.Y()}
		}
		msg.Batches = append(msg.Batches, bm)
	}

	return msg
}
