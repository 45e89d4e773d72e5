package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"clinic-booking-service/internal/domain/entity"
	"clinic-booking-service/pkg/clock"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// RedisAvailabilityKeyPrefix namespaces cached free-slot lists.
	RedisAvailabilityKeyPrefix = "availability:"

	// RedisAvailabilityGenerationPrefix namespaces the invalidation counters.
	RedisAvailabilityGenerationPrefix = "availability_gen:"

	// Counters only need to outlive a single in-flight read.
	generationTTL = 24 * time.Hour
)

// setIfGenerationScript writes the slot list only when the invalidation
// counter still holds the value read before the database query.
// KEYS[1] = entry key, KEYS[2] = generation key
// ARGV[1] = expected generation, ARGV[2] = payload, ARGV[3] = TTL in ms
// Returns 1 when stored, 0 when an invalidation happened in between.
var setIfGenerationScript = redis.NewScript(`
	local current = redis.call('GET', KEYS[2]) or '0'
	if current ~= ARGV[1] then
		return 0
	end
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
	return 1
`)

// AvailabilityCache stores resolved free-slot lists per (doctor, date).
// Entries are advisory; the booking path never trusts them.
type AvailabilityCache interface {
	Get(ctx context.Context, doctorID uuid.UUID, date entity.Date) ([]string, bool, error)
	// Generation returns the invalidation counter for the doctor-day. Read it
	// before querying the database and hand it back to Set.
	Generation(ctx context.Context, doctorID uuid.UUID, date entity.Date) (int64, error)
	// Set stores slots unless Invalidate ran after generation was read.
	Set(ctx context.Context, doctorID uuid.UUID, date entity.Date, generation int64, slots []string) error
	Invalidate(ctx context.Context, doctorID uuid.UUID, date entity.Date) error
}

type redisAvailabilityCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
	clock       clock.Clock
	ttl         time.Duration
	loc         *time.Location
}

func NewRedisAvailabilityCache(redisClient *redis.Client, log *logrus.Logger, clk clock.Clock, ttl time.Duration, loc *time.Location) AvailabilityCache {
	return &redisAvailabilityCache{
		redisClient: redisClient,
		log:         log,
		clock:       clk,
		ttl:         ttl,
		loc:         loc,
	}
}

// AvailabilityKey returns the Redis key for a (doctor, date) slot list.
func AvailabilityKey(doctorID uuid.UUID, date entity.Date) string {
	return fmt.Sprintf("%s%s:%s", RedisAvailabilityKeyPrefix, doctorID, date)
}

// AvailabilityGenerationKey returns the Redis key of the invalidation counter.
func AvailabilityGenerationKey(doctorID uuid.UUID, date entity.Date) string {
	return fmt.Sprintf("%s%s:%s", RedisAvailabilityGenerationPrefix, doctorID, date)
}

func (c *redisAvailabilityCache) Get(ctx context.Context, doctorID uuid.UUID, date entity.Date) ([]string, bool, error) {
	raw, err := c.redisClient.Get(ctx, AvailabilityKey(doctorID, date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get availability for doctor %s on %s: %w", doctorID, date, err)
	}

	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		// A corrupt entry is treated as a miss and overwritten on the next Set.
		c.log.Warnf("Discarding unreadable availability entry for doctor %s on %s: %+v", doctorID, date, err)
		return nil, false, nil
	}
	return slots, true, nil
}

func (c *redisAvailabilityCache) Generation(ctx context.Context, doctorID uuid.UUID, date entity.Date) (int64, error) {
	generation, err := c.redisClient.Get(ctx, AvailabilityGenerationKey(doctorID, date)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("get availability generation for doctor %s on %s: %w", doctorID, date, err)
	}
	return generation, nil
}

func (c *redisAvailabilityCache) Set(ctx context.Context, doctorID uuid.UUID, date entity.Date, generation int64, slots []string) error {
	if slots == nil {
		slots = []string{}
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return err
	}

	ttl := c.entryTTL(date)
	ttlMillis := ttl.Milliseconds()
	if ttlMillis < 1 {
		ttlMillis = 1
	}

	stored, err := setIfGenerationScript.Run(ctx, c.redisClient,
		[]string{AvailabilityKey(doctorID, date), AvailabilityGenerationKey(doctorID, date)},
		strconv.FormatInt(generation, 10), raw, ttlMillis,
	).Int()
	if err != nil {
		return fmt.Errorf("set availability for doctor %s on %s: %w", doctorID, date, err)
	}
	if stored == 0 {
		c.log.Debugf("Skipped caching availability for doctor %s on %s: invalidated during read", doctorID, date)
		return nil
	}
	c.log.Debugf("Cached availability for doctor %s on %s: %d slots, TTL=%v", doctorID, date, len(slots), ttl)
	return nil
}

// Invalidate drops the entry and bumps the generation so that reads already
// in flight cannot put their result back.
func (c *redisAvailabilityCache) Invalidate(ctx context.Context, doctorID uuid.UUID, date entity.Date) error {
	generationKey := AvailabilityGenerationKey(doctorID, date)

	_, err := c.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Expire(ctx, generationKey, generationTTL)
		pipe.Del(ctx, AvailabilityKey(doctorID, date))
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate availability for doctor %s on %s: %w", doctorID, date, err)
	}
	return nil
}

func (c *redisAvailabilityCache) entryTTL(date entity.Date) time.Duration {
	return EntryTTL(c.ttl, date, c.loc, c.clock.Now())
}

// EntryTTL caps the configured TTL at the end of the cached date so an entry
// never outlives the day it describes.
func EntryTTL(configured time.Duration, date entity.Date, loc *time.Location, now time.Time) time.Duration {
	untilEnd := date.EndIn(loc).Sub(now)
	if untilEnd > 0 && untilEnd < configured {
		return untilEnd
	}
	return configured
}
