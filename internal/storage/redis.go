package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/common"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/service"
)

// DefaultRedisKeyPrefix namespaces every key the Redis store writes.
const DefaultRedisKeyPrefix = "allocate:"

// RedisStorage keeps records in Redis. Candidates and opportunities live in
// hashes keyed by ID, the ranked match set in a list, and the run header in
// a plain key. Match replacement runs inside MULTI/EXEC.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

var _ service.Storage = (*RedisStorage)(nil)

// NewRedisStorage wraps an existing client.
func NewRedisStorage(client *redis.Client, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return &RedisStorage{client: client, prefix: prefix}
}

func (r *RedisStorage) key(name string) string {
	return r.prefix + name
}

// SaveCandidates inserts or updates candidates by ID.
func (r *RedisStorage) SaveCandidates(ctx context.Context, candidates []model.Candidate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCandidates(candidates); err != nil {
		return err
	}

	values := make(map[string]any, len(candidates))
	for _, c := range candidates {
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to encode candidate %d: %w", c.ID, err)
		}
		values[strconv.FormatInt(c.ID, 10)] = data
	}

	if err := r.client.HSet(ctx, r.key("candidates"), values).Err(); err != nil {
		return fmt.Errorf("failed to save candidates: %w", unavailable(err))
	}
	return nil
}

// GetCandidates returns every candidate ordered by ID.
func (r *RedisStorage) GetCandidates(ctx context.Context) ([]model.Candidate, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	raw, err := r.client.HGetAll(ctx, r.key("candidates")).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", unavailable(err))
	}

	candidates := make([]model.Candidate, 0, len(raw))
	for field, data := range raw {
		var c model.Candidate
		if err := json.Unmarshal([]byte(data), &c); err != nil {
			return nil, fmt.Errorf("failed to decode candidate %s: %w", field, err)
		}
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })

	if len(candidates) == 0 {
		return nil, nil
	}
	return candidates, nil
}

// SaveOpportunities inserts or updates opportunities by ID.
func (r *RedisStorage) SaveOpportunities(ctx context.Context, opportunities []model.Opportunity) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateOpportunities(opportunities); err != nil {
		return err
	}

	values := make(map[string]any, len(opportunities))
	for _, o := range opportunities {
		data, err := json.Marshal(o)
		if err != nil {
			return fmt.Errorf("failed to encode opportunity %d: %w", o.ID, err)
		}
		values[strconv.FormatInt(o.ID, 10)] = data
	}

	if err := r.client.HSet(ctx, r.key("opportunities"), values).Err(); err != nil {
		return fmt.Errorf("failed to save opportunities: %w", unavailable(err))
	}
	return nil
}

// GetOpportunities returns every opportunity ordered by ID.
func (r *RedisStorage) GetOpportunities(ctx context.Context) ([]model.Opportunity, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	raw, err := r.client.HGetAll(ctx, r.key("opportunities")).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load opportunities: %w", unavailable(err))
	}

	opportunities := make([]model.Opportunity, 0, len(raw))
	for field, data := range raw {
		var o model.Opportunity
		if err := json.Unmarshal([]byte(data), &o); err != nil {
			return nil, fmt.Errorf("failed to decode opportunity %s: %w", field, err)
		}
		opportunities = append(opportunities, o)
	}
	sort.Slice(opportunities, func(i, j int) bool { return opportunities[i].ID < opportunities[j].ID })

	if len(opportunities) == 0 {
		return nil, nil
	}
	return opportunities, nil
}

// ReplaceMatches swaps the stored match set in a single MULTI/EXEC block.
func (r *RedisStorage) ReplaceMatches(ctx context.Context, run *model.Run, matches []model.Match) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run, matches); err != nil {
		return err
	}

	header, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to encode run: %w", err)
	}

	encoded := make([]any, len(matches))
	for i, m := range matches {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to encode match %d/%d: %w", m.CandidateID, m.OpportunityID, err)
		}
		encoded[i] = data
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key("matches"), r.key("run"))
		if len(encoded) > 0 {
			pipe.RPush(ctx, r.key("matches"), encoded...)
		}
		pipe.Set(ctx, r.key("run"), header, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store matches: %w", unavailable(err))
	}
	return nil
}

// GetMatches returns the stored match set in ranked order.
func (r *RedisStorage) GetMatches(ctx context.Context) ([]model.Match, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	raw, err := r.client.LRange(ctx, r.key("matches"), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", unavailable(err))
	}

	var matches []model.Match
	for _, data := range raw {
		var m model.Match
		if err := json.Unmarshal([]byte(data), &m); err != nil {
			return nil, fmt.Errorf("failed to decode match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// GetLatestRun returns the run that produced the stored match set.
func (r *RedisStorage) GetLatestRun(ctx context.Context) (*model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	data, err := r.client.Get(ctx, r.key("run")).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("latest run: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", unavailable(err))
	}

	var run model.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to decode run: %w", err)
	}
	return &run, nil
}

// ClearMatches removes the stored match set and its run.
func (r *RedisStorage) ClearMatches(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := r.client.Del(ctx, r.key("matches"), r.key("run")).Err(); err != nil {
		return fmt.Errorf("failed to clear matches: %w", unavailable(err))
	}
	return nil
}

// CountRecords returns how many records are stored.
func (r *RedisStorage) CountRecords(ctx context.Context) (service.RecordCounts, error) {
	var counts service.RecordCounts
	if err := validateContext(ctx); err != nil {
		return counts, err
	}

	pipe := r.client.Pipeline()
	candidates := pipe.HLen(ctx, r.key("candidates"))
	opportunities := pipe.HLen(ctx, r.key("opportunities"))
	matches := pipe.LLen(ctx, r.key("matches"))
	if _, err := pipe.Exec(ctx); err != nil {
		return counts, fmt.Errorf("failed to count records: %w", unavailable(err))
	}

	counts.Candidates = int(candidates.Val())
	counts.Opportunities = int(opportunities.Val())
	counts.Matches = int(matches.Val())
	return counts, nil
}

// Migrate checks that the server is reachable. Redis needs no schema.
func (r *RedisStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", unavailable(err))
	}
	return nil
}

// Close closes the Redis connection.
func (r *RedisStorage) Close() error {
	return r.client.Close()
}

// unavailable marks connection-level failures so callers can retry them.
func unavailable(err error) error {
	return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
}
