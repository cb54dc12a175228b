package presets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sternrassler/wallhaven-client/pkg/query"
)

var (
	// ErrPresetNotFound indicates no preset is stored under the requested name
	ErrPresetNotFound = errors.New("preset not found")

	// ErrInvalidPreset indicates the stored preset is corrupted
	ErrInvalidPreset = errors.New("invalid preset")
)

const scanBatch = 100

// Preset is a saved search.
type Preset struct {
	Name      string      `json:"name"`
	State     query.State `json:"state"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Builder restores the saved search.
func (p *Preset) Builder() (*query.Builder, error) {
	b, err := query.FromState(p.State)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidPreset, p.Name, err)
	}
	return b, nil
}

// Store handles preset persistence with a Redis backend.
type Store struct {
	redis  *redis.Client
	prefix string
	now    func() time.Time
}

// NewStore creates a preset store. An empty prefix selects DefaultPrefix.
func NewStore(redisClient *redis.Client, prefix string) *Store {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{
		redis:  redisClient,
		prefix: prefix,
		now:    time.Now,
	}
}

func (s *Store) key(name string) (Key, error) {
	normalized, err := NormalizeName(name)
	if err != nil {
		return Key{}, err
	}
	return Key{Prefix: s.prefix, Name: normalized}, nil
}

// Save stores the builder's state under name, replacing any preset with the
// same normalized name. CreatedAt survives replacement.
func (s *Store) Save(ctx context.Context, name string, b *query.Builder) (*Preset, error) {
	if b == nil {
		return nil, fmt.Errorf("query builder cannot be nil")
	}

	key, err := s.key(name)
	if err != nil {
		return nil, err
	}
	PresetOperations.WithLabelValues("save").Inc()

	now := s.now().UTC()
	preset := &Preset{
		Name:      key.Name,
		State:     b.State(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	existing, err := s.redis.Get(ctx, key.String()).Bytes()
	switch {
	case err == nil:
		var previous Preset
		if json.Unmarshal(existing, &previous) == nil && !previous.CreatedAt.IsZero() {
			preset.CreatedAt = previous.CreatedAt
		}
	case errors.Is(err, redis.Nil):
	default:
		PresetErrors.WithLabelValues("save").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	data, err := json.Marshal(preset)
	if err != nil {
		PresetErrors.WithLabelValues("save").Inc()
		return nil, fmt.Errorf("marshal preset: %w", err)
	}

	if err := s.redis.Set(ctx, key.String(), data, 0).Err(); err != nil {
		PresetErrors.WithLabelValues("save").Inc()
		return nil, fmt.Errorf("redis set: %w", err)
	}

	return preset, nil
}

// Get retrieves a preset by name.
// Returns ErrPresetNotFound if nothing is stored under it.
func (s *Store) Get(ctx context.Context, name string) (*Preset, error) {
	key, err := s.key(name)
	if err != nil {
		return nil, err
	}
	PresetOperations.WithLabelValues("get").Inc()

	data, err := s.redis.Get(ctx, key.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			PresetMisses.Inc()
			return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, key.Name)
		}
		PresetErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var preset Preset
	if err := json.Unmarshal(data, &preset); err != nil {
		PresetErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}

	return &preset, nil
}

// List returns the names of all stored presets in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	PresetOperations.WithLabelValues("list").Inc()

	pattern := Key{Prefix: s.prefix}.pattern()
	names := []string{}

	iter := s.redis.Scan(ctx, 0, pattern+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), pattern))
	}
	if err := iter.Err(); err != nil {
		PresetErrors.WithLabelValues("list").Inc()
		return nil, fmt.Errorf("redis scan: %w", err)
	}

	// SCAN may return a key more than once
	sort.Strings(names)
	unique := names[:0]
	for i, name := range names {
		if i == 0 || name != names[i-1] {
			unique = append(unique, name)
		}
	}

	return unique, nil
}

// Delete removes a preset.
// Returns ErrPresetNotFound if nothing is stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	key, err := s.key(name)
	if err != nil {
		return err
	}
	PresetOperations.WithLabelValues("delete").Inc()

	removed, err := s.redis.Del(ctx, key.String()).Result()
	if err != nil {
		PresetErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	if removed == 0 {
		PresetMisses.Inc()
		return fmt.Errorf("%w: %s", ErrPresetNotFound, key.Name)
	}

	return nil
}
