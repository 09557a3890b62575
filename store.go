package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/lesichkovm/registryjs/internal/telemetry/metric"
	"github.com/lesichkovm/registryjs/pkg/codec"
)

// valueStore manages value lifecycle against the substrate: writes with
// optional expiration bookkeeping, reads with lazy expiry, removals and
// namespace-wide clears.
//
// The substrate is injected so tests can substitute an in-memory fake, and
// the clock is injected so expiry tests need no real waiting.
type valueStore struct {
	sub     Substrate
	logger  *slog.Logger
	metrics *metric.Set
	now     func() time.Time
}

// isExpired reports whether the expiration companion of a namespaced key
// holds a timestamp at or before the current time. An absent companion
// means the value never expires. A companion that does not parse as a
// number is treated as "no expiry", matching how the stored format has
// always behaved, and is logged as a warning.
func (s *valueStore) isExpired(ctx context.Context, namespacedKey string) bool {
	raw, err := s.sub.Get(ctx, ExpirationKey(namespacedKey))
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			s.logger.Warn("expiration read failed", "key", namespacedKey, "error", err)
		}
		return false
	}

	expiry, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		s.logger.Warn("non-numeric expiration entry", "key", namespacedKey, "value", raw)
		return false
	}
	return expiry <= float64(s.now().Unix())
}

// setValue writes the value entry unconditionally and, for a positive ttl,
// the expiration companion holding the absolute expiry in unix seconds.
// A zero ttl writes no companion: the value persists indefinitely.
//
// The payload is stored JSON-string-encoded so the substrate always holds
// well-formed JSON text.
func (s *valueStore) setValue(ctx context.Context, namespacedKey, payload string, ttl time.Duration) error {
	serialized := codec.EncodeJSON(codec.String(payload))
	if err := s.sub.Set(ctx, namespacedKey, serialized); err != nil {
		return fmt.Errorf("registry: write value: %w", err)
	}

	if ttl > 0 {
		expiry := s.now().Add(ttl).Unix()
		if err := s.sub.Set(ctx, ExpirationKey(namespacedKey), strconv.FormatInt(expiry, 10)); err != nil {
			return fmt.Errorf("registry: write expiration: %w", err)
		}
	}

	s.metrics.IncSets()
	return nil
}

// getValue reads the payload stored under a namespaced key. An expired
// entry is removed on the spot and reported as a miss; so is a missing or
// undecodable entry. getValue never fails: every degraded case collapses
// to a miss, by design, so callers cannot distinguish missing from corrupt
// from expired.
func (s *valueStore) getValue(ctx context.Context, namespacedKey string) (string, bool) {
	s.metrics.IncGets()

	if s.isExpired(ctx, namespacedKey) {
		s.metrics.IncExpirations()
		if err := s.removeValue(ctx, namespacedKey); err != nil {
			s.logger.Warn("lazy expiry removal failed", "key", namespacedKey, "error", err)
		}
		return "", false
	}

	raw, err := s.sub.Get(ctx, namespacedKey)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			s.logger.Warn("value read failed", "key", namespacedKey, "error", err)
		}
		return "", false
	}

	v, err := codec.DecodeJSON(raw)
	if err != nil {
		s.metrics.IncDecodeFailures()
		s.logger.Warn("stored value is not valid json", "key", namespacedKey, "error", err)
		return "", false
	}
	if v.Kind() != codec.KindString {
		s.metrics.IncDecodeFailures()
		s.logger.Warn("stored value has unexpected shape", "key", namespacedKey, "kind", v.Kind().String())
		return "", false
	}
	return v.StringVal(), true
}

// removeValue deletes the value entry and its expiration companion.
// Removing entries that do not exist is a no-op.
func (s *valueStore) removeValue(ctx context.Context, namespacedKey string) error {
	if err := s.sub.Remove(ctx, namespacedKey); err != nil {
		return fmt.Errorf("registry: remove value: %w", err)
	}
	if err := s.sub.Remove(ctx, ExpirationKey(namespacedKey)); err != nil {
		return fmt.Errorf("registry: remove expiration: %w", err)
	}
	s.metrics.IncRemoves()
	return nil
}

// emptyNamespace deletes every substrate entry whose key contains the
// namespace token as a substring. Expiration companions contain the same
// namespaced key, so they are swept up by the same match.
//
// Substring containment (rather than suffix anchoring) is kept for
// compatibility with existing stored data. If one namespace token is a
// substring of another, a clear of the shorter one also removes the
// longer one's entries; callers that need strict isolation should use
// labels of equal length or distinct prefixes.
func (s *valueStore) emptyNamespace(ctx context.Context, namespaceToken string) error {
	keys, err := s.sub.Keys(ctx)
	if err != nil {
		return fmt.Errorf("registry: enumerate keys: %w", err)
	}

	for _, k := range keys {
		if !strings.Contains(k, namespaceToken) {
			continue
		}
		if err := s.sub.Remove(ctx, k); err != nil {
			return fmt.Errorf("registry: clear %q: %w", k, err)
		}
	}

	s.metrics.IncClears()
	return nil
}

// keysInNamespace returns the logical keys of live value entries under a
// namespace token: keys ending in the token, with the token stripped.
// Expiration companions end in the expiration suffix instead and are
// naturally excluded.
func (s *valueStore) keysInNamespace(ctx context.Context, namespaceToken string) ([]string, error) {
	keys, err := s.sub.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("registry: enumerate keys: %w", err)
	}

	logical := make([]string, 0, len(keys))
	for _, k := range keys {
		if !strings.HasSuffix(k, namespaceToken) {
			continue
		}
		logical = append(logical, strings.TrimSuffix(k, namespaceToken))
	}
	return logical, nil
}
