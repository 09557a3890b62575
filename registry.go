package registry

import (
	"context"
	"log/slog"
	"time"

	"github.com/lesichkovm/registryjs/internal/telemetry/metric"
	"github.com/lesichkovm/registryjs/pkg/codec"
	"github.com/lesichkovm/registryjs/pkg/namespace"
	"github.com/lesichkovm/registryjs/pkg/obfuscate"
)

// Registry is a namespaced view over a substrate. The namespace is derived
// once at construction and fixed for the instance's lifetime.
//
// All operations are synchronous calls against the substrate; there are no
// background tasks. Get has a deliberate side effect: reading an expired
// entry removes it (lazy expiry).
type Registry struct {
	namespace string
	store     *valueStore
	logger    *slog.Logger
}

// Option customizes Registry construction.
type Option func(*Registry, *settings)

type settings struct {
	origin namespace.OriginFunc
	now    func() time.Time
}

// WithSubstrate supplies the storage collaborator. A substrate is
// required; New fails with ErrSubstrateUnavailable without one.
func WithSubstrate(sub Substrate) Option {
	return func(r *Registry, _ *settings) {
		r.store.sub = sub
	}
}

// WithLogger supplies a structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry, _ *settings) {
		if logger != nil {
			r.logger = logger
			r.store.logger = logger
		}
	}
}

// WithMetrics enables operation counters. Defaults to none.
func WithMetrics(set *metric.Set) Option {
	return func(r *Registry, _ *settings) {
		r.store.metrics = set
	}
}

// WithOrigin supplies the origin collaborator consulted when no explicit
// label is given. Defaults to no origin, which derives the "unknown"
// namespace.
func WithOrigin(origin namespace.OriginFunc) Option {
	return func(_ *Registry, s *settings) {
		s.origin = origin
	}
}

// WithClock overrides the time source used for expiration bookkeeping.
// Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Registry, _ *settings) {
		if now != nil {
			r.store.now = now
		}
	}
}

// New creates a Registry bound to the namespace derived from label (or
// from the origin collaborator when label is empty).
func New(label string, opts ...Option) (*Registry, error) {
	r := &Registry{
		logger: slog.Default(),
		store: &valueStore{
			logger: slog.Default(),
			now:    time.Now,
		},
	}
	s := &settings{}

	for _, opt := range opts {
		opt(r, s)
	}

	if r.store.sub == nil {
		return nil, ErrSubstrateUnavailable
	}

	r.namespace = namespace.Derive(label, s.origin)
	return r, nil
}

// Namespace returns the derived namespace token.
func (r *Registry) Namespace() string {
	return r.namespace
}

// Set stores a value under a logical key, obfuscated with that same key.
// A positive ttl arms expiration; a zero ttl stores the value without one.
//
// Because the obfuscation key is the logical key, a payload written under
// one key cannot be read back under another.
func (r *Registry) Set(ctx context.Context, key string, value codec.Value, ttl time.Duration) error {
	if key == "" {
		return ErrInvalidKey
	}

	payload, err := obfuscate.Encode(value, key)
	if err != nil {
		return err
	}
	return r.store.setValue(ctx, NamespacedKey(key, r.namespace), payload, ttl)
}

// Get returns the value stored under a logical key, or null when the key
// is absent, expired, or holds data that no longer decodes. The three
// cases are deliberately indistinguishable; Get only fails for an invalid
// key.
//
// Reading an expired entry removes it and its expiration companion.
func (r *Registry) Get(ctx context.Context, key string) (codec.Value, error) {
	if key == "" {
		return codec.Null(), ErrInvalidKey
	}

	payload, ok := r.store.getValue(ctx, NamespacedKey(key, r.namespace))
	if !ok {
		return codec.Null(), nil
	}

	value, err := obfuscate.Decode(payload, key)
	if err != nil {
		r.store.metrics.IncDecodeFailures()
		r.logger.Warn("stored payload failed to decode", "key", key, "error", err)
		return codec.Null(), nil
	}
	return value, nil
}

// Has reports whether a live value exists under the logical key, with the
// same lazy-expiry semantics as Get.
func (r *Registry) Has(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrInvalidKey
	}

	_, ok := r.store.getValue(ctx, NamespacedKey(key, r.namespace))
	return ok, nil
}

// Remove deletes the value under the logical key along with its
// expiration companion. Removing an absent key is a no-op.
func (r *Registry) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	return r.store.removeValue(ctx, NamespacedKey(key, r.namespace))
}

// Keys lists the logical keys currently stored under this namespace.
func (r *Registry) Keys(ctx context.Context) ([]string, error) {
	return r.store.keysInNamespace(ctx, r.namespace)
}

// Empty removes every substrate entry under this namespace. The match is
// by substring containment of the namespace token; see the package
// documentation for the sharp edge this implies.
func (r *Registry) Empty(ctx context.Context) error {
	return r.store.emptyNamespace(ctx, r.namespace)
}
