package normalize

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Registry maps provider ids to their normalizers and falls back to a
// generic normalizer for unknown ids.
type Registry struct {
	normalizers map[string]Normalizer
	fallback    Normalizer
	logger      *zap.Logger
}

// NewRegistry creates an empty Registry using fallback for unknown providers.
func NewRegistry(fallback Normalizer, logger *zap.Logger) *Registry {
	return &Registry{
		normalizers: make(map[string]Normalizer),
		fallback:    fallback,
		logger:      logger,
	}
}

// NewDefaultRegistry returns a Registry with the three known providers and
// the generic fallback.
func NewDefaultRegistry(logger *zap.Logger) *Registry {
	r := NewRegistry(NewGenericNormalizer(logger), logger)
	// Built-in ids are distinct; errors are impossible here.
	_ = r.Register(NewProvider1Normalizer(logger))
	_ = r.Register(NewProvider2Normalizer(logger))
	_ = r.Register(NewProvider3Normalizer(logger))
	return r
}

// Register adds a normalizer under its ProviderID.
func (r *Registry) Register(n Normalizer) error {
	if n == nil {
		return errors.New("normalizer cannot be nil")
	}
	id := n.ProviderID()
	if id == "" {
		return errors.New("normalizer provider id cannot be empty")
	}
	if _, exists := r.normalizers[id]; exists {
		return fmt.Errorf("normalizer for provider %s already registered", id)
	}
	r.normalizers[id] = n
	return nil
}

// Has reports whether providerID has a dedicated normalizer.
func (r *Registry) Has(providerID string) bool {
	_, ok := r.normalizers[providerID]
	return ok
}

// ProviderIDs returns the registered ids, sorted.
func (r *Registry) ProviderIDs() []string {
	ids := make([]string, 0, len(r.normalizers))
	for id := range r.normalizers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Normalize translates raw into canonical products for providerID.
// It never fails: an unusable payload, or a panic inside a normalizer, is
// logged as a warning and yields an empty slice.
func (r *Registry) Normalize(providerID string, raw []byte) (products []CanonicalProduct) {
	l := r.logger.With(zap.String("provider", providerID))

	defer func() {
		if rec := recover(); rec != nil {
			l.Warn("Normalizer panicked", zap.Any("panic", rec))
			products = []CanonicalProduct{}
		}
	}()

	n, ok := r.normalizers[providerID]
	if !ok {
		n = r.fallback
	}
	if n == nil {
		l.Warn("No normalizer available")
		return []CanonicalProduct{}
	}

	out, err := n.Normalize(raw)
	if err != nil {
		l.Warn("Payload could not be normalized", zap.Error(err))
		return []CanonicalProduct{}
	}
	if out == nil {
		return []CanonicalProduct{}
	}
	return out
}
