package configsource

import (
	"context"
	"maps"

	"github.com/jsamuelsen11/go-action-resolver/internal/ports"
)

// Compile-time interface check.
var _ ports.ResolverConfigSource = (*Static)(nil)

// Static serves mappings held in memory, typically the resolver.domains
// section of the service configuration.
type Static struct {
	domains map[string]map[string]string
}

// NewStatic copies domains into a new static source.
func NewStatic(domains map[string]map[string]string) *Static {
	s := &Static{domains: make(map[string]map[string]string, len(domains))}
	for name, tags := range domains {
		s.domains[name] = maps.Clone(tags)
	}
	return s
}

// LoadDomain implements ports.ResolverConfigSource.
func (s *Static) LoadDomain(_ context.Context, configDomain string) (map[string]string, error) {
	tags, ok := s.domains[configDomain]
	if !ok {
		return map[string]string{}, nil
	}
	return maps.Clone(tags), nil
}
