package ports

import "context"

// ResolverConfigSource loads the resolver mapping for one config domain.
// Implemented by the file, Redis and static config source adapters.
type ResolverConfigSource interface {
	// LoadDomain returns the tag -> entity type name mapping for domain.
	// An unknown domain yields an empty map, not an error; errors are
	// reserved for source failures.
	LoadDomain(ctx context.Context, domain string) (map[string]string, error)
}
