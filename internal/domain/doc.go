// Package domain contains the types shared by the resolver, the validation
// gate and the action lifecycle: entity type descriptors, the Key union,
// validated field sets and the error taxonomy.
//
// This package has no dependencies on adapters or the application layer.
// Ports that consume these types live in internal/ports.
package domain
