// Package ports defines interfaces between layers in the hexagonal architecture.
// The application layer (resolver, validation gate, action executor) depends
// only on these ports; adapters under internal/adapters implement them.
package ports
