package main

import (
	"fmt"
	"slices"

	"github.com/jsamuelsen11/go-action-resolver/internal/adapters/persistence/sqlstore"
	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
)

// catalogEntry is an entity type shipped with entityctl together with the
// rules its create input must satisfy and its table definition.
type catalogEntry struct {
	Type  domain.EntityType
	Rules domain.RuleSet

	// Columns is the column list after the primary key, in CREATE TABLE
	// syntax shared by SQLite and Postgres.
	Columns string
}

var catalog = []catalogEntry{
	{
		Type: domain.EntityType{
			Name:     "customer",
			Table:    "customers",
			Hashable: true,
			Fillable: []string{"name", "email"},
		},
		Rules: domain.RuleSet{
			"name":  "required,max=120",
			"email": "required,email",
		},
		Columns: "name TEXT NOT NULL, email TEXT NOT NULL",
	},
	{
		Type: domain.EntityType{
			Name:     "invoice",
			Table:    "invoices",
			Hashable: true,
			Fillable: []string{"customer_id", "amount", "currency", "status"},
		},
		Rules: domain.RuleSet{
			"customer_id": "required,numeric",
			"amount":      "required,numeric",
			"currency":    "required,len=3,alpha",
			"status":      "omitempty,oneof=draft issued paid",
		},
		Columns: "customer_id BIGINT NOT NULL, amount BIGINT NOT NULL, currency TEXT NOT NULL, status TEXT NOT NULL DEFAULT 'draft'",
	},
	{
		Type: domain.EntityType{
			Name:     "user",
			Table:    "users",
			Hashable: true,
			Fillable: []string{"name", "email", "role"},
		},
		Rules: domain.RuleSet{
			"name":  "required,max=120",
			"email": "required,email",
			"role":  "omitempty,oneof=admin member",
		},
		Columns: "name TEXT NOT NULL, email TEXT NOT NULL, role TEXT NOT NULL DEFAULT 'member'",
	},
}

func catalogTypes() []domain.EntityType {
	types := make([]domain.EntityType, 0, len(catalog))
	for _, e := range catalog {
		types = append(types, e.Type)
	}
	return types
}

func catalogEntryFor(name string) (catalogEntry, error) {
	i := slices.IndexFunc(catalog, func(e catalogEntry) bool { return e.Type.Name == name })
	if i < 0 {
		return catalogEntry{}, fmt.Errorf("%w: unknown entity type %q", domain.ErrConfiguration, name)
	}
	return catalog[i], nil
}

// createTableStatements returns the DDL for every catalog table in the
// driver's dialect.
func createTableStatements(driver string) []string {
	pk := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if driver == sqlstore.DriverPgx {
		pk = "id BIGSERIAL PRIMARY KEY"
	}

	stmts := make([]string, 0, len(catalog))
	for _, e := range catalog {
		stmts = append(stmts, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s, %s)", e.Type.TableName(), pk, e.Columns))
	}
	return stmts
}
