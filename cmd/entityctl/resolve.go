package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/go-action-resolver/internal/adapters/persistence/sqlstore"
	"github.com/jsamuelsen11/go-action-resolver/internal/app/resolver"
	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
)

func newResolveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <domain> <tag> <identifier>",
		Short: "Resolve an identifier to the entity configured for (domain, tag)",
		Long: `Looks up the entity type configured for the tag in the domain, then loads the
entity by hashed identifier, falling back to the primary key.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *runtime) error {
				res, err := invoke[*resolver.ConfiguredResolver](rt)
				if err != nil {
					return err
				}
				store, err := invoke[*sqlstore.Store](rt)
				if err != nil {
					return err
				}

				t, err := res.EntityType(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				e, err := res.Resolve(ctx, args[0], args[1], args[2])
				if err != nil {
					return err
				}
				return printEntity(cmd.OutOrStdout(), store, t, e)
			})
		},
	}
}

func newResolveKeyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve-key <domain> <tag> <identifier>",
		Short: "Print the primary key an identifier maps to, without loading the entity",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *runtime) error {
				res, err := invoke[*resolver.ConfiguredResolver](rt)
				if err != nil {
					return err
				}

				key, err := res.ResolveKey(ctx, args[0], args[1], args[2])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), key)
				return err
			})
		},
	}
}

// entityView is the JSON shape printed for an entity.
type entityView struct {
	Type       string         `json:"type"`
	Key        any            `json:"key"`
	Hash       string         `json:"hash,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

func printEntity(w io.Writer, store *sqlstore.Store, t domain.EntityType, e domain.Entity) error {
	view := entityView{Type: e.EntityType(), Key: e.PrimaryKey()}
	if t.Hashable {
		hash, err := store.Hash(t, e)
		if err != nil {
			return fmt.Errorf("hashing %s key: %w", t.Name, err)
		}
		view.Hash = hash
	}
	if rec, ok := e.(*domain.Record); ok {
		view.Attributes = rec.Attributes
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}
