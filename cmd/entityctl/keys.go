package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/go-action-resolver/internal/adapters/hashid"
	"github.com/jsamuelsen11/go-action-resolver/internal/app/resolver"
	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
)

func newEncodeKeyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "encode-key <type> <id>",
		Short: "Encode a primary key as the hashed identifier of an entity type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("%w: id must be an integer, got %q", domain.ErrValidation, args[1])
			}

			return withRuntime(cmd, opts, func(_ context.Context, rt *runtime) error {
				t, err := hashableType(rt, args[0])
				if err != nil {
					return err
				}
				codec, err := invoke[*hashid.Codec](rt)
				if err != nil {
					return err
				}
				token, err := codec.Encode(t, id)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
				return err
			})
		},
	}
}

func newDecodeKeyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode-key <type> <token>",
		Short: "Decode a hashed identifier to the primary key of an entity type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(_ context.Context, rt *runtime) error {
				t, err := hashableType(rt, args[0])
				if err != nil {
					return err
				}
				codec, err := invoke[*hashid.Codec](rt)
				if err != nil {
					return err
				}
				id, err := codec.Decode(t, args[1])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
				return err
			})
		},
	}
}

func hashableType(rt *runtime, name string) (domain.EntityType, error) {
	registry, err := invoke[*resolver.Registry](rt)
	if err != nil {
		return domain.EntityType{}, err
	}
	t, ok := registry.Lookup(name)
	if !ok {
		return domain.EntityType{}, fmt.Errorf("%w: unknown entity type %q", domain.ErrConfiguration, name)
	}
	if !t.Hashable {
		return domain.EntityType{}, fmt.Errorf("%w: entity type %q is not hashable", domain.ErrConfiguration, name)
	}
	return t, nil
}
