package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/go-action-resolver/internal/adapters/configsource"
	"github.com/jsamuelsen11/go-action-resolver/internal/adapters/persistence/sqlstore"
	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
	"github.com/jsamuelsen11/go-action-resolver/internal/platform/health"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the tables of the built-in entity types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *runtime) error {
				store, err := invoke[*sqlstore.Store](rt)
				if err != nil {
					return err
				}
				for _, stmt := range createTableStatements(rt.cfg.Database.Driver) {
					if _, err := store.DB().ExecContext(ctx, stmt); err != nil {
						return fmt.Errorf("migrating: %w", err)
					}
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "created %d tables\n", len(catalog))
				return err
			})
		},
	}
}

func newPushConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "push-config <domain>",
		Short: "Copy a domain's resolver YAML file into Redis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *runtime) error {
				mapping, err := configsource.NewFile(rt.cfg.Resolver.Dir, rt.logger).LoadDomain(ctx, args[0])
				if err != nil {
					return err
				}
				if len(mapping) == 0 {
					return fmt.Errorf("%w: no resolver config for domain %q in %s", domain.ErrConfiguration, args[0], rt.cfg.Resolver.Dir)
				}

				redis, err := invoke[*configsource.Redis](rt)
				if err != nil {
					return err
				}
				if err := redis.Put(ctx, args[0], mapping); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "pushed %d tags for domain %s\n", len(mapping), args[0])
				return err
			})
		},
	}
}

func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the database and resolver config backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *runtime) error {
				registry, err := invoke[*health.Registry](rt)
				if err != nil {
					return err
				}

				statuses := registry.Report(ctx)
				for _, st := range statuses {
					status := "ok"
					if st.Err != nil {
						status = st.Err.Error()
					}
					if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", st.Name, status); err != nil {
						return err
					}
				}
				return health.Healthy(statuses)
			})
		},
	}
}
