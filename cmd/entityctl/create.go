package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/go-action-resolver/internal/adapters/persistence/sqlstore"
	"github.com/jsamuelsen11/go-action-resolver/internal/app/action"
	"github.com/jsamuelsen11/go-action-resolver/internal/app/resolver"
	"github.com/jsamuelsen11/go-action-resolver/internal/app/validation"
	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
	"github.com/jsamuelsen11/go-action-resolver/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-action-resolver/internal/ports"
)

func newCreateCmd(opts *rootOptions) *cobra.Command {
	var noTransaction bool

	cmd := &cobra.Command{
		Use:   "create <domain> <tag> <field=value>...",
		Short: "Validate input and insert an entity of the type configured for (domain, tag)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := parseAssignments(args[2:])
			if err != nil {
				return err
			}

			return withRuntime(cmd, opts, func(ctx context.Context, rt *runtime) error {
				res, err := invoke[*resolver.ConfiguredResolver](rt)
				if err != nil {
					return err
				}
				store, err := invoke[*sqlstore.Store](rt)
				if err != nil {
					return err
				}
				v, err := invoke[ports.Validator](rt)
				if err != nil {
					return err
				}
				metrics, err := invoke[*telemetry.Metrics](rt)
				if err != nil {
					return err
				}

				t, err := res.EntityType(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				entry, err := catalogEntryFor(t.Name)
				if err != nil {
					return err
				}

				a := &createEntity{
					gate:  validation.New(v, rt.cfg.Validation.ForceStructured, rt.logger),
					store: store,
					entry: entry,
					input: input,
				}

				execOpts := []action.Option{
					action.WithLogger(rt.logger),
					action.WithMetrics(metrics),
				}
				if !noTransaction {
					execOpts = append(execOpts, action.WithTransaction(store))
				}

				e, err := action.New[domain.Entity](a, execOpts...).Execute(ctx)
				if err != nil {
					return err
				}
				return printEntity(cmd.OutOrStdout(), store, entry.Type, e)
			})
		},
	}

	cmd.Flags().BoolVar(&noTransaction, "no-transaction", false, "Run the insert outside a database transaction")
	return cmd
}

// createEntity validates input against the catalog rules and inserts the
// validated fields.
type createEntity struct {
	gate  *validation.Gate
	store *sqlstore.Store
	entry catalogEntry
	input map[string]any
}

func (a *createEntity) Rules(ctx context.Context) error {
	_, err := a.gate.Validate(ctx, domain.ExpectStructured, a.input, a.entry.Rules)
	return err
}

func (a *createEntity) Handle(ctx context.Context) (domain.Entity, error) {
	return a.store.Insert(ctx, a.entry.Type, a.gate.ValidatedData().Map())
}

func (a *createEntity) Description() string {
	return "create " + a.entry.Type.Name
}

// parseAssignments reads field=value arguments. Integer values are passed
// on as int64.
func parseAssignments(args []string) (map[string]any, error) {
	input := make(map[string]any, len(args))
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("%w: expected field=value, got %q", domain.ErrValidation, arg)
		}
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			input[field] = n
			continue
		}
		input[field] = value
	}
	return input, nil
}
