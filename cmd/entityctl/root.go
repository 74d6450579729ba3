package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	profile   string
	configDir string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "entityctl",
		Short: "Resolve, encode and create configured entities",
		Long: `entityctl resolves (domain, tag, identifier) triples to stored entities,
encodes and decodes hashed identifiers, and creates entities through the
validated, transactional action runtime.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.profile, "profile", os.Getenv("APP_PROFILE"),
		"Configuration profile (e.g. local, test, prod); defaults to $APP_PROFILE")
	cmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", "configs",
		"Directory containing base.yaml and the profile files")

	cmd.AddCommand(
		newResolveCmd(opts),
		newResolveKeyCmd(opts),
		newEncodeKeyCmd(opts),
		newDecodeKeyCmd(opts),
		newCreateCmd(opts),
		newMigrateCmd(opts),
		newPushConfigCmd(opts),
		newHealthCmd(opts),
	)
	return cmd
}

// withRuntime bootstraps the runtime for one command invocation and tears
// it down afterwards.
func withRuntime(cmd *cobra.Command, opts *rootOptions, fn func(context.Context, *runtime) error) error {
	if opts.profile == "" {
		return errors.New("a profile is required: pass --profile or set APP_PROFILE (e.g. local, test, prod)")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := bootstrap(ctx, opts.profile, opts.configDir, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	runErr := fn(ctx, rt)
	return errors.Join(runErr, rt.Close(context.WithoutCancel(ctx)))
}
