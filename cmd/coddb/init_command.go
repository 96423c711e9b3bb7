package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codplayer/internal/discdb"
)

func newInitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a new disc database",
		Long: `Create a new disc database in the configured directory.

The directory is created if needed and must be empty. Running init on an
existing database fails rather than touching it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.Database.Dir, 0o755); err != nil {
				return fmt.Errorf("create database directory: %w", err)
			}
			opts, err := ctx.storeOptions(cmd)
			if err != nil {
				return err
			}
			store, err := discdb.Init(cfg.Database.Dir, opts...)
			if err != nil {
				return err
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{
					"dir":     store.Root(),
					"version": store.Layout().Version,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized disc database (format v%d) in %s\n", store.Layout().Version, store.Root())
			return nil
		},
	}
}
