package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"codplayer/internal/discdb"
	"codplayer/internal/logging"
	"codplayer/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the database and environment",
		Long: `Check that the database directory is accessible, that it holds a
database of a supported format with all buckets, and whether the ripping
tool is installed. Exits with an error when a required check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cmd, "check")
			if err != nil {
				return err
			}
			results := preflight.RunAll(cfg, discdb.WithLogger(logger))
			failed := preflight.Failed(results)
			if failed {
				logging.WarnWithContext(cmd.Context(), logger, "database check failed", "check_failed",
					logging.String(logging.FieldDBDir, cfg.Database.Dir),
					logging.String(logging.FieldErrorHint, "run `coddb init` for a new database or restore the missing entries"),
					logging.String(logging.FieldImpact, "discs cannot be ripped or played"),
				)
			}

			if ctx.JSONMode() {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, r := range results {
					kind := statusOK
					switch {
					case !r.Passed && r.Optional:
						kind = statusWarn
					case !r.Passed:
						kind = statusError
					}
					fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
				}
			}

			if failed {
				return errors.New("database check failed")
			}
			return nil
		},
	}
}
