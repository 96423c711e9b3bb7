package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCreateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "create <disc-id>",
		Short: "Prepare the directory for ripping a disc",
		Long: `Create the directory for a disc and record its disc ID, then print
where the ripper should write the audio, TOC and rip log.

Running create again for the same disc is safe and reuses the directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore(cmd)
			if err != nil {
				return err
			}
			entry, err := store.CreateDisc(args[0])
			if err != nil {
				return err
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, entry)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Disc directory: %s\n", entry.Dir)
			fmt.Fprintf(out, "DB ID:          %s\n", entry.DBID)
			fmt.Fprintf(out, "Audio file:     %s\n", entry.AudioFile)
			fmt.Fprintf(out, "TOC file:       %s\n", entry.TOCFile)
			fmt.Fprintf(out, "Rip log:        %s\n", entry.RipLogPath)
			return nil
		},
	}
}
