package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"codplayer/internal/discdb"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var completeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discs in the database",
		Long: `List every disc directory in the database, including discs whose rip
has not finished yet. Use --complete to show only discs that can be played.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore(cmd)
			if err != nil {
				return err
			}

			statuses := []discdb.DiscStatus{}
			for status, err := range store.Entries() {
				if err != nil {
					return err
				}
				if completeOnly && !status.Complete() {
					continue
				}
				statuses = append(statuses, status)
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, statuses)
			}

			out := cmd.OutOrStdout()
			if len(statuses) == 0 {
				fmt.Fprintln(out, "No discs in database")
				return nil
			}

			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				rows = append(rows, []string{
					status.DBID,
					status.DiscID,
					discState(status),
					formatBytes(status.AudioBytes),
					yesNo(status.HasRipLog),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"DB ID", "Disc ID", "State", "Audio", "Rip log"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "%d discs\n", len(statuses))
			return nil
		},
	}

	cmd.Flags().BoolVar(&completeOnly, "complete", false, "Only list discs with both audio and TOC")
	return cmd
}

func discState(status discdb.DiscStatus) string {
	switch {
	case status.Complete() && status.HasCookedTOC:
		return "ripped (edited)"
	case status.Complete():
		return "ripped"
	case status.HasAudio || status.HasTOC:
		return "ripping"
	default:
		return "new"
	}
}
