package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"codplayer/internal/discdb"
	"codplayer/internal/discid"
	"codplayer/internal/toc"
)

type showResult struct {
	Found  bool              `json:"found"`
	Status discdb.DiscStatus `json:"status"`
	Disc   *toc.Disc         `json:"disc,omitempty"`
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <disc-id|db-id>",
		Short: "Show one disc",
		Long: `Show the files and TOC summary of one disc.

The argument is either a MusicBrainz disc ID or a 40 character database ID.
A disc that is absent or not fully ripped exits with an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore(cmd)
			if err != nil {
				return err
			}

			dbID, err := resolveDBID(args[0])
			if err != nil {
				return err
			}
			status, err := store.Status(dbID)
			if err != nil {
				return err
			}
			disc, found, err := store.Lookup(dbID)
			if err != nil {
				return err
			}

			if ctx.JSONMode() {
				if err := writeJSON(cmd, showResult{Found: found, Status: status, Disc: disc}); err != nil {
					return err
				}
			} else {
				renderDisc(cmd, store, status, disc)
			}
			if !found {
				return fmt.Errorf("disc %s not found (state: %s)", dbID, discState(status))
			}
			return nil
		},
	}
}

// resolveDBID accepts either identifier form. Database IDs are recognised
// by shape; everything else is treated as a disc ID.
func resolveDBID(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if discid.Valid(arg) {
		return strings.ToLower(arg), nil
	}
	dbID, err := discid.Encode(arg)
	if err != nil {
		return "", fmt.Errorf("%w: %w", discdb.ErrInvalidIdentifier, err)
	}
	return dbID, nil
}

func renderDisc(cmd *cobra.Command, store *discdb.Store, status discdb.DiscStatus, disc *toc.Disc) {
	files := store.Layout().Files(status.DBID)
	rows := [][]string{
		{"DB ID", status.DBID},
		{"Disc ID", status.DiscID},
		{"Directory", status.Dir},
		{"State", discState(status)},
		{"Audio", fileSummary(files.Audio, status.HasAudio, formatBytes(status.AudioBytes))},
		{"TOC", fileSummary(files.TOC, status.HasTOC, "")},
		{"Edited TOC", fileSummary(files.CookedTOC, status.HasCookedTOC, "")},
		{"Rip log", fileSummary(files.RipLog, status.HasRipLog, "")},
	}
	if disc != nil {
		rows = append(rows,
			[]string{"Catalog", disc.Catalog},
			[]string{"Title", disc.Title},
			[]string{"Performer", disc.Performer},
			[]string{"Audio tracks", strconv.Itoa(disc.AudioTracks)},
		)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
}

func fileSummary(name string, present bool, detail string) string {
	if !present {
		return name + " (missing)"
	}
	if detail != "" {
		return name + " (" + detail + ")"
	}
	return name
}
