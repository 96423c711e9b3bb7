package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codplayer/internal/discid"
)

type idResult struct {
	DiscID   string `json:"disc_id"`
	DBID     string `json:"db_id"`
	Bucket   string `json:"bucket"`
	FileBase string `json:"file_base"`
}

func newIDCommand(ctx *commandContext) *cobra.Command {
	idCmd := &cobra.Command{
		Use:         "id",
		Short:       "Convert between disc IDs and database IDs",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}

	idCmd.AddCommand(&cobra.Command{
		Use:   "encode <disc-id>",
		Short: "Convert a MusicBrainz disc ID to a database ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbID, err := discid.Encode(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			return printID(cmd, ctx, idResult{DiscID: strings.TrimSpace(args[0]), DBID: dbID})
		},
	})

	idCmd.AddCommand(&cobra.Command{
		Use:   "decode <db-id>",
		Short: "Convert a database ID to a MusicBrainz disc ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			discID, err := discid.Decode(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			return printID(cmd, ctx, idResult{DiscID: discID, DBID: strings.ToLower(strings.TrimSpace(args[0]))})
		},
	})

	return idCmd
}

func printID(cmd *cobra.Command, ctx *commandContext, res idResult) error {
	if discid.Valid(res.DBID) {
		res.Bucket = discid.Bucket(res.DBID)
		res.FileBase = discid.FilenameBase(res.DBID)
	}
	if ctx.JSONMode() {
		return writeJSON(cmd, res)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Disc ID: %s\n", res.DiscID)
	fmt.Fprintf(out, "DB ID:   %s\n", res.DBID)
	if res.Bucket != "" {
		fmt.Fprintf(out, "Bucket:  %s\n", res.Bucket)
	}
	return nil
}
