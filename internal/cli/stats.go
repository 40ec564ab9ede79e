package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/aster/internal/config"
	"github.com/dshills/aster/internal/editor"
	"github.com/dshills/aster/internal/markdown"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats FILE",
		Short: "Print document statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session := editor.NewSession(config.Default())
			defer session.Close()

			if err := session.OpenFile(args[0]); err != nil {
				return err
			}

			doc := session.Document()
			res := markdown.Parse(session.Text())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "path:       %s\n", doc.Path())
			fmt.Fprintf(out, "words:      %d\n", doc.WordCount())
			fmt.Fprintf(out, "characters: %d\n", doc.LenChars())
			fmt.Fprintf(out, "bytes:      %d\n", doc.LenBytes())
			fmt.Fprintf(out, "lines:      %d\n", doc.LineCount())
			fmt.Fprintf(out, "blocks:     %d\n", len(res.Blocks))
			fmt.Fprintf(out, "footnotes:  %d\n", len(res.Footnotes))
			return nil
		},
	}
}
