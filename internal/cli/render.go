package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/aster/internal/fs"
	"github.com/dshills/aster/internal/markdown"
	"github.com/dshills/aster/internal/render"
)

func newRenderCommand() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a markdown file to the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := fs.ReadDocument(args[0])
			if err != nil {
				return err
			}

			res := markdown.Parse(text)
			out := render.New(render.WithWidth(width)).Render(res)
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 80, "wrap width in columns")
	return cmd
}
