package commands

import (
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/dbridge/internal/app"
	"go.trai.ch/zerr"
)

func (c *CLI) newLocateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locate [file|-]",
		Short: "Print the program a build produced, reading its output from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectRoot, _ := cmd.Flags().GetString("project-root")
			startup, _ := cmd.Flags().GetString("startup")

			opts := app.LocateOptions{
				Input:       cmd.InOrStdin(),
				ProjectRoot: projectRoot,
				StartupName: startup,
			}
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return zerr.With(zerr.Wrap(err, "failed to open build output"), "path", args[0])
				}
				defer func() { _ = f.Close() }()
				opts.Input = f
			}

			return c.app.Locate(cmd.Context(), opts)
		},
	}
	cmd.Flags().String("project-root", "", "Directory of the startup project (default: working directory)")
	cmd.Flags().StringP("startup", "s", "", "Name of the startup project")
	return cmd
}
