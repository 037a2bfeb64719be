package commands

import "github.com/spf13/cobra"

func (c *CLI) newDebuggerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debugger",
		Short: "Print the path of the debugger that debug would start",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Debugger(cmd.Context())
		},
	}
}
