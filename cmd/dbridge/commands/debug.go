package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/dbridge/internal/app"
)

func (c *CLI) newDebugCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug [flags] [--] <command...>",
		Short: "Build with the given dotnet command and debug the startup project",
		Example: "  dbridge debug dotnet run\n" +
			"  dbridge debug --stop-at-entry -- dotnet run --project src/Api -- --urls http://localhost:5000",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			stopAtEntry, _ := cmd.Flags().GetBool("stop-at-entry")
			console, _ := cmd.Flags().GetString("console")
			emit, _ := cmd.Flags().GetBool("emit")
			startup, _ := cmd.Flags().GetString("startup")
			outputMode, _ := cmd.Flags().GetString("output")
			ci, _ := cmd.Flags().GetBool("ci")
			quiet, _ := cmd.Flags().GetBool("quiet")

			if ci {
				outputMode = "linear"
			}

			return c.app.Debug(cmd.Context(), app.DebugOptions{
				Command:        args,
				StartupProject: startup,
				StopAtEntry:    stopAtEntry,
				Console:        console,
				Emit:           emit,
				OutputMode:     outputMode,
				Quiet:          quiet,
			})
		},
	}
	// Everything after the first argument belongs to the build command.
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().Bool("stop-at-entry", false, "Break at the program entry point")
	cmd.Flags().String("console", "", "Console: integratedTerminal, externalTerminal, or internalConsole")
	cmd.Flags().Bool("emit", false, "Print the launch configuration instead of starting the debugger")
	cmd.Flags().StringP("startup", "s", "", "Project to debug, by name or GUID")
	cmd.Flags().StringP("output", "o", "auto", "Output mode: auto, interactive, or linear")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --output=linear)")
	cmd.Flags().BoolP("quiet", "q", false, "Hide build progress; a failed build still prints its output")
	return cmd
}
