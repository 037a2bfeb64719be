package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/dbridge/internal/app"
)

func (c *CLI) newProjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects [solution|dir]",
		Short: "List the projects of a solution and mark the startup project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Projects(cmd.Context(), projectsOptions(args))
		},
	}
}

func (c *CLI) newStartupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "startup [solution|dir]",
		Short: "Print the project that debug would start",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Startup(cmd.Context(), projectsOptions(args))
		},
	}
}

func projectsOptions(args []string) app.ProjectsOptions {
	var opts app.ProjectsOptions
	if len(args) > 0 {
		opts.Path = args[0]
	}
	return opts
}
