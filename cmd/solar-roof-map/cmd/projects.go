package cmd

import (
	"github.com/bbzsolar/solar-roof-map/internal/dashboard"
	"github.com/bbzsolar/solar-roof-map/pkg/output"
	"github.com/spf13/cobra"
)

var projectFilter dashboard.ProjectFilter

// projectsCmd lists the projects page
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects with optional status, search and sort",
	Long: `List the projects known to the dashboard.

Examples:
  solar-roof-map projects
  solar-roof-map projects --status in_progress
  solar-roof-map projects --search campinas --sort energy --output-format csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := newStore().ListProjects(projectFilter)
		if err != nil {
			return fail("cmd.projects", err)
		}
		return output.Write(cmd.OutOrStdout(), outputFormat, projects)
	},
}

func init() {
	projectsCmd.Flags().StringVar(&projectFilter.Status, "status", "", "status filter: all, draft, in_progress, completed")
	projectsCmd.Flags().StringVar(&projectFilter.Search, "search", "", "case-insensitive match on name, client or address")
	projectsCmd.Flags().StringVar(&projectFilter.Sort, "sort", dashboard.SortRecent, "sort order: recent, oldest, name, energy")
}
