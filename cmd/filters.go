package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/hackcheck/filter"
	"github.com/s0up4200/hackcheck/hackcheck"
)

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Inspect and run filter presets from config",
}

var filtersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured filter presets",
	Args:  cobra.NoArgs,
	RunE:  runFiltersList,
}

var filtersRunCmd = &cobra.Command{
	Use:   "run <preset> <field> <query>",
	Short: "Search and keep only results matching a preset",
	Args:  cobra.ExactArgs(3),
	RunE:  runFiltersRun,
}

func init() {
	filtersCmd.AddCommand(filtersListCmd)
	filtersCmd.AddCommand(filtersRunCmd)
}

func runFiltersList(cmd *cobra.Command, args []string) error {
	names := filters.ListFilters()

	if jsonOut {
		presets := make(map[string]string, len(names))
		for _, name := range names {
			if f, ok := filters.GetFilter(name); ok {
				presets[name] = f.Expression()
			}
		}
		return printJSON(cmd.OutOrStdout(), presets)
	}

	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No filter presets configured.")
		return nil
	}

	for _, name := range names {
		if f, ok := filters.GetFilter(name); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "• %s: %s\n", name, f.Expression())
		}
	}
	return nil
}

func runFiltersRun(cmd *cobra.Command, args []string) error {
	name := args[0]
	if _, ok := filters.GetFilter(name); !ok {
		return fmt.Errorf("invalid filter: %w", &filter.PresetNotFoundError{Name: name})
	}

	field, err := hackcheck.ParseSearchField(args[1])
	if err != nil {
		return err
	}

	resp, err := client.Search(cmd.Context(), hackcheck.SearchOptions{Field: field, Query: args[2]})
	if err != nil {
		return err
	}

	matches, err := filters.EvaluateFilter(cmd.Context(), name, resp.Results)
	if err != nil {
		return err
	}
	logger.Debug().
		Str("preset", name).
		Int("removed", len(resp.Results)-len(matches)).
		Msg("Preset applied")
	resp.Results = matches

	if jsonOut {
		return printJSON(cmd.OutOrStdout(), resp)
	}
	printSearchResponse(cmd.OutOrStdout(), resp)
	return nil
}
