package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/hackcheck/filter"
	"github.com/s0up4200/hackcheck/hackcheck"
)

var (
	filterMode string
	databases  []string
	offset     int
	limit      int
	whereExpr  string
	presets    []string
)

var searchCmd = &cobra.Command{
	Use:   "search <field> <query>",
	Short: "Search breach records for an asset",
	Long: `Search the HackCheck breach database by field. Valid fields are:
email, username, full_name, password, ip_address, phone_number, domain, hash.

Results can be narrowed on the server with --filter-mode/--databases and on
the client with --where or --preset expressions, for example:

  hackcheck search email neo@example.com --where 'hasPassword() and breachedAfter("2019")'`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&filterMode, "filter-mode", "", "database filter mode (use/ignore)")
	searchCmd.Flags().StringSliceVar(&databases, "databases", nil, "databases the filter mode applies to")
	searchCmd.Flags().IntVar(&offset, "offset", 0, "result offset")
	searchCmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results")
	searchCmd.Flags().StringVarP(&whereExpr, "where", "w", "", "client-side filter expression")
	searchCmd.Flags().StringSliceVarP(&presets, "preset", "p", nil, "apply a filter preset from config")
}

func runSearch(cmd *cobra.Command, args []string) error {
	field, err := hackcheck.ParseSearchField(args[0])
	if err != nil {
		return err
	}

	resultFilter, err := filters.Resolve(presets, whereExpr)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	opts := hackcheck.SearchOptions{Field: field, Query: args[1]}
	if filterMode != "" || cmd.Flags().Changed("databases") {
		opts.Filter = &hackcheck.SearchFilterOptions{
			Mode:      hackcheck.SearchFilter(filterMode),
			Databases: databases,
		}
	}
	if cmd.Flags().Changed("offset") || cmd.Flags().Changed("limit") {
		opts.Pagination = &hackcheck.SearchPaginationOptions{Offset: offset, Limit: limit}
	}

	logger.Info().Str("field", field.String()).Msg("Searching breaches")

	resp, err := client.Search(cmd.Context(), opts)
	if err != nil {
		return err
	}

	removed, err := filter.ApplyResponse(cmd.Context(), resultFilter, resp)
	if err != nil {
		return err
	}
	if removed > 0 {
		logger.Debug().Int("removed", removed).Msg("Results removed by filter")
	}

	if jsonOut {
		return printJSON(cmd.OutOrStdout(), resp)
	}
	printSearchResponse(cmd.OutOrStdout(), resp)
	return nil
}

var checkCmd = &cobra.Command{
	Use:   "check <field> <query>...",
	Short: "Check whether assets appear in any breach",
	Long: `Check reports whether each query has at least one breach record without
returning the records. Multiple queries are checked concurrently.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	field, err := hackcheck.ParseSearchField(args[0])
	if err != nil {
		return err
	}

	queries := args[1:]
	if len(queries) == 1 {
		found, err := client.Check(cmd.Context(), hackcheck.CheckOptions{Field: field, Query: queries[0]})
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(cmd.OutOrStdout(), hackcheck.CheckResponse{Found: found})
		}
		printCheckResult(cmd.OutOrStdout(), queries[0], found, nil)
		return nil
	}

	checks := make([]hackcheck.CheckOptions, len(queries))
	for i, q := range queries {
		checks[i] = hackcheck.CheckOptions{Field: field, Query: q}
	}

	results, err := client.CheckMany(cmd.Context(), checks)
	if err != nil && results == nil {
		return err
	}

	if jsonOut {
		if jerr := printJSON(cmd.OutOrStdout(), checkResultsJSON(results)); jerr != nil {
			return jerr
		}
	} else {
		for _, r := range results {
			printCheckResult(cmd.OutOrStdout(), r.Options.Query, r.Found, r.Err)
		}
	}

	return err
}

type checkResultJSON struct {
	Query string `json:"query"`
	Found bool   `json:"found"`
	Error string `json:"error,omitempty"`
}

func checkResultsJSON(results []hackcheck.CheckResult) []checkResultJSON {
	out := make([]checkResultJSON, len(results))
	for i, r := range results {
		out[i] = checkResultJSON{Query: r.Options.Query, Found: r.Found}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
		}
	}
	return out
}

// joinNonEmpty joins the values that are set
func joinNonEmpty(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}
