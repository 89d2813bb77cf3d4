package filter

import (
	"context"

	"github.com/s0up4200/hackcheck/hackcheck"
)

// checkEvery is how many results are evaluated between context checks
const checkEvery = 256

// Apply returns the results matching filter, preserving their order.
// A nil filter keeps everything.
func Apply(ctx context.Context, filter Filter, results []hackcheck.SearchResult) ([]hackcheck.SearchResult, error) {
	if filter == nil {
		return results, nil
	}

	matches := make([]hackcheck.SearchResult, 0, len(results))
	for i, result := range results {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if filter.Evaluate(result) {
			matches = append(matches, result)
		}
	}
	return matches, nil
}

// ApplyResponse filters the results of a search response in place and
// returns the number of results removed
func ApplyResponse(ctx context.Context, filter Filter, resp *hackcheck.SearchResponse) (int, error) {
	if resp == nil || filter == nil {
		return 0, nil
	}

	matches, err := Apply(ctx, filter, resp.Results)
	if err != nil {
		return 0, err
	}

	removed := len(resp.Results) - len(matches)
	resp.Results = matches
	return removed, nil
}
