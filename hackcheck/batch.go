package hackcheck

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// CheckResult is the outcome of one check within CheckMany
type CheckResult struct {
	Options CheckOptions
	Found   bool
	Err     error
}

// CheckMany runs Check for every entry with bounded concurrency over the
// shared transport. Results are returned in input order with per-entry
// errors in CheckResult.Err. A rate limit response stops the batch: checks
// not yet finished are cancelled and the *RateLimitError is returned.
func (c *Client) CheckMany(ctx context.Context, checks []CheckOptions) ([]CheckResult, error) {
	results := make([]CheckResult, len(checks))
	if len(checks) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, opts := range checks {
		results[i].Options = opts

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			found, err := c.Check(gctx, opts)
			results[i].Found = found
			results[i].Err = err

			var rateErr *RateLimitError
			if errors.As(err, &rateErr) {
				c.logger.Warn().
					Int("limit", rateErr.Limit).
					Int("remaining", rateErr.Remaining).
					Msg("Rate limit reached, stopping remaining checks")
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}

	return results, nil
}
