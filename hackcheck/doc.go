// Package hackcheck provides a client for the HackCheck breach lookup API.
//
// HackCheck indexes leaked credential databases. This package exposes its
// search, existence check and monitor endpoints with typed requests,
// typed responses and a closed set of error types.
//
// # Usage
//
// Create a client with your API key and release it when done:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := hackcheck.NewClient("your-api-key", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	resp, err := client.Search(ctx, hackcheck.SearchOptions{
//		Field: hackcheck.SearchFieldEmail,
//		Query: "someone@example.com",
//		Pagination: &hackcheck.SearchPaginationOptions{Offset: 0, Limit: 10},
//	})
//
// # Error Handling
//
// Every failure is one of:
//
//   - *InvalidAPIKeyError: the key was rejected (401)
//   - *UnauthorizedIPAddressError: the caller's address is not allowed (401)
//   - *ServerError: any other 401
//   - *RateLimitError: quota exhausted (429), with Limit and Remaining
//   - *APIError: 400 or 404, Error() is the service message verbatim
//   - *SchemaError: a success payload had the wrong shape
//   - *ValidationError: request options were rejected before sending
//   - a transport error from net/http, returned unchanged
//
// Each typed error matches a sentinel with errors.Is:
//
//	if errors.Is(err, hackcheck.ErrRateLimited) {
//		var rl *hackcheck.RateLimitError
//		errors.As(err, &rl)
//		fmt.Println(rl.Remaining)
//	}
//
// # Thread Safety
//
// A Client may be used by multiple goroutines at once. No operation retries.
package hackcheck
