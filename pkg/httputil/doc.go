// Package httputil provides the shared HTTP plumbing for snapshot sources:
// a JSON-focused client with retry support and a cursor-pagination drainer.
//
// # Client
//
// [Client] wraps net/http with default headers, a request timeout, and a
// fixed retry budget. It is constructed once per source and passed in
// explicitly; there is no package-level shared session. All methods are safe
// for concurrent use.
//
//	c := httputil.NewClient(
//	    httputil.WithHeaders(map[string]string{"Authorization": "token " + token}),
//	)
//	var repos []Repo
//	err := c.Get(ctx, "https://api.example.com/repos", &repos)
//
// # Retry semantics
//
// Transient failures (network errors, 5xx responses) are wrapped in
// [RetryableError] and retried with exponential backoff up to the configured
// attempt budget (default 5). Client errors (4xx) and decode errors are
// returned immediately. Exhausting the budget returns the last error.
//
// # Pagination
//
// [Collect] drains a cursor-paginated endpoint that returns
// {"results": [...], "next": <url-or-absent>} pages, accumulating results in
// API order. A malformed (non-JSON) body ends the loop and keeps whatever was
// collected; a visited-URL set and a hard page bound guard against cursor
// cycles. [Drain] additionally persists a non-empty result set.
package httputil
