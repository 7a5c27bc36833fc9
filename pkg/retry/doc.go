// Package retry wraps upstream calls with optional exponential backoff.
//
// Retrying is off unless retry.max_attempts is raised above 1, and only
// upstream_unavailable errors with a retryable status are ever retried:
//
//	cfg := retry.FromConfig(appCfg.Retry, log)
//	err := retry.Do(ctx, cfg, func(ctx context.Context) error {
//		return fetchPage(ctx)
//	})
package retry
