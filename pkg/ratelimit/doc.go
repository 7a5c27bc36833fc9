// Package ratelimit paces requests to Instagram and ScrapFly.
//
// A method awaits the limiter before every upstream request:
//
//	limiter := ratelimit.PerMinute(cfg.RateLimit.RequestsPerMinute)
//	if err := limiter.Wait(ctx); err != nil {
//		return err
//	}
package ratelimit
