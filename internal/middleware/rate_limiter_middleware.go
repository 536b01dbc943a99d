package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/veen-app/veen-api/internal/util"
)

// RateLimiter is a sliding window limit. Each call gets its own counters, so
// a route-level limiter does not share budget with the global one.
func RateLimiter(max int, expiration time.Duration) fiber.Handler {
	if max == 0 {
		max = 50
	}
	if expiration == 0 {
		expiration = 1 * time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: expiration,
		LimitReached: func(c *fiber.Ctx) error {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusTooManyRequests,
				Message: fmt.Sprintf("Too many requests, limit is %d per %s. Please try again later.", max, expiration),
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}
