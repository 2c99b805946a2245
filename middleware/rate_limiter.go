package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"tubetext/api-gateway/ratelimit"
	"tubetext/api-gateway/utils"
)

// RateLimiter rejects clients that exceed their fixed-window budget with a
// 429 failure envelope and a Retry-After header. Clients are keyed by IP
// (honoring the app's configured proxy header). Paths listed in exempt are
// never counted; the health endpoint is exempted so monitoring probes do
// not consume the budget.
func RateLimiter(limiter *ratelimit.Limiter, exempt ...string) fiber.Handler {
	exemptPaths := make(map[string]struct{}, len(exempt))
	for _, p := range exempt {
		exemptPaths[p] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if _, ok := exemptPaths[c.Path()]; ok {
			return c.Next()
		}

		dec := limiter.Decide(c.IP())
		if !dec.Allowed {
			retryAfter := int(dec.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			return utils.RespondWithError(c, fiber.StatusTooManyRequests,
				"Rate limit exceeded",
				"You have reached the request limit. Please wait before trying again.")
		}
		return c.Next()
	}
}
