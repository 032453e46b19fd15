package ratelimit

import (
	"fmt"
	"net/http"

	"campaign-server/internal/authz"
	"campaign-server/internal/observability"

	"github.com/gin-gonic/gin"
)

// Middleware limits authenticated requests per principal. It must run after
// the JWT middleware. Backend failures let the request through.
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.Enabled() {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		principal, ok := authz.PrincipalFromContext(ctx)
		if !ok {
			c.Next()
			return
		}

		ctx = observability.WithFields(ctx,
			observability.Field{Key: "principal_id", Value: principal.ID.String()},
			observability.Field{Key: "rate_limit_rpm", Value: s.limit},
		)

		result, err := s.Check(ctx, principal.ID)
		if err != nil {
			s.logger.Error(ctx, "rate limit check failed, allowing request", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetAt.Unix()))

		if !result.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", (result.RetryAfterMs+999)/1000))
			s.logger.Warn(ctx, "rate limit exceeded")

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"code":        "RATE_LIMIT_EXCEEDED",
				"limit":       result.Limit,
				"retry_after": (result.RetryAfterMs + 999) / 1000,
				"reset_at":    result.ResetAt.Unix(),
			})
			return
		}

		c.Next()
	}
}
