package apierrors

import (
	"campaign-server/internal/authz"

	"github.com/gin-gonic/gin"
)

// RequireActor returns the actor resolved by the JWT middleware and responds
// 401 when there is none.
func RequireActor(c *gin.Context) (authz.Actor, bool) {
	actor, ok := authz.ActorFromContext(c.Request.Context())
	if !ok {
		Unauthorized(c, "Authentication required")
		return authz.Actor{}, false
	}
	return actor, true
}
