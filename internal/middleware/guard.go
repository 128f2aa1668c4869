package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/room-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/room-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/room-scheduler/internal/session"
)

// WebGuard runs the navigation rules on every page request. The session
// comes from the session cookie; an unreadable one counts as no session.
func WebGuard(resolver *session.Resolver, users PrincipalSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			claims *session.Claims
			p      *identity.Principal
		)
		if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
			claims, p = resolvePrincipal(c, resolver, users, token)
		}

		decision := access.Decide(c.Request.URL.Path, p)
		if !decision.Allow {
			c.Redirect(http.StatusFound, decision.Redirect)
			c.Abort()
			return
		}

		if p != nil && p.IsActive {
			setPrincipal(c, claims, p)
		}
		c.Next()
	}
}
