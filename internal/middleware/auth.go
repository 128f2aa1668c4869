package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/room-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/room-scheduler/internal/httperr"
	"github.com/BruksfildServices01/room-scheduler/internal/session"
)

const (
	ContextUserID    = "userID"
	ContextUserRole  = "userRole"
	ContextPrincipal = "principal"
	ContextClaims    = "claims"

	SessionCookie = "session"
)

// PrincipalSource loads the current role, permissions and active flag of a
// user, so changes made by an admin apply before the token expires. A nil
// principal means the user no longer exists.
type PrincipalSource interface {
	Principal(ctx context.Context, userID string) (*identity.Principal, error)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// resolvePrincipal returns nil when the token is missing, invalid or
// revoked, or when the user is gone.
func resolvePrincipal(c *gin.Context, resolver *session.Resolver, users PrincipalSource, token string) (*session.Claims, *identity.Principal) {
	claims, err := resolver.Resolve(c.Request.Context(), token)
	if err != nil {
		return nil, nil
	}

	if users == nil {
		p := claims.Principal()
		return claims, &p
	}

	p, err := users.Principal(c.Request.Context(), claims.Subject)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.Subject).Msg("failed to load session user")
		return nil, nil
	}
	if p == nil {
		return nil, nil
	}
	return claims, p
}

func setPrincipal(c *gin.Context, claims *session.Claims, p *identity.Principal) {
	c.Set(ContextUserID, p.ID)
	c.Set(ContextUserRole, string(p.Role))
	c.Set(ContextPrincipal, *p)
	c.Set(ContextClaims, claims)
}

func AuthMiddleware(resolver *session.Resolver, users PrincipalSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			if _, hasHeader := c.Request.Header["Authorization"]; hasHeader {
				httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
				return
			}
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie == "" {
				httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Autenticação necessária.")
				return
			}
			token = cookie
		}

		claims, p := resolvePrincipal(c, resolver, users, token)
		if p == nil {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Sessão inválida ou expirada.")
			return
		}
		if !p.IsActive {
			httperr.Abort(c, http.StatusUnauthorized, "inactive_account", "Conta desativada.")
			return
		}

		setPrincipal(c, claims, p)
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok || !p.IsAdmin() {
			httperr.Abort(c, http.StatusForbidden, "forbidden", "Acesso restrito a administradores.")
			return
		}
		c.Next()
	}
}

// RequirePermission lets admins through regardless of their permission set.
func RequirePermission(perm identity.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok || !p.Can(perm) {
			httperr.Abort(c, http.StatusForbidden, "forbidden", "Você não tem permissão para acessar este recurso.")
			return
		}
		c.Next()
	}
}

func PrincipalFrom(c *gin.Context) (identity.Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return identity.Principal{}, false
	}
	p, ok := v.(identity.Principal)
	return p, ok
}

func ClaimsFrom(c *gin.Context) (*session.Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*session.Claims)
	return claims, ok && claims != nil
}

func UserIDFrom(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
