package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwtlib "github.com/immxrtalbeast/frameboard/internal/lib/jwt"
	"github.com/immxrtalbeast/frameboard/internal/service"
)

const identityKey = "identity"

// AuthMiddleware verifies the Authorization bearer token and stores the
// bound identity in the request context.
func AuthMiddleware(tokens *jwtlib.Manager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == header {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		identity, err := tokens.Parse(raw)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		ctx.Set(identityKey, service.Actor{UserID: identity.UserID, Name: identity.Name})
		ctx.Next()
	}
}

// actorFrom extracts the authenticated actor placed by AuthMiddleware.
func actorFrom(ctx *gin.Context) (service.Actor, bool) {
	value, ok := ctx.Get(identityKey)
	if !ok {
		return service.Actor{}, false
	}
	actor, ok := value.(service.Actor)
	return actor, ok
}

// requireActor is actorFrom plus the 401 response for requests that somehow
// bypassed the middleware.
func requireActor(ctx *gin.Context) (service.Actor, bool) {
	actor, ok := actorFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return actor, ok
}
