package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	tenantIDKey = contextKey("tenantID")
	actorIDKey  = contextKey("actorID")
)

// TenantHeader carries the tenant key on every API request. Tenancy is an
// explicit key threaded through each store call, never a name-mangled table.
const TenantHeader = "X-Tenant-ID"

// ActorHeader optionally names the acting user for audit fields.
const ActorHeader = "X-Actor-ID"

const defaultActor = "system"

// TenantMiddleware extracts the tenant key from the request header and stores
// it in the request context. Requests without a tenant are rejected; this
// service never operates across tenants.
func TenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(TenantHeader)
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "X-Tenant-ID header required"})
			return
		}

		actorID := c.GetHeader(ActorHeader)
		if actorID == "" {
			actorID = defaultActor
		}

		ctx := context.WithValue(c.Request.Context(), tenantIDKey, tenantID)
		ctx = context.WithValue(ctx, actorIDKey, actorID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(tenantIDKey), tenantID)
		c.Set(string(actorIDKey), actorID)

		c.Next()
	}
}

// GetTenantIDFromContext retrieves the tenant key from the Gin context.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	tenantVal, exists := c.Get(string(tenantIDKey))
	if !exists {
		return "", false
	}
	tenantID, ok := tenantVal.(string)
	if !ok || tenantID == "" {
		return "", false
	}
	return tenantID, true
}

// GetActorIDFromContext retrieves the acting user for audit fields.
func GetActorIDFromContext(c *gin.Context) string {
	if actorVal, exists := c.Get(string(actorIDKey)); exists {
		if actorID, ok := actorVal.(string); ok && actorID != "" {
			return actorID
		}
	}
	return defaultActor
}
