package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jpashop/backend/internal/infrastructure/auth"
	"github.com/jpashop/backend/internal/infrastructure/logger"
	"github.com/jpashop/backend/internal/interfaces/http/dto"
)

// AnonymousAuditor is recorded when a request carries no identity
const AnonymousAuditor = "anonymous"

const bearerPrefix = "Bearer "

// maxUserIDLength matches the width of the created_by column
const maxUserIDLength = 100

// Auditor resolves who is making the request and stores it as the auditor
// in the gin context and in the request context, where the persistence
// layer reads it. The order is: verified bearer token subject, X-User-ID
// header, anonymous. A bearer token that fails verification is rejected
// with 401 when a secret is configured.
func Auditor(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auditor := ""

		if token, ok := bearerToken(c); ok && jwtService != nil && jwtService.Enabled() {
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
					dto.ErrCodeUnauthorized, err.Error(), GetRequestID(c),
				))
				return
			}
			auditor = claims.Subject
		}

		if auditor == "" {
			if userID := strings.TrimSpace(c.GetHeader(UserIDHeader)); userID != "" && len(userID) <= maxUserIDLength {
				auditor = userID
			}
		}
		if auditor == "" {
			auditor = AnonymousAuditor
		}

		c.Set(AuditorKey, auditor)
		c.Request = c.Request.WithContext(logger.WithAuditor(c.Request.Context(), auditor))
		c.Next()
	}
}

// GetAuditor returns the auditor resolved for the request
func GetAuditor(c *gin.Context) string {
	return c.GetString(AuditorKey)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	return token, token != ""
}
