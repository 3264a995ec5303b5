package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/megamind-app/megamind-backend/internal/http/response"
	"github.com/megamind-app/megamind-backend/internal/pkg/apperr"
	"github.com/megamind-app/megamind-backend/internal/pkg/ctxutil"
	"github.com/megamind-app/megamind-backend/internal/pkg/logger"
	"github.com/megamind-app/megamind-backend/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(baseLog *logger.Logger, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		log:         baseLog.With("middleware", "AuthMiddleware"),
		authService: authService,
	}
}

// RequireAuth rejects requests without a valid bearer token.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			response.Error(c, apperr.Unauthorized(apperr.CodeUnauthorized, "Authentication token is missing"))
			c.Abort()
			return
		}
		userID, err := am.authService.VerifyToken(tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
			TokenString: tokenString,
			UserID:      userID,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token is
// present and continues anonymously otherwise.
func (am *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString != "" {
			if userID, err := am.authService.VerifyToken(tokenString); err == nil {
				ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
					TokenString: tokenString,
					UserID:      userID,
				})
				c.Request = c.Request.WithContext(ctx)
			} else {
				am.log.Debug("ignoring invalid token on optional route", "error", err)
			}
		}
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
