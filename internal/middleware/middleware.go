package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bikebay/server/internal/helpers"
	"github.com/bikebay/server/internal/models"
	"github.com/bikebay/server/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Process request
		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", clientIP,
		)
	}
}

// ErrorHandler provides centralized error handling
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			requestID, _ := c.Get("request_id")

			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)

			if !c.Writer.Written() {
				c.JSON(http.StatusInternalServerError, models.ErrorResponse("internal server error"))
			}
		}
	}
}

// AuthMiddleware validates the bearer token and resolves the current user
// record, so role changes take effect without re-issuing tokens.
func AuthMiddleware(tokens *helpers.TokenSigner, userService *services.UserService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("missing bearer token"))
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("invalid or expired token"))
			c.Abort()
			return
		}
		if claims.Scope != "" {
			// Reset tokens are not access tokens.
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("invalid or expired token"))
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("invalid token subject"))
			c.Abort()
			return
		}

		user, err := userService.GetUser(c.Request.Context(), userID)
		if err != nil {
			logger.Info("Token user not found", "user_id", claims.Subject, "error", err)
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unknown user"))
			c.Abort()
			return
		}

		c.Set("user", &helpers.EnhancedClaims{
			CustomClaims: claims,
			Role:         user.Role,
			UserID:       user.ID,
			Email:        user.Email,
			Name:         user.Name,
		})
		c.Next()
	}
}
