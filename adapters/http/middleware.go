package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Yeralkhan06/MyProfile3/pkg/apperror"
	"github.com/Yeralkhan06/MyProfile3/pkg/auth"
	"github.com/Yeralkhan06/MyProfile3/pkg/logger"
)

const (
	GinContextKeyProfileID     = "profileID"
	GinContextKeyCorrelationID = "correlationID"

	HeaderCorrelationID = "X-Correlation-ID"
)

// ErrorMiddleware renders the last error pushed with c.Error. Causes are logged, never returned.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		reqLog := log.With(
			zap.String("correlation_id", GetCorrelationID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			reqLog.Error("Unhandled error", err)
			if !c.Writer.Written() {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   apperror.ErrInternal.Error(),
					"message": "An internal server error occurred",
				})
			}
			return
		}

		status := apperror.ToHTTPStatus(appErr)
		if status >= http.StatusInternalServerError {
			reqLog.Error(appErr.Message, appErr.Err, zap.String("details", appErr.Details))
		} else {
			reqLog.Warn(appErr.Message, zap.Int("status", status), zap.String("details", appErr.Details))
		}

		if !c.Writer.Written() {
			c.JSON(status, appErr.ToJSON())
		}
	}
}

// AuthMiddleware requires a valid bearer token issued by the login endpoint.
func AuthMiddleware(jwtSvc *auth.JWTService, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Error(apperror.NewUnauthorized("authorization header is required", nil))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.Error(apperror.NewUnauthorized("invalid token format", nil))
			c.Abort()
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			log.Debug("Rejected bearer token", zap.Error(err))
			c.Error(apperror.NewUnauthorized("invalid or expired token", err))
			c.Abort()
			return
		}

		c.Set(GinContextKeyProfileID, claims.ProfileID)
		c.Next()
	}
}

func CorrelationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderCorrelationID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(GinContextKeyCorrelationID, id)
		c.Header(HeaderCorrelationID, id)

		c.Next()
	}
}

func GetCorrelationID(c *gin.Context) string {
	return c.GetString(GinContextKeyCorrelationID)
}

// RequestLogger writes one line per request once the handler chain has finished.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []zap.Field{
			zap.String("correlation_id", GetCorrelationID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if id := traceID(c); id != "" {
			fields = append(fields, zap.String("trace_id", id))
		}
		log.Info("request completed", fields...)
	}
}
