package api

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/paw-chain/multiswap/x/multiswap/types"
)

// Context keys set by AuthMiddleware.
const (
	ctxKeyAccount   = "account"
	ctxKeySubject   = "subject"
	ctxKeyRole      = "role"
	ctxKeyRequestID = "request_id"
)

// AuthMiddleware validates the bearer token and requires role. Trader tokens
// must name a valid account address as their subject.
func (s *Server) AuthMiddleware(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWith(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Authorization header required", "")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWith(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Invalid authorization header format", "")
			return
		}

		claims, err := s.auth.ValidateToken(parts[1])
		if err != nil {
			abortWith(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Invalid or expired token", err.Error())
			return
		}
		if claims.Role != role {
			s.respondError(c, types.ErrUnauthorized.Wrapf("role %q cannot use this route", claims.Role))
			return
		}

		if role == RoleTrader {
			account, err := sdk.AccAddressFromBech32(claims.Subject)
			if err != nil {
				abortWith(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Token subject is not an account", err.Error())
				return
			}
			c.Set(ctxKeyAccount, account)
		}
		c.Set(ctxKeySubject, claims.Subject)
		c.Set(ctxKeyRole, claims.Role)
		c.Next()
	}
}

// CORSMiddleware handles CORS
func (s *Server) CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range s.config.CORSOrigins {
			if allowedOrigin == "*" || allowedOrigin == origin {
				allowed = true
				break
			}
		}

		if allowed && origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RateLimitMiddleware limits each client IP to rps requests per second with
// a burst of twice that. A non-positive rps disables the limit.
func RateLimitMiddleware(rps int) gin.HandlerFunc {
	limiters := &sync.Map{}

	return func(c *gin.Context) {
		if rps <= 0 {
			c.Next()
			return
		}

		limiterInterface, _ := limiters.LoadOrStore(c.ClientIP(), rate.NewLimiter(rate.Limit(rps), rps*2))
		limiter := limiterInterface.(*rate.Limiter)

		if !limiter.Allow() {
			abortWith(c, http.StatusTooManyRequests, "RATE_LIMIT", "Rate limit exceeded", "")
			return
		}

		c.Next()
	}
}

// LoggerMiddleware logs every request once it has been served.
func LoggerMiddleware(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if query := c.Request.URL.RawQuery; query != "" {
			path = path + "?" + query
		}

		c.Next()

		status := c.Writer.Status()
		kv := []interface{}{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"latency", time.Since(start).String(),
			"ip", c.ClientIP(),
			"request_id", c.GetString(ctxKeyRequestID),
		}
		switch {
		case status >= 500:
			logger.Error("request", kv...)
		case status >= 400:
			logger.Info("request", kv...)
		default:
			logger.Debug("request", kv...)
		}
	}
}

// TracingMiddleware opens a server span per request on the global tracer.
func TracingMiddleware() gin.HandlerFunc {
	tracer := otel.Tracer("github.com/paw-chain/multiswap/api")

	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ctx, span := tracer.Start(c.Request.Context(), c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", route),
				attribute.String("request.id", c.GetString(ctxKeyRequestID)),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}

// RecoveryMiddleware turns panics into a 500 response.
func RecoveryMiddleware(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered", "err", err, "path", c.Request.URL.Path)
				abortWith(c, http.StatusInternalServerError, "INTERNAL", "Internal server error", "")
			}
		}()
		c.Next()
	}
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ctxKeyRequestID, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// RequestSizeLimitMiddleware caps request bodies at maxBytes.
func RequestSizeLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// SecurityHeadersMiddleware adds security headers
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("Referrer-Policy", "no-referrer")
		c.Writer.Header().Set("Cache-Control", "no-store")
		c.Next()
	}
}
