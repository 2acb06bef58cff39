package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/imrishuroy/go-attendance-punch/internal/attendance"
)

// HeaderRequestID carries the request correlation id in both directions.
const HeaderRequestID = "X-Request-Id"

// RootMessage is the fixed payload of GET /.
const RootMessage = "Hello from FastAPI Backend!"

// HandlerConfig groups dependencies for the HTTP layer.
type HandlerConfig struct {
	Service   *attendance.Service
	AccessLog bool // gin access log, useful when running locally
}

// NewRouter builds the gin engine with middleware, health and attendance routes.
func NewRouter(cfg HandlerConfig) *gin.Engine {
	r := gin.New()
	if cfg.AccessLog {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery(), RequestID(), echoRequestedHeaders(), permissiveCORS())

	// health
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": RootMessage})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	RegisterAttendanceRoutes(r, cfg.Service)

	return r
}

// RequestID propagates X-Request-Id, generating one when absent, and stores it
// on the request context for downstream event correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(attendance.WithCorrelationID(c.Request.Context(), id))
		c.Next()
	}
}

// echoRequestedHeaders grants whatever headers a preflight asks for.
// Browsers ignore a literal "*" on credentialed requests, so the list is echoed.
// permissiveCORS leaves Access-Control-Allow-Headers unset and does not overwrite it.
func echoRequestedHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions && c.GetHeader("Origin") != "" {
			if requested := c.GetHeader("Access-Control-Request-Headers"); requested != "" {
				c.Header("Access-Control-Allow-Headers", requested)
				c.Writer.Header().Add("Vary", "Access-Control-Request-Headers")
			}
		}
		c.Next()
	}
}

// permissiveCORS accepts every origin (echoed back so credentials work) and method.
func permissiveCORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: func(string) bool { return true },
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		ExposeHeaders:    []string{HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
