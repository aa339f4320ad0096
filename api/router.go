package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/staybooking/internal/logger"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Listings *ListingHandler
	Bookings *BookingHandler
	Users    *UserHandler
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

func NewRouter(h Handlers, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), accessLog(log))

	group := router.Group("/api")
	h.Listings.Register(group)
	h.Bookings.Register(group)
	h.Users.Register(group)
	group.GET("/health", health)

	if h.Metrics != nil {
		router.GET("/metrics", gin.WrapH(h.Metrics))
	}
	return router
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)})
}

func accessLog(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
