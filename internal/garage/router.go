package garage

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	hubsync "garagehub/internal/sync"
)

// NewRouter builds the view server: the garage routes plus health, readiness,
// debug and the reload WebSocket.
func NewRouter(h *Handler, hub *hubsync.Hub) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/ws", hubsync.WSHandler(hub))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "source": h.Loader.Status().Source})
	})

	// ready once the first catalog load succeeded
	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		snap := h.Views.Snapshot()
		st := h.Loader.Status()

		if snap.ID == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"state":       st.State,
				"error":       st.LastError,
				"tcp_clients": stats.TCPClients,
				"ws_clients":  stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"snapshot_id": snap.ID,
			"items":       snap.Len(),
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	router.GET("/debug", func(c *gin.Context) {
		stats := hub.Stats()
		c.JSON(http.StatusOK, gin.H{
			"catalog":      h.Loader.Status(),
			"page_size":    h.Views.Engine().PageSize(),
			"default_sort": h.Views.Engine().DefaultSort(),
			"tcp_clients":  stats.TCPClients,
			"ws_clients":   stats.WSClients,
		})
	})

	h.RegisterRoutes(router)
	return router
}

// WithCORS allows the front-end origins to call the view server. An empty
// list allows any origin.
func WithCORS(next http.Handler, origins []string) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})(next)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("component", "http").
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}
