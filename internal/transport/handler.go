package transport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"go-trivia-watcher/internal/hub"
	"go-trivia-watcher/internal/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewHandler builds the HTTP surface: a health endpoint and the websocket
// endpoint clients subscribe to.
func NewHandler(h *hub.Hub) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", healthCheck)
	r.GET("/ws", serveClient(h))

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "available",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// serveClient upgrades the connection, registers a subscription and streams
// every published result to the client as a JSON array of search queries.
// The subscription is unregistered on every exit path so a dead client
// never keeps receiving into a dangling queue.
func serveClient(h *hub.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.WithError(err).Warn("Websocket upgrade failed")
			return
		}
		defer conn.Close()

		sub := h.Register()
		defer h.Unregister(sub)

		logger.WithFields(logrus.Fields{
			"remote": conn.RemoteAddr().String(),
		}).Info("Client connected")

		// The read loop only detects disconnection; clients send nothing
		// meaningful.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case result := <-sub.C:
				if err := conn.WriteJSON(result.SearchQueries()); err != nil {
					logger.WithError(err).WithFields(logrus.Fields{
						"remote": conn.RemoteAddr().String(),
					}).Warn("Client write failed, disconnecting")
					return
				}
			case <-done:
				logger.WithFields(logrus.Fields{
					"remote": conn.RemoteAddr().String(),
				}).Info("Client disconnected")
				return
			}
		}
	}
}
