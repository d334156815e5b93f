package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pathfinderhq/pathfinder/internal/middleware"
	"github.com/pathfinderhq/pathfinder/internal/ws"
)

// parsePositiveID parses a strictly positive int64 identifier.
func parsePositiveID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// pathID reads the :id path parameter, writing a 400 when it is not a positive integer.
func pathID(c *gin.Context) (int64, bool) {
	id, ok := parsePositiveID(c.Param("id"))
	if !ok {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "id must be a positive integer")
	}
	return id, ok
}

// queryID reads a required positive integer query parameter, writing a 400 otherwise.
func queryID(c *gin.Context, name string) (int64, bool) {
	raw, present := c.GetQuery(name)
	if !present {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, name+" is required")
		return 0, false
	}

	id, ok := parsePositiveID(raw)
	if !ok {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, name+" must be a positive integer")
	}
	return id, ok
}

// originPatterns converts CORS origins into the host patterns websocket.Accept matches.
func originPatterns(corsOrigins []string) []string {
	out := make([]string, 0, len(corsOrigins))
	for _, o := range corsOrigins {
		o = strings.TrimPrefix(o, "https://")
		o = strings.TrimPrefix(o, "http://")
		out = append(out, strings.TrimSuffix(o, "/"))
	}
	return out
}

// wsHandler upgrades authenticated requests to a graph change stream.
// Browsers cannot set headers on a WebSocket handshake, so the token may
// also arrive as the "token" query parameter.
func wsHandler(appCtx context.Context, log *logrus.Logger, hub *ws.Hub, auth AuthService, corsOrigins []string) gin.HandlerFunc {
	patterns := originPatterns(corsOrigins)

	return func(c *gin.Context) {
		token := middleware.ExtractBearerToken(c)
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			respondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing token")
			return
		}

		user, err := auth.ParseToken(c.Request.Context(), token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "could not validate credentials")
			return
		}

		conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
			OriginPatterns:       patterns,
			CompressionMode:      websocket.CompressionContextTakeover,
			CompressionThreshold: 128,
		})
		if err != nil {
			log.WithError(err).Warn("websocket accept failed")
			return
		}

		client := ws.NewClient(hub, conn, auth, user.Username, token)
		hub.Register(client)

		wsCtx, wsCancel := context.WithCancel(appCtx)
		go func() {
			select {
			case <-c.Request.Context().Done():
				wsCancel()
			case <-wsCtx.Done():
			}
		}()

		go client.WritePump(wsCtx)
		client.ReadPump(wsCtx)
		wsCancel()
	}
}
