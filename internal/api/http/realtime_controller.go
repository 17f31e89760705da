package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	jwtlib "github.com/immxrtalbeast/frameboard/internal/lib/jwt"
	"github.com/immxrtalbeast/frameboard/internal/realtime"
	"github.com/immxrtalbeast/frameboard/lib/logger/sl"
)

type RealtimeController struct {
	hub        *realtime.Hub
	tokens     *jwtlib.Manager
	sendBuffer int
	log        *slog.Logger
	upgrader   websocket.Upgrader
}

func NewRealtimeController(hub *realtime.Hub, tokens *jwtlib.Manager, sendBuffer int, log *slog.Logger) *RealtimeController {
	if log == nil {
		log = slog.Default()
	}
	return &RealtimeController{
		hub:        hub,
		tokens:     tokens,
		sendBuffer: sendBuffer,
		log:        log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Connect authenticates the handshake via the token query parameter, then
// upgrades and pumps events between the socket and the hub until the peer
// disconnects. The websocket API cannot carry an Authorization header from
// browsers, hence the query parameter.
func (c *RealtimeController) Connect(ctx *gin.Context) {
	sceneID, err := uuid.Parse(ctx.Param("sceneID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid scene id"})
		return
	}

	raw := ctx.Query("token")
	if raw == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	identity, err := c.tokens.Parse(raw)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	socket, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.log.Error("websocket upgrade failed", sl.Err(err))
		return
	}

	conn := realtime.NewConn(identity.UserID, identity.Name, c.sendBuffer)
	c.hub.Register(conn)
	c.hub.Join(conn, sceneID)

	go forwardEvents(socket, conn)

	for {
		var event realtime.Event
		if err := socket.ReadJSON(&event); err != nil {
			c.hub.Unregister(conn)
			socket.Close()
			return
		}
		c.hub.HandleEvent(conn, event)
	}
}

// forwardEvents drains the hub's outbound stream into the socket. It exits
// when Unregister closes the stream or the socket write fails.
func forwardEvents(socket *websocket.Conn, conn *realtime.Conn) {
	for event := range conn.Events() {
		if err := socket.WriteJSON(event); err != nil {
			return
		}
	}
	socket.Close()
}
