package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"go-marketplace/internal/infrastructure/auth"
	"go-marketplace/internal/infrastructure/realtime"
	"go-marketplace/internal/pkg/chat/application/relay"
)

const defaultReadTimeout = 60 * time.Second

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Browsers connect from the marketplace SPA on another origin.
		return true
	},
}

// ChatSocketController owns the websocket endpoint: it authenticates the
// session, upgrades the connection, and pumps inbound frames into the relay
// until the client disconnects.
type ChatSocketController struct {
	relay    *relay.Relay
	verifier *auth.Verifier
}

func NewChatSocketController(r *relay.Relay, verifier *auth.Verifier) *ChatSocketController {
	return &ChatSocketController{relay: r, verifier: verifier}
}

func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Identity check happens before the session may subscribe to rooms.
		userID, err := ctl.verifier.UserID(c.Query("token"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; nothing more to do.
			return
		}

		conn := realtime.NewConnection(userID, ws)
		conn.Start()
		defer func() {
			ctl.relay.HandleDisconnect(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 20) // 1MB payload cap
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		if payload, err := relay.Marshal("connected", gin.H{"userId": userID}); err == nil {
			_ = conn.Send(payload)
		}

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				// Normal closes and timeouts end the session the same way:
				// router cleanup via HandleDisconnect in the deferred block.
				return
			}
			ctl.relay.HandleFrame(c.Request.Context(), conn, data)
		}
	}
}
