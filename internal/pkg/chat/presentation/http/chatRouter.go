package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-marketplace/internal/infrastructure/auth"
	cacheport "go-marketplace/internal/infrastructure/cache/port"
	qport "go-marketplace/internal/infrastructure/queue/port"
	"go-marketplace/internal/pkg/chat/application/relay"
	"go-marketplace/internal/pkg/chat/presentation/controller"
)

// Deps carries the shared infrastructure the chat endpoints need. The relay is
// shared with the queue worker so both paths fan out through the same rooms.
type Deps struct {
	Pool     *pgxpool.Pool
	Cache    cacheport.Cache
	Queue    qport.Client
	Relay    *relay.Relay
	Verifier *auth.Verifier
}

// RegisterRoutes registers chat-related endpoints under the given router
// group. It constructs per-endpoint controllers and binds them directly.
func RegisterRoutes(g *gin.RouterGroup, d Deps) {
	listCtl := controller.NewListChatsController(d.Pool)
	findOrCreateCtl := controller.NewFindOrCreateChatController(d.Pool, d.Cache)
	getMsgCtl := controller.NewGetMessagesController(d.Pool)
	sendMsgCtl := controller.NewSendMessageController(d.Queue)
	deleteCtl := controller.NewDeleteChatController(d.Pool)
	socketCtl := controller.NewChatSocketController(d.Relay, d.Verifier)

	// Socket endpoint authenticates via token query param during the upgrade.
	g.GET("/chats/ws", socketCtl.Handle())

	authed := g.Group("", auth.Middleware(d.Verifier))
	authed.GET("/chats", listCtl.Handle())
	authed.POST("/chats/find-or-create", findOrCreateCtl.Handle())
	authed.GET("/chats/:chatId/messages", getMsgCtl.Handle())
	authed.POST("/chats/:chatId/messages", sendMsgCtl.Handle())
	authed.DELETE("/chats/:chatId", deleteCtl.Handle())
}
