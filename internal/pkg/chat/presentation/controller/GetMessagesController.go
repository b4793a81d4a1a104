package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-marketplace/internal/pkg/chat/application/relay"
	"go-marketplace/internal/pkg/chat/application/usecase"
	repoAdapter "go-marketplace/internal/pkg/chat/persistence/repository/adapter"
)

// GetMessagesController serves paged history for a conversation, always in
// chronological order. `before` pages backwards for infinite scroll.
type GetMessagesController struct {
	getMessagesUC *usecase.GetMessagesUseCase
}

func NewGetMessagesController(pool *pgxpool.Pool) *GetMessagesController {
	repo := repoAdapter.NewPgChatRepository(pool)
	return &GetMessagesController{getMessagesUC: usecase.NewGetMessagesUseCase(repo)}
}

func (ctl *GetMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID, err := strconv.ParseInt(c.Param("chatId"), 10, 64)
		if err != nil || chatID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chatId inválido"})
			return
		}

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		var before int64
		if raw := c.Query("before"); raw != "" {
			before, err = strconv.ParseInt(raw, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "before inválido"})
				return
			}
		}

		msgs, err := ctl.getMessagesUC.Execute(c.Request.Context(), usecase.GetMessagesInput{
			ChatID: chatID,
			Limit:  limit,
			Before: before,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]relay.MessagePayload, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, relay.ToMessagePayload(m))
		}
		c.JSON(http.StatusOK, gin.H{"messages": out})
	}
}
