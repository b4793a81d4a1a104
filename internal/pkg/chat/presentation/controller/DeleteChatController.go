package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-marketplace/internal/infrastructure/auth"
	"go-marketplace/internal/pkg/chat/application/usecase"
	repoAdapter "go-marketplace/internal/pkg/chat/persistence/repository/adapter"
)

// DeleteChatController removes a conversation and its messages. A caller who
// is not one of the two participants gets a 404.
type DeleteChatController struct {
	deleteChatUC *usecase.DeleteChatUseCase
}

func NewDeleteChatController(pool *pgxpool.Pool) *DeleteChatController {
	repo := repoAdapter.NewPgChatRepository(pool)
	return &DeleteChatController{deleteChatUC: usecase.NewDeleteChatUseCase(repo)}
}

func (ctl *DeleteChatController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.UserIDFromContext(c)

		chatID, err := strconv.ParseInt(c.Param("chatId"), 10, 64)
		if err != nil || chatID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chatId inválido"})
			return
		}

		err = ctl.deleteChatUC.Execute(c.Request.Context(), usecase.DeleteChatInput{
			ChatID: chatID,
			UserID: userID,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "chat deletado com sucesso"})
	}
}
