package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-marketplace/internal/infrastructure/auth"
	"go-marketplace/internal/pkg/chat/application/usecase"
	repoAdapter "go-marketplace/internal/pkg/chat/persistence/repository/adapter"
)

// ListChatsController serves the authenticated user's conversation listing,
// most recent activity first.
type ListChatsController struct {
	listChatsUC *usecase.ListChatsUseCase
}

func NewListChatsController(pool *pgxpool.Pool) *ListChatsController {
	repo := repoAdapter.NewPgChatRepository(pool)
	return &ListChatsController{listChatsUC: usecase.NewListChatsUseCase(repo)}
}

func (ctl *ListChatsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.UserIDFromContext(c)

		summaries, err := ctl.listChatsUC.Execute(c.Request.Context(), usecase.ListChatsInput{UserID: userID})
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]chatSummaryResponse, 0, len(summaries))
		for _, s := range summaries {
			out = append(out, toChatSummaryResponse(s))
		}
		c.JSON(http.StatusOK, gin.H{"chats": out})
	}
}
