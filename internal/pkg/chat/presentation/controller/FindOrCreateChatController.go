package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-marketplace/internal/infrastructure/auth"
	cacheport "go-marketplace/internal/infrastructure/cache/port"
	apperrors "go-marketplace/pkg/errors"
	"go-marketplace/internal/pkg/chat/application/usecase"
	repoAdapter "go-marketplace/internal/pkg/chat/persistence/repository/adapter"
	userAdapter "go-marketplace/internal/repository/adapter"
	userport "go-marketplace/internal/repository/port"
)

// FindOrCreateChatController resolves the conversation for the caller and a
// counterpart, creating it lazily on first contact. The response carries the
// counterpart's display fields so the client can render the thread header.
type FindOrCreateChatController struct {
	findOrCreateUC *usecase.FindOrCreateChatUseCase
	users          userport.UserRepository
}

func NewFindOrCreateChatController(pool *pgxpool.Pool, cache cacheport.Cache) *FindOrCreateChatController {
	repo := repoAdapter.NewPgChatRepository(pool)
	return &FindOrCreateChatController{
		findOrCreateUC: usecase.NewFindOrCreateChatUseCase(repo),
		users:          userAdapter.NewPgUserRepository(pool, cache),
	}
}

type findOrCreateRequest struct {
	OtherUserID int64  `json:"otherUserId" binding:"required"`
	ProductID   *int64 `json:"productId"`
}

func (ctl *FindOrCreateChatController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.UserIDFromContext(c)

		var req findOrCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "otherUserId é obrigatório"})
			return
		}

		otherUser, err := ctl.users.FindDisplay(c.Request.Context(), req.OtherUserID)
		if err != nil {
			respondError(c, err)
			return
		}
		if otherUser == nil {
			respondError(c, apperrors.NotFound("usuário não encontrado"))
			return
		}

		conv, _, err := ctl.findOrCreateUC.Execute(c.Request.Context(), usecase.FindOrCreateChatInput{
			UserID:      userID,
			OtherUserID: req.OtherUserID,
			ProductID:   req.ProductID,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"chat":      toConversationResponse(*conv),
			"otherUser": otherUser,
		})
	}
}
