package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "go-marketplace/pkg/errors"

	chat "go-marketplace/internal/pkg/chat/application/domain"
	"go-marketplace/internal/pkg/chat/application/usecase"
)

// respondError maps domain/use case failures onto HTTP statuses. Storage
// details never leak to clients.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(statusForCode(appErr.Code), gin.H{"error": appErr.Message})
		return
	}

	switch {
	case errors.Is(err, chat.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "chat não encontrado"})
	case errors.Is(err, usecase.ErrPersistence):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func statusForCode(code apperrors.Code) int {
	switch code {
	case apperrors.CodeInvalidArgument:
		return http.StatusBadRequest
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeUnauthenticated:
		return http.StatusUnauthorized
	case apperrors.CodePermissionDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

type conversationResponse struct {
	ID            int64      `json:"id"`
	UserID1       int64      `json:"userId1"`
	UserID2       int64      `json:"userId2"`
	ProductID     *int64     `json:"productId"`
	LastMessage   *string    `json:"lastMessage"`
	LastMessageAt *time.Time `json:"lastMessageAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func toConversationResponse(c chat.Conversation) conversationResponse {
	return conversationResponse{
		ID:            c.ID,
		UserID1:       c.UserID1,
		UserID2:       c.UserID2,
		ProductID:     c.ProductID,
		LastMessage:   c.LastMessage,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
	}
}

type chatSummaryResponse struct {
	conversationResponse

	OtherUserID     int64   `json:"otherUserId"`
	OtherUserName   string  `json:"otherUserName"`
	OtherUserAvatar *string `json:"otherUserAvatar"`
	ProductTitle    *string `json:"productTitle"`
	UnreadCount     int     `json:"unreadCount"`
}

func toChatSummaryResponse(s chat.ConversationSummary) chatSummaryResponse {
	return chatSummaryResponse{
		conversationResponse: toConversationResponse(s.Conversation),
		OtherUserID:          s.OtherUserID,
		OtherUserName:        s.OtherUserName,
		OtherUserAvatar:      s.OtherUserAvatar,
		ProductTitle:         s.ProductTitle,
		UnreadCount:          s.UnreadCount,
	}
}
