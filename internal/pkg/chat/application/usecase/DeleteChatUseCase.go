package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "go-marketplace/internal/pkg/chat/application/domain"
	repository "go-marketplace/internal/pkg/chat/persistence/repository/port"
)

// DeleteChatInput identifies the conversation and the caller requesting the
// delete. Callers outside the participant pair get a not-found, never a hint
// that the conversation exists.
type DeleteChatInput struct {
	ChatID int64
	UserID int64
}

// DeleteChatUseCase removes a conversation and its messages. Messages are
// deleted first, then the conversation row; both must succeed for the
// operation to be considered successful.
type DeleteChatUseCase struct {
	Repo repository.ChatRepository
}

func NewDeleteChatUseCase(repo repository.ChatRepository) *DeleteChatUseCase {
	return &DeleteChatUseCase{Repo: repo}
}

func (uc *DeleteChatUseCase) Execute(ctx context.Context, in DeleteChatInput) error {
	if in.ChatID == 0 || in.UserID == 0 {
		return fmt.Errorf("chatId and userId are required")
	}

	conv, err := uc.Repo.GetConversation(ctx, in.ChatID)
	if err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			return chat.ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !conv.HasParticipant(in.UserID) {
		return chat.ErrNotFound
	}

	if err := uc.Repo.DeleteConversation(ctx, in.ChatID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
