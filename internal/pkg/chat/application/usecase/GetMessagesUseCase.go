package usecase

import (
	"context"
	"fmt"

	chat "go-marketplace/internal/pkg/chat/application/domain"
	repository "go-marketplace/internal/pkg/chat/persistence/repository/port"
)

// GetMessagesInput pages a conversation's history backwards. Before, when
// non-zero, is an exclusive upper bound on message identity.
type GetMessagesInput struct {
	ChatID int64
	Limit  int
	Before int64
}

// GetMessagesUseCase fetches a page of history in chronological order.
type GetMessagesUseCase struct {
	Repo repository.ChatRepository
}

func NewGetMessagesUseCase(repo repository.ChatRepository) *GetMessagesUseCase {
	return &GetMessagesUseCase{Repo: repo}
}

func (uc *GetMessagesUseCase) Execute(ctx context.Context, in GetMessagesInput) ([]chat.Message, error) {
	if in.ChatID == 0 {
		return nil, fmt.Errorf("chatId is required")
	}
	msgs, err := uc.Repo.ListMessages(ctx, in.ChatID, in.Limit, in.Before)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
