package usecase

import (
	"context"
	"fmt"

	chat "go-marketplace/internal/pkg/chat/application/domain"
	repository "go-marketplace/internal/pkg/chat/persistence/repository/port"
)

// ListChatsInput wraps the authenticated user whose conversations are listed.
type ListChatsInput struct {
	UserID int64
}

// ListChatsUseCase returns the user's conversations annotated with the
// counterpart's display fields and unread counts, most recent activity first.
type ListChatsUseCase struct {
	Repo repository.ChatRepository
}

func NewListChatsUseCase(repo repository.ChatRepository) *ListChatsUseCase {
	return &ListChatsUseCase{Repo: repo}
}

func (uc *ListChatsUseCase) Execute(ctx context.Context, in ListChatsInput) ([]chat.ConversationSummary, error) {
	if in.UserID == 0 {
		return nil, fmt.Errorf("userId is required")
	}
	summaries, err := uc.Repo.ListForUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return summaries, nil
}
