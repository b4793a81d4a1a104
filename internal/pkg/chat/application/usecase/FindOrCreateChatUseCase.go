package usecase

import (
	"context"
	"fmt"

	chat "go-marketplace/internal/pkg/chat/application/domain"
	repository "go-marketplace/internal/pkg/chat/persistence/repository/port"
)

// FindOrCreateChatInput identifies the participant pair and optional product
// scope. UserID is the authenticated caller; OtherUserID the counterpart.
type FindOrCreateChatInput struct {
	UserID      int64
	OtherUserID int64
	ProductID   *int64
}

// FindOrCreateChatUseCase returns the existing conversation for the pair under
// either ordering, creating it lazily on first contact.
//
// Uniqueness is advisory: there is no storage constraint on the pair, so two
// simultaneous first contacts can race and produce duplicates. Best-effort
// lookup-then-create is the contract.
type FindOrCreateChatUseCase struct {
	Repo repository.ChatRepository
}

func NewFindOrCreateChatUseCase(repo repository.ChatRepository) *FindOrCreateChatUseCase {
	return &FindOrCreateChatUseCase{Repo: repo}
}

// Execute reports whether the conversation was created by this call.
func (uc *FindOrCreateChatUseCase) Execute(ctx context.Context, in FindOrCreateChatInput) (*chat.Conversation, bool, error) {
	if in.UserID == 0 || in.OtherUserID == 0 {
		return nil, false, fmt.Errorf("userId and otherUserId are required")
	}

	existing, err := uc.Repo.FindConversation(ctx, in.UserID, in.OtherUserID, in.ProductID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if existing != nil {
		return existing, false, nil
	}

	id, err := uc.Repo.CreateConversation(ctx, in.UserID, in.OtherUserID, in.ProductID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	created, err := uc.Repo.GetConversation(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return created, true, nil
}
