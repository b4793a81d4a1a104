package usecase

import (
	"context"
	"fmt"

	repository "go-marketplace/internal/pkg/chat/persistence/repository/port"
)

// MarkAsReadInput identifies the conversation and the reader whose counterpart
// messages should be flipped to read.
type MarkAsReadInput struct {
	ChatID   int64
	ReaderID int64
}

// MarkAsReadUseCase flips unread messages from other senders to read. The
// operation is idempotent: a second call with no intervening sends affects
// zero rows, which is a valid outcome, not an error.
type MarkAsReadUseCase struct {
	Repo repository.ChatRepository
}

func NewMarkAsReadUseCase(repo repository.ChatRepository) *MarkAsReadUseCase {
	return &MarkAsReadUseCase{Repo: repo}
}

func (uc *MarkAsReadUseCase) Execute(ctx context.Context, in MarkAsReadInput) (int64, error) {
	if in.ChatID == 0 || in.ReaderID == 0 {
		return 0, fmt.Errorf("chatId and userId are required")
	}
	affected, err := uc.Repo.MarkRead(ctx, in.ChatID, in.ReaderID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return affected, nil
}
