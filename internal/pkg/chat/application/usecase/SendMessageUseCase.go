package usecase

import (
	"context"
	"fmt"

	chat "go-marketplace/internal/pkg/chat/application/domain"
	repository "go-marketplace/internal/pkg/chat/persistence/repository/port"
)

// SendMessageInput carries the data needed to append a message. At least one
// of Text/Image must be non-empty; chat.NewMessage enforces this.
type SendMessageInput struct {
	ChatID   int64
	SenderID int64
	Text     *string
	Image    *string
}

// SendMessageUseCase persists a message and refreshes the conversation's
// denormalized summary.
//
// The append and the summary update are two sequential statements, not a
// transaction: a crash between them leaves the summary stale relative to the
// message log. The summary is a display hint only, so this window is accepted.
//
// Sender membership in the conversation is not checked before appending; see
// DESIGN.md for the reasoning.
type SendMessageUseCase struct {
	Repo repository.ChatRepository
}

func NewSendMessageUseCase(repo repository.ChatRepository) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo}
}

// Execute validates, appends, and updates the summary. The returned message is
// the stored row joined with the sender's display fields.
func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, error) {
	msg, err := chat.NewMessage(chat.Message{
		ChatID:   in.ChatID,
		SenderID: in.SenderID,
		Text:     in.Text,
		Image:    in.Image,
	})
	if err != nil {
		return nil, err
	}

	stored, err := uc.Repo.AppendMessage(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := uc.Repo.UpdateSummary(ctx, stored.ChatID, stored.Summary(), stored.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return stored, nil
}
