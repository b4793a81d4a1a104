package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListChatsAnnotatesCounterpartAndUnread(t *testing.T) {
	repo := newFakeChatRepository()
	repo.userNames[9] = "João"
	chatID := seedConversation(t, repo, 7, 9)

	send := NewSendMessageUseCase(repo)
	_, err := send.Execute(context.Background(), SendMessageInput{ChatID: chatID, SenderID: 9, Text: strptr("oi")})
	require.NoError(t, err)
	_, err = send.Execute(context.Background(), SendMessageInput{ChatID: chatID, SenderID: 7, Text: strptr("olá")})
	require.NoError(t, err)

	uc := NewListChatsUseCase(repo)
	summaries, err := uc.Execute(context.Background(), ListChatsInput{UserID: 7})
	require.NoError(t, err)

	require.Len(t, summaries, 1)
	s := summaries[0]
	assert.EqualValues(t, 9, s.OtherUserID)
	assert.Equal(t, "João", s.OtherUserName)
	assert.EqualValues(t, 1, s.UnreadCount, "only the counterpart's unread messages count")
	require.NotNil(t, s.LastMessage)
	assert.Equal(t, "olá", *s.LastMessage)
}

func TestListChatsExcludesForeignConversations(t *testing.T) {
	repo := newFakeChatRepository()
	seedConversation(t, repo, 7, 9)
	seedConversation(t, repo, 11, 13)

	uc := NewListChatsUseCase(repo)
	summaries, err := uc.Execute(context.Background(), ListChatsInput{UserID: 7})
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}
