package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	chat "go-marketplace/internal/pkg/chat/application/domain"
)

var errRepoDown = errors.New("storage unavailable")

// fakeChatRepository backs the use case tests with an in-memory message log
// that mirrors the adapter's contract: serial ids, symmetric pair lookup,
// newest-first pagination reversed to chronological.
type fakeChatRepository struct {
	mu sync.Mutex

	nextChatID int64
	nextMsgID  int64
	chats      map[int64]*chat.Conversation
	messages   map[int64][]chat.Message
	userNames  map[int64]string

	failAppend  bool
	failSummary bool
}

func newFakeChatRepository() *fakeChatRepository {
	return &fakeChatRepository{
		chats:     make(map[int64]*chat.Conversation),
		messages:  make(map[int64][]chat.Message),
		userNames: make(map[int64]string),
	}
}

func (f *fakeChatRepository) FindConversation(_ context.Context, userA, userB int64, productID *int64) (*chat.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.chats {
		samePair := (c.UserID1 == userA && c.UserID2 == userB) || (c.UserID1 == userB && c.UserID2 == userA)
		if !samePair {
			continue
		}
		if productID != nil && (c.ProductID == nil || *c.ProductID != *productID) {
			continue
		}
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeChatRepository) CreateConversation(_ context.Context, userA, userB int64, productID *int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextChatID++
	f.chats[f.nextChatID] = &chat.Conversation{
		ID:        f.nextChatID,
		UserID1:   userA,
		UserID2:   userB,
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
	}
	return f.nextChatID, nil
}

func (f *fakeChatRepository) GetConversation(_ context.Context, chatID int64) (*chat.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.chats[chatID]
	if !ok {
		return nil, chat.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeChatRepository) UpdateSummary(_ context.Context, chatID int64, lastMessage string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSummary {
		return errRepoDown
	}
	c, ok := f.chats[chatID]
	if !ok {
		return chat.ErrNotFound
	}
	c.LastMessage = &lastMessage
	c.LastMessageAt = &at
	return nil
}

func (f *fakeChatRepository) ListForUser(_ context.Context, userID int64) ([]chat.ConversationSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []chat.ConversationSummary
	for _, c := range f.chats {
		if !c.HasParticipant(userID) {
			continue
		}
		other := c.Counterpart(userID)
		var unread int
		for _, m := range f.messages[c.ID] {
			if m.SenderID != userID && !m.IsRead {
				unread++
			}
		}
		out = append(out, chat.ConversationSummary{
			Conversation:  *c,
			OtherUserID:   other,
			OtherUserName: f.userNames[other],
			UnreadCount:   unread,
		})
	}
	return out, nil
}

func (f *fakeChatRepository) DeleteConversation(_ context.Context, chatID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.messages, chatID)
	delete(f.chats, chatID)
	return nil
}

func (f *fakeChatRepository) AppendMessage(_ context.Context, m chat.Message) (*chat.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAppend {
		return nil, errRepoDown
	}
	f.nextMsgID++
	m.ID = f.nextMsgID
	m.SenderName = f.userNames[m.SenderID]
	f.messages[m.ChatID] = append(f.messages[m.ChatID], m)
	cp := m
	return &cp, nil
}

func (f *fakeChatRepository) ListMessages(_ context.Context, chatID int64, limit int, before int64) ([]chat.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit <= 0 {
		limit = 50
	}
	all := f.messages[chatID]
	var page []chat.Message
	for i := len(all) - 1; i >= 0 && len(page) < limit; i-- {
		if before > 0 && all[i].ID >= before {
			continue
		}
		page = append(page, all[i])
	}
	for i, j := 0, len(page)-1; i < j; i, j = i+1, j-1 {
		page[i], page[j] = page[j], page[i]
	}
	return page, nil
}

func (f *fakeChatRepository) MarkRead(_ context.Context, chatID int64, readerID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var affected int64
	msgs := f.messages[chatID]
	for i := range msgs {
		if msgs[i].SenderID != readerID && !msgs[i].IsRead {
			msgs[i].IsRead = true
			affected++
		}
	}
	return affected, nil
}

func (f *fakeChatRepository) messageCount(chatID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages[chatID])
}
