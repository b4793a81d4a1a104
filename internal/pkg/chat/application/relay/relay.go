package relay

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"go-marketplace/internal/pkg/chat/application/usecase"
)

// Relay orchestrates inbound socket events: validate, persist through the use
// cases, fan out to the conversation room. Each event type is handled
// independently; a bad event from one session never affects another session's
// rooms.
//
// Ordering: the store's serial message identity is the ordering authority. A
// per-conversation lock keeps fan-out in store order, so every room member
// observes new_message events with strictly increasing identities even when
// two senders post concurrently from different sessions.
type Relay struct {
	rooms RoomBroadcaster
	send  *usecase.SendMessageUseCase
	read  *usecase.MarkAsReadUseCase
	log   *zap.SugaredLogger

	mu        sync.Mutex
	chatLocks map[int64]*chatLock
}

func New(rooms RoomBroadcaster, send *usecase.SendMessageUseCase, read *usecase.MarkAsReadUseCase, log *zap.SugaredLogger) *Relay {
	return &Relay{
		rooms:     rooms,
		send:      send,
		read:      read,
		log:       log,
		chatLocks: make(map[int64]*chatLock),
	}
}

// HandleFrame decodes one inbound frame and dispatches it. Malformed frames
// and unknown event names are dropped with a log line only.
func (r *Relay) HandleFrame(ctx context.Context, s Session, data []byte) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		r.log.Debugw("dropping malformed frame", "session", s.SessionID(), "err", err)
		return
	}

	switch env.Event {
	case EventJoinChat:
		r.handleJoin(s, env.Data)
	case EventSendMessage:
		r.handleSendMessage(ctx, s, env.Data)
	case EventMarkAsRead:
		r.handleMarkAsRead(ctx, s, env.Data)
	case EventTyping:
		r.handleTyping(s, env.Data)
	case EventStopTyping:
		r.handleStopTyping(s, env.Data)
	default:
		r.log.Debugw("dropping unknown event", "event", env.Event, "session", s.SessionID())
	}
}

// HandleDisconnect removes the session from every room it joined.
func (r *Relay) HandleDisconnect(s Session) {
	r.rooms.DetachAll(s.SessionID())
}

func (r *Relay) handleJoin(s Session, data json.RawMessage) {
	var ev JoinChatEvent
	if err := json.Unmarshal(data, &ev); err != nil || ev.ChatID == 0 {
		r.log.Debugw("dropping join_chat with missing chatId", "session", s.SessionID())
		return
	}
	r.rooms.Join(ev.ChatID, s)
}

func (r *Relay) handleSendMessage(ctx context.Context, s Session, data json.RawMessage) {
	var ev SendMessageEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		r.log.Debugw("dropping malformed send_message", "session", s.SessionID(), "err", err)
		return
	}
	// Validation failures are dropped silently: logged, never surfaced to the
	// sender. Only store-level failures produce an error event.
	if ev.ChatID == 0 || ev.SenderID == 0 || (isEmpty(ev.Text) && isEmpty(ev.Image)) {
		r.log.Infow("dropping invalid send_message",
			"chatId", ev.ChatID, "senderId", ev.SenderID, "session", s.SessionID())
		return
	}

	unlock := r.lockConversation(ev.ChatID)
	defer unlock()

	msg, err := r.send.Execute(ctx, usecase.SendMessageInput{
		ChatID:   ev.ChatID,
		SenderID: ev.SenderID,
		Text:     ev.Text,
		Image:    ev.Image,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrPersistence) {
			r.log.Errorw("send_message persistence failure", "chatId", ev.ChatID, "err", err)
			r.replyError(s, "Erro ao enviar mensagem")
			return
		}
		r.log.Infow("dropping invalid send_message", "chatId", ev.ChatID, "err", err)
		return
	}

	payload, err := Marshal(EventNewMessage, ToMessagePayload(*msg))
	if err != nil {
		r.log.Errorw("encoding new_message failed", "chatId", ev.ChatID, "err", err)
		r.replyError(s, "Erro ao enviar mensagem")
		return
	}

	// Inclusive fan-out: the sender receives the canonical persisted copy too.
	r.rooms.Broadcast(ev.ChatID, payload)
}

func (r *Relay) handleMarkAsRead(ctx context.Context, s Session, data json.RawMessage) {
	var ev MarkAsReadEvent
	if err := json.Unmarshal(data, &ev); err != nil || ev.ChatID == 0 || ev.UserID == 0 {
		r.log.Debugw("dropping invalid mark_as_read", "session", s.SessionID())
		return
	}

	affected, err := r.read.Execute(ctx, usecase.MarkAsReadInput{
		ChatID:   ev.ChatID,
		ReaderID: ev.UserID,
	})
	if err != nil {
		// Logged only; the originator gets no feedback on read-state failures.
		r.log.Errorw("mark_as_read failed", "chatId", ev.ChatID, "err", err)
		return
	}
	r.log.Debugw("messages marked read", "chatId", ev.ChatID, "userId", ev.UserID, "count", affected)

	payload, err := Marshal(EventMessagesRead, MessagesReadPayload{ChatID: ev.ChatID, UserID: ev.UserID})
	if err != nil {
		return
	}
	r.rooms.Broadcast(ev.ChatID, payload)
}

func (r *Relay) handleTyping(s Session, data json.RawMessage) {
	var ev TypingEvent
	if err := json.Unmarshal(data, &ev); err != nil || ev.ChatID == 0 || ev.UserID == 0 || ev.UserName == "" {
		return
	}
	payload, err := Marshal(EventUserTyping, UserTypingPayload{UserID: ev.UserID, UserName: ev.UserName})
	if err != nil {
		return
	}
	// Exclusive of the sender so a client never sees its own typing echo.
	r.rooms.BroadcastExcept(ev.ChatID, payload, s.SessionID())
}

func (r *Relay) handleStopTyping(s Session, data json.RawMessage) {
	var ev StopTypingEvent
	if err := json.Unmarshal(data, &ev); err != nil || ev.ChatID == 0 || ev.UserID == 0 {
		return
	}
	payload, err := Marshal(EventUserStopTyping, UserStopTypingPayload{UserID: ev.UserID})
	if err != nil {
		return
	}
	r.rooms.BroadcastExcept(ev.ChatID, payload, s.SessionID())
}

// replyError emits an error event to the originating session only; storage
// failures are never broadcast to the room.
func (r *Relay) replyError(s Session, message string) {
	payload, err := Marshal(EventError, ErrorPayload{Message: message})
	if err != nil {
		return
	}
	_ = s.Send(payload)
}

type chatLock struct {
	mu   sync.Mutex
	refs int
}

// lockConversation serializes persist+fan-out per conversation. Locks are
// reference counted and evicted when the last holder releases, so the map
// only holds conversations with in-flight sends.
func (r *Relay) lockConversation(chatID int64) func() {
	r.mu.Lock()
	l, ok := r.chatLocks[chatID]
	if !ok {
		l = &chatLock{}
		r.chatLocks[chatID] = l
	}
	l.refs++
	r.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		r.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(r.chatLocks, chatID)
		}
		r.mu.Unlock()
	}
}

func isEmpty(s *string) bool {
	return s == nil || *s == ""
}
